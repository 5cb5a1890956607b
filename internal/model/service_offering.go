package model

import "time"

// ServiceOffering услуга салона с ценой и длительностью
type ServiceOffering struct {
	ID         int64     `json:"id"`
	LocationID int64     `json:"location_id"`
	Name       string    `json:"name"`
	Price      int       `json:"price"`    // в копейках/центах
	Duration   int       `json:"duration"` // в минутах
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}
