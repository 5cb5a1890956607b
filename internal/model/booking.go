package model

import "time"

type Booking struct {
	ID                 int64      `json:"id"`
	Reference          string     `json:"reference"` // публичный код брони (uuid)
	LocationID         int64      `json:"location_id"`
	SeatID             int64      `json:"seat_id"`
	CustomerName       string     `json:"customer_name"`
	CustomerEmail      string     `json:"customer_email"`
	CustomerPhone      string     `json:"customer_phone"`
	StartTime          time.Time  `json:"start_time"` // настенное время салона, см. WallClock
	Duration           int        `json:"duration"`   // в минутах, сумма длительностей услуг
	Price              int        `json:"price"`      // в копейках/центах, сумма цен услуг
	ServiceOfferingIDs []int64    `json:"service_offering_ids"`
	ReminderSentAt     *time.Time `json:"reminder_sent_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`

	// Дополнительные поля для уведомлений (не из БД)
	Seat     *Seat              `json:"seat,omitempty"`
	Services []*ServiceOffering `json:"services,omitempty"`
}

// EndTime возвращает конец интервала брони (не включительно)
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(time.Duration(b.Duration) * time.Minute)
}

// BookingFilter выбирает брони, чей интервал пересекается с [From, To)
type BookingFilter struct {
	LocationID int64  // 0 - все салоны
	SeatID     *int64 // nil - все кресла
	From       time.Time
	To         time.Time
	ExcludeID  int64 // не возвращать бронь с этим ID (перенос брони)
}

// BookingRequest - данные клиента с формы записи
type BookingRequest struct {
	LocationID         int64
	SeatID             int64
	ServiceOfferingIDs []int64
	Date               string // 2006-01-02
	Time               string // 15:04
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
}

// RescheduleRequest - изменение даты, времени, кресла или услуг администратором
type RescheduleRequest struct {
	SeatID             int64
	ServiceOfferingIDs []int64
	Date               string
	Time               string
}
