package model

// TimeSlot вычисляемый слот расписания, в БД не хранится
type TimeSlot struct {
	Time           string  `json:"time"` // 15:04
	Available      bool    `json:"available"`
	AvailableSeats []*Seat `json:"available_seats"`
}
