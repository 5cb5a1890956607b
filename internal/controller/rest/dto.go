package rest

import (
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SubmitBookingRequest struct {
	LocationID         int64   `json:"location_id" validate:"required,gt=0"`
	SeatID             int64   `json:"seat_id" validate:"required,gt=0"`
	ServiceOfferingIDs []int64 `json:"service_offering_ids" validate:"required,min=1,max=10,dive,gt=0"`
	Date               string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time               string  `json:"time" validate:"required,datetime=15:04"`
	CustomerName       string  `json:"customer_name" validate:"required,max=100"`
	CustomerEmail      string  `json:"customer_email" validate:"required,email,max=254"`
	CustomerPhone      string  `json:"customer_phone" validate:"required,min=5,max=32"`
}

func (r SubmitBookingRequest) toModel() model.BookingRequest {
	return model.BookingRequest{
		LocationID:         r.LocationID,
		SeatID:             r.SeatID,
		ServiceOfferingIDs: r.ServiceOfferingIDs,
		Date:               r.Date,
		Time:               r.Time,
		CustomerName:       r.CustomerName,
		CustomerEmail:      r.CustomerEmail,
		CustomerPhone:      r.CustomerPhone,
	}
}

type RescheduleBookingRequest struct {
	SeatID             int64   `json:"seat_id" validate:"required,gt=0"`
	ServiceOfferingIDs []int64 `json:"service_offering_ids" validate:"required,min=1,max=10,dive,gt=0"`
	Date               string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time               string  `json:"time" validate:"required,datetime=15:04"`
}

func (r RescheduleBookingRequest) toModel() model.RescheduleRequest {
	return model.RescheduleRequest{
		SeatID:             r.SeatID,
		ServiceOfferingIDs: r.ServiceOfferingIDs,
		Date:               r.Date,
		Time:               r.Time,
	}
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateSeatRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type SetSeatActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type SeatResponse struct {
	ID         int64  `json:"id"`
	LocationID int64  `json:"location_id"`
	Name       string `json:"name"`
	IsActive   bool   `json:"is_active"`
}

func ToSeatResponse(s *model.Seat) SeatResponse {
	return SeatResponse{
		ID:         s.ID,
		LocationID: s.LocationID,
		Name:       s.Name,
		IsActive:   s.IsActive,
	}
}

func toSeatResponses(seats []*model.Seat) []SeatResponse {
	resp := make([]SeatResponse, 0, len(seats))
	for _, s := range seats {
		resp = append(resp, ToSeatResponse(s))
	}
	return resp
}

type TimeSlotResponse struct {
	Time           string         `json:"time"`
	Available      bool           `json:"available"`
	AvailableSeats []SeatResponse `json:"available_seats"`
}

func ToTimeSlotResponses(slots []model.TimeSlot) []TimeSlotResponse {
	resp := make([]TimeSlotResponse, 0, len(slots))
	for _, s := range slots {
		resp = append(resp, TimeSlotResponse{
			Time:           s.Time,
			Available:      s.Available,
			AvailableSeats: toSeatResponses(s.AvailableSeats),
		})
	}
	return resp
}

type BookingResponse struct {
	ID                 int64     `json:"id"`
	Reference          string    `json:"reference"`
	LocationID         int64     `json:"location_id"`
	SeatID             int64     `json:"seat_id"`
	CustomerName       string    `json:"customer_name"`
	CustomerEmail      string    `json:"customer_email"`
	CustomerPhone      string    `json:"customer_phone"`
	Date               string    `json:"date"`
	Time               string    `json:"time"`
	EndDate            string    `json:"end_date"`
	EndTime            string    `json:"end_time"`
	Duration           int       `json:"duration"`
	Price              int       `json:"price"`
	ServiceOfferingIDs []int64   `json:"service_offering_ids"`
	CreatedAt          time.Time `json:"created_at"`
}

func ToBookingResponse(b *model.Booking) BookingResponse {
	ids := b.ServiceOfferingIDs
	if ids == nil {
		ids = []int64{}
	}
	end := b.EndTime()
	return BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		LocationID:         b.LocationID,
		SeatID:             b.SeatID,
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		Date:               b.StartTime.Format(model.DateLayout),
		Time:               b.StartTime.Format(model.ClockLayout),
		EndDate:            end.Format(model.DateLayout),
		EndTime:            end.Format(model.ClockLayout),
		Duration:           b.Duration,
		Price:              b.Price,
		ServiceOfferingIDs: ids,
		CreatedAt:          b.CreatedAt,
	}
}

type LocationResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type ServiceOfferingResponse struct {
	ID         int64  `json:"id"`
	LocationID int64  `json:"location_id"`
	Name       string `json:"name"`
	Price      int    `json:"price"`
	Duration   int    `json:"duration"`
}
