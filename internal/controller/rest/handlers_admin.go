package rest

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// Login handles POST /api/admin/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.bind(w, r, &req) {
		return
	}

	token, exp, err := h.auth.Login(req.Password)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: exp})
}

// ListBookings handles GET /api/admin/bookings?date=&location_id=
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	date := query.Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	var locationID int64
	if raw := query.Get("location_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			writeError(w, http.StatusBadRequest, "invalid location_id")
			return
		}
		locationID = id
	}

	bookings, err := h.bookings.ListForDay(r.Context(), date, locationID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, ToBookingResponse(b))
	}

	writeJSON(w, http.StatusOK, resp)
}

// DeleteBooking handles DELETE /api/admin/bookings/{bookingID}
func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "bookingID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.bookings.DeleteBooking(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.logger.Info("Admin deleted booking", zap.Int64("booking_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// RescheduleBooking handles PUT /api/admin/bookings/{bookingID}
func (h *Handler) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "bookingID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req RescheduleBookingRequest
	if !h.bind(w, r, &req) {
		return
	}

	booking, err := h.bookings.RescheduleBooking(r.Context(), id, req.toModel())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ToBookingResponse(booking))
}

// ListAllSeats handles GET /api/admin/locations/{locationID}/seats (включая выключенные)
func (h *Handler) ListAllSeats(w http.ResponseWriter, r *http.Request) {
	locationID, err := idParam(r, "locationID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	seats, err := h.catalog.ListSeats(r.Context(), locationID, false)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSeatResponses(seats))
}

// CreateSeat handles POST /api/admin/locations/{locationID}/seats
func (h *Handler) CreateSeat(w http.ResponseWriter, r *http.Request) {
	locationID, err := idParam(r, "locationID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req CreateSeatRequest
	if !h.bind(w, r, &req) {
		return
	}

	seat, err := h.catalog.CreateSeat(r.Context(), locationID, req.Name)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ToSeatResponse(seat))
}

// SetSeatActive handles PATCH /api/admin/seats/{seatID}
func (h *Handler) SetSeatActive(w http.ResponseWriter, r *http.Request) {
	seatID, err := idParam(r, "seatID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req SetSeatActiveRequest
	if !h.bind(w, r, &req) {
		return
	}

	seat, err := h.catalog.SetSeatActive(r.Context(), seatID, *req.Active)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ToSeatResponse(seat))
}
