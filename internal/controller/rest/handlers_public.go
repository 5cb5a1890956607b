package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GetAvailability handles GET /api/locations/{locationID}/availability?date=&service_offering_id=
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	locationID, err := idParam(r, "locationID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	query := r.URL.Query()
	date := query.Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	rawIDs := query["service_offering_id"]
	if len(rawIDs) == 0 {
		writeError(w, http.StatusBadRequest, "service_offering_id is required")
		return
	}
	offeringIDs := make([]int64, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid service_offering_id "+strconv.Quote(raw))
			return
		}
		offeringIDs = append(offeringIDs, id)
	}

	slots, err := h.availability.GetAvailability(r.Context(), date, locationID, offeringIDs)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ToTimeSlotResponses(slots))
}

// SubmitBooking handles POST /api/bookings
func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req SubmitBookingRequest
	if !h.bind(w, r, &req) {
		return
	}

	booking, err := h.bookings.SubmitBooking(r.Context(), req.toModel())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ToBookingResponse(booking))
}

// GetBooking handles GET /api/bookings/{reference}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.GetByReference(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ToBookingResponse(booking))
}

// ListLocations handles GET /api/locations
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.catalog.ListLocations(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]LocationResponse, 0, len(locations))
	for _, l := range locations {
		resp = append(resp, LocationResponse{ID: l.ID, Name: l.Name, Address: l.Address, Phone: l.Phone})
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListServices handles GET /api/locations/{locationID}/services
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	locationID, err := idParam(r, "locationID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	offerings, err := h.catalog.ListServices(r.Context(), locationID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]ServiceOfferingResponse, 0, len(offerings))
	for _, o := range offerings {
		resp = append(resp, ServiceOfferingResponse{
			ID:         o.ID,
			LocationID: o.LocationID,
			Name:       o.Name,
			Price:      o.Price,
			Duration:   o.Duration,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListSeats handles GET /api/locations/{locationID}/seats (только активные)
func (h *Handler) ListSeats(w http.ResponseWriter, r *http.Request) {
	locationID, err := idParam(r, "locationID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	seats, err := h.catalog.ListSeats(r.Context(), locationID, true)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSeatResponses(seats))
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
