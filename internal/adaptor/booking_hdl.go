package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	debug   bool
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, debug bool, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		debug:   debug,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create booking", h.debug, nil)
		return
	}

	utils.ResponseCreated(w, "booking created", booking)
}

// GetBookings handles GET /bookings
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.GetBookings(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "list bookings", h.debug, nil)
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /bookings/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	booking, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		respondError(w, h.log, err, "get booking", h.debug, nil)
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UpdateBooking handles PUT /bookings/{id}
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), bookingID, &req)
	if err != nil {
		respondError(w, h.log, err, "update booking", h.debug, nil)
		return
	}

	utils.ResponseSuccess(w, "booking updated", booking)
}

// UpdateBookingStatus handles PATCH and PUT /bookings/{id}/status. Both
// verbs share this single transition operation.
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.TransitionStatus(r.Context(), bookingID, &req)
	if err != nil {
		respondError(w, h.log, err, "update booking status", h.debug, nil)
		return
	}

	utils.ResponseSuccess(w, "booking status updated", booking)
}

// DeleteBooking handles DELETE /bookings/{id}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	if err := h.service.DeleteBooking(r.Context(), bookingID); err != nil {
		respondError(w, h.log, err, "delete booking", h.debug, nil)
		return
	}

	utils.ResponseSuccess(w, "booking deleted", nil)
}
