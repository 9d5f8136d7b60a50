package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	debug   bool
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, debug bool, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		debug:   debug,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// ScanTicket handles POST /bookings/scan
func (h *TicketHandler) ScanTicket(w http.ResponseWriter, r *http.Request) {
	var req request.ScanTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Scan(r.Context(), &req)
	if err != nil {
		// Rejections still carry the participant snapshot for the operator.
		respondError(w, h.log, err, "scan ticket", h.debug, result)
		return
	}

	utils.ResponseSuccess(w, "ticket redeemed", result)
}

// GetTicket handles GET /bookings/{id}/ticket
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	ticket, err := h.service.IssueTicket(r.Context(), bookingID)
	if err != nil {
		respondError(w, h.log, err, "issue ticket", h.debug, nil)
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}
