package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireTicket attaches the check-in and issuance routes to the bookings
// subtree.
func wireTicket(r chi.Router, ticketHandler *adaptor.TicketHandler) {
	// POST /bookings/scan - participant check-in
	r.Post("/scan", ticketHandler.ScanTicket)

	// GET /bookings/{id}/ticket - ticket issuance for fully-paid bookings
	r.Get("/{id}/ticket", ticketHandler.GetTicket)
}
