package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, handler *adaptor.Handler) {
	r.Route("/bookings", func(r chi.Router) {
		// POST /bookings - create booking with its participants
		r.Post("/", handler.Booking.CreateBooking)

		// GET /bookings - paginated listing
		r.Get("/", handler.Booking.GetBookings)

		// POST /bookings/scan - registered before the {id} routes; the
		// static segment wins over the parameter
		wireTicket(r, handler.Ticket)

		// GET /bookings/{id} - detail with participants and ledger
		r.Get("/{id}", handler.Booking.GetBookingByID)

		// PUT /bookings/{id} - partial update
		r.Put("/{id}", handler.Booking.UpdateBooking)

		// PATCH and PUT /bookings/{id}/status - both verbs kept for client
		// compatibility, one transition operation behind them
		r.Patch("/{id}/status", handler.Booking.UpdateBookingStatus)
		r.Put("/{id}/status", handler.Booking.UpdateBookingStatus)

		// DELETE /bookings/{id} - cascade delete
		r.Delete("/{id}", handler.Booking.DeleteBooking)
	})

	// POST /transactions - record a payment against a booking
	r.Post("/transactions", handler.Transaction.CreateTransaction)
}
