package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

// TicketResponse is the presentable ticket, issued only for fully-paid
// bookings.
type TicketResponse struct {
	BookingCode   string                `json:"booking_code"`
	CustomerName  string                `json:"customer_name"`
	CustomerEmail string                `json:"customer_email"`
	Participants  []ParticipantResponse `json:"participants"`
	TotalPrice    float64               `json:"total_price"`
	Status        entity.BookingStatus  `json:"status"`
	QRCode        string                `json:"qr_code"`
}

// ScanTicketResponse reports the outcome of a check-in attempt. On
// rejection it still carries the participant name for operator display.
type ScanTicketResponse struct {
	ParticipantID string                   `json:"participant_id"`
	Name          string                   `json:"name"`
	Status        entity.ParticipantStatus `json:"status"`
	ScannedAt     *time.Time               `json:"scanned_at,omitempty"`
}
