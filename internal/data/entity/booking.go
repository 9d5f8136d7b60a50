package entity

import (
	"strings"

	"github.com/google/uuid"
)

type BookingStatus string

// Canonical booking status set. Stored lowercase; input is parsed
// case-insensitively through ParseBookingStatus so both the dedicated
// transition endpoint and the partial-update path validate against the
// same enumeration.
const (
	BookingStatusAwaitingPayment BookingStatus = "awaiting_payment"
	BookingStatusDownPaymentPaid BookingStatus = "dp_paid"
	BookingStatusCompleted       BookingStatus = "completed"
	BookingStatusConfirmed       BookingStatus = "confirmed"
	BookingStatusCanceled        BookingStatus = "canceled"
)

// statusAliases maps legacy spellings still sent by older clients onto the
// canonical set.
var statusAliases = map[string]BookingStatus{
	"pending": BookingStatusAwaitingPayment,
	"paid":    BookingStatusCompleted,
	"lunas":   BookingStatusCompleted,
}

// ParseBookingStatus normalizes a raw status string to the canonical set.
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	if alias, ok := statusAliases[normalized]; ok {
		return alias, true
	}

	switch status := BookingStatus(normalized); status {
	case BookingStatusAwaitingPayment,
		BookingStatusDownPaymentPaid,
		BookingStatusCompleted,
		BookingStatusConfirmed,
		BookingStatusCanceled:
		return status, true
	}

	return "", false
}

type Booking struct {
	Base
	BookingCode   string        `db:"booking_code"`
	PackageID     uuid.UUID     `db:"package_id"`
	CustomerName  string        `db:"customer_name"`
	CustomerEmail string        `db:"customer_email"`
	CustomerPhone *string       `db:"customer_phone"`
	TotalPrice    float64       `db:"total_price"`
	Status        BookingStatus `db:"status"`
}
