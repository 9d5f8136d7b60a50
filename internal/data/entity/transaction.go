package entity

import "github.com/google/uuid"

// PaymentTypeDownPayment marks a partial payment; any other payment_type
// settles the booking in full.
const PaymentTypeDownPayment = "dp"

// Transaction is an append-only payment ledger entry. Rows are never
// updated or deleted.
type Transaction struct {
	BaseSimple
	BookingID     uuid.UUID `db:"booking_id"`
	PaymentType   string    `db:"payment_type"`
	AmountPaid    float64   `db:"amount_paid"`
	PaymentMethod *string   `db:"payment_method"`
	VANumber      *string   `db:"va_number"`
}
