package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type TransactionResponse struct {
	ID            string               `json:"id"`
	BookingID     string               `json:"booking_id"`
	PaymentType   string               `json:"payment_type"`
	AmountPaid    float64              `json:"amount_paid"`
	PaymentMethod *string              `json:"payment_method,omitempty"`
	VANumber      *string              `json:"va_number,omitempty"`
	BookingStatus entity.BookingStatus `json:"booking_status"`
	CreatedAt     time.Time            `json:"created_at"`
}

func TransactionToResponse(txn *entity.Transaction, status entity.BookingStatus) TransactionResponse {
	return TransactionResponse{
		ID:            txn.ID.String(),
		BookingID:     txn.BookingID.String(),
		PaymentType:   txn.PaymentType,
		AmountPaid:    txn.AmountPaid,
		PaymentMethod: txn.PaymentMethod,
		VANumber:      txn.VANumber,
		BookingStatus: status,
		CreatedAt:     txn.CreatedAt,
	}
}
