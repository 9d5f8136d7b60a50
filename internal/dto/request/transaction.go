package request

type CreateTransactionRequest struct {
	BookingID     string   `json:"booking_id" validate:"required,uuid4"`
	PaymentType   string   `json:"payment_type" validate:"required"`
	AmountPaid    *float64 `json:"amount_paid" validate:"required,gte=0"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
	VANumber      *string  `json:"va_number,omitempty"`
}
