package request

import "encoding/json"

type ParticipantInput struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	BirthPlace string `json:"birth_place,omitempty"`
}

type CreateBookingRequest struct {
	PackageID     string             `json:"package_id" validate:"required,uuid4"`
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerEmail string             `json:"customer_email" validate:"required,email"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	Participants  []ParticipantInput `json:"participants" validate:"required,min=1,dive"`
	TotalPrice    *float64           `json:"total_price" validate:"required,gte=0"`
}

// UpdateBookingRequest carries a sparse field set; nil means "leave as is".
// TotalPrice stays raw so malformed values can fall back to 0 instead of
// failing the whole request (documented lenient coercion).
type UpdateBookingRequest struct {
	CustomerName  *string         `json:"customer_name,omitempty"`
	CustomerEmail *string         `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone *string         `json:"customer_phone,omitempty"`
	TotalPrice    json.RawMessage `json:"total_price,omitempty"`
	Status        *string         `json:"status,omitempty"`
}

// HasFields reports whether at least one recognized field was supplied.
func (r *UpdateBookingRequest) HasFields() bool {
	return r.CustomerName != nil ||
		r.CustomerEmail != nil ||
		r.CustomerPhone != nil ||
		r.TotalPrice != nil ||
		r.Status != nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
