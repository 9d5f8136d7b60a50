package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type CreateBookingResponse struct {
	BookingID   string               `json:"booking_id"`
	BookingCode string               `json:"booking_code"`
	Status      entity.BookingStatus `json:"status"`
}

type ParticipantResponse struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Phone      *string                  `json:"phone,omitempty"`
	Address    *string                  `json:"address,omitempty"`
	BirthPlace *string                  `json:"birth_place,omitempty"`
	Status     entity.ParticipantStatus `json:"status"`
	ScannedAt  *time.Time               `json:"scanned_at,omitempty"`
}

type BookingResponse struct {
	ID            string               `json:"id"`
	BookingCode   string               `json:"booking_code"`
	PackageID     string               `json:"package_id"`
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email"`
	CustomerPhone *string              `json:"customer_phone,omitempty"`
	TotalPrice    float64              `json:"total_price"`
	Status        entity.BookingStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	Participants []ParticipantResponse `json:"participants"`
	Transactions []TransactionResponse `json:"transactions,omitempty"`
}

// Helper converters

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            booking.ID.String(),
		BookingCode:   booking.BookingCode,
		PackageID:     booking.PackageID.String(),
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		CustomerPhone: booking.CustomerPhone,
		TotalPrice:    booking.TotalPrice,
		Status:        booking.Status,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
}

func ParticipantToResponse(p *entity.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		Phone:      p.Phone,
		Address:    p.Address,
		BirthPlace: p.BirthPlace,
		Status:     p.Status,
		ScannedAt:  p.ScannedAt,
	}
}
