package usecase

import (
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	Ticket  TicketService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Booking: NewBookingService(repo, log),
		Ticket:  NewTicketService(repo, log),
	}
}
