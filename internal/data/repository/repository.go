package repository

import (
	"travel-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	City        CityRepository
	Package     PackageRepository
	Booking     BookingRepository
	Participant ParticipantRepository
	Transaction TransactionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		City:        NewCityRepository(db, log),
		Package:     NewPackageRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Participant: NewParticipantRepository(db, log),
		Transaction: NewTransactionRepository(db, log),
	}
}
