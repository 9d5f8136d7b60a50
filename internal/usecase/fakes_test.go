package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/apperr"

	"github.com/google/uuid"
)

// fakeDB is an in-memory stand-in for the Postgres store. The mutex mirrors
// the row-level atomicity of the real conditional UPDATE used by Redeem.
type fakeDB struct {
	mu sync.Mutex

	cities       map[uuid.UUID]*entity.City
	packages     map[uuid.UUID]*entity.Package
	bookings     map[uuid.UUID]*entity.Booking
	participants map[uuid.UUID]*entity.Participant
	transactions []*entity.Transaction

	failParticipantInsert bool
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		cities:       make(map[uuid.UUID]*entity.City),
		packages:     make(map[uuid.UUID]*entity.Package),
		bookings:     make(map[uuid.UUID]*entity.Booking),
		participants: make(map[uuid.UUID]*entity.Participant),
	}
}

func (db *fakeDB) repos() *repository.Repository {
	return &repository.Repository{
		City:        &fakeCityRepo{db},
		Package:     &fakePackageRepo{db},
		Booking:     &fakeBookingRepo{db},
		Participant: &fakeParticipantRepo{db},
		Transaction: &fakeTransactionRepo{db},
	}
}

func (db *fakeDB) seedPackage(cityCode, cityName, packageName string) *entity.Package {
	city := &entity.City{ID: uuid.New(), Name: cityName, Code: cityCode}
	db.cities[city.ID] = city

	pkg := &entity.Package{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:     packageName,
		Price:    1500000,
		CityID:   city.ID,
		Duration: 3,
		Capacity: 20,
		IsActive: true,
	}
	db.packages[pkg.ID] = pkg
	return pkg
}

func (db *fakeDB) seedBooking(status entity.BookingStatus) *entity.Booking {
	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		BookingCode:   "BDG-ABCD1234",
		PackageID:     uuid.New(),
		CustomerName:  "Siti Rahma",
		CustomerEmail: "siti@example.com",
		TotalPrice:    2000000,
		Status:        status,
	}
	db.bookings[booking.ID] = booking
	return booking
}

func (db *fakeDB) seedParticipant(bookingID uuid.UUID, name string, status entity.ParticipantStatus) *entity.Participant {
	p := &entity.Participant{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		BookingID: bookingID,
		Name:      name,
		Status:    status,
	}
	db.participants[p.ID] = p
	return p
}

type fakeCityRepo struct{ db *fakeDB }

func (r *fakeCityRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.City, error) {
	return r.db.cities[id], nil
}

type fakePackageRepo struct{ db *fakeDB }

func (r *fakePackageRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Package, error) {
	return r.db.packages[id], nil
}

type fakeBookingRepo struct{ db *fakeDB }

func (r *fakeBookingRepo) CreateWithParticipants(_ context.Context, booking *entity.Booking, participants []*entity.Participant) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.db.failParticipantInsert {
		// The real implementation rolls the booking insert back too.
		return errors.New("insert participant: connection reset")
	}

	r.db.bookings[booking.ID] = booking
	for _, p := range participants {
		r.db.participants[p.ID] = p
	}
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.db.bookings[id], nil
}

func (r *fakeBookingRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for _, b := range r.db.bookings {
		bookings = append(bookings, b)
	}
	if offset >= len(bookings) {
		return nil, nil
	}
	bookings = bookings[offset:]
	if limit < len(bookings) {
		bookings = bookings[:limit]
	}
	return bookings, nil
}

func (r *fakeBookingRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.db.bookings)), nil
}

func (r *fakeBookingRepo) UpdatePartial(_ context.Context, id uuid.UUID, fields map[string]any) (*entity.Booking, error) {
	booking, ok := r.db.bookings[id]
	if !ok {
		return nil, nil
	}

	for column, value := range fields {
		switch column {
		case "customer_name":
			booking.CustomerName = value.(string)
		case "customer_email":
			booking.CustomerEmail = value.(string)
		case "customer_phone":
			booking.CustomerPhone, _ = value.(*string)
		case "total_price":
			booking.TotalPrice = value.(float64)
		case "status":
			booking.Status = entity.BookingStatus(value.(string))
		default:
			return nil, fmt.Errorf("column %s is not updatable", column)
		}
	}
	booking.UpdatedAt = time.Now()

	return booking, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	booking, ok := r.db.bookings[id]
	if !ok {
		return apperr.NotFound(fmt.Sprintf("booking %s not found", id.String()))
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return nil
}

func (r *fakeBookingRepo) DeleteWithParticipants(_ context.Context, id uuid.UUID) error {
	if _, ok := r.db.bookings[id]; !ok {
		return apperr.NotFound(fmt.Sprintf("booking %s not found", id.String()))
	}

	for _, txn := range r.db.transactions {
		if txn.BookingID == id {
			return apperr.Conflict(fmt.Sprintf("booking %s still has payment records", id.String()))
		}
	}

	for pid, p := range r.db.participants {
		if p.BookingID == id {
			delete(r.db.participants, pid)
		}
	}
	delete(r.db.bookings, id)
	return nil
}

type fakeParticipantRepo struct{ db *fakeDB }

func (r *fakeParticipantRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Participant, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.participants[id], nil
}

func (r *fakeParticipantRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.Participant, error) {
	var participants []*entity.Participant
	for _, p := range r.db.participants {
		if p.BookingID == bookingID {
			participants = append(participants, p)
		}
	}
	return participants, nil
}

func (r *fakeParticipantRepo) Redeem(_ context.Context, id uuid.UUID) (*entity.Participant, bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.participants[id]
	if !ok {
		return nil, false, nil
	}

	if p.Status == entity.ParticipantStatusValid {
		now := time.Now()
		p.Status = entity.ParticipantStatusRedeemed
		p.ScannedAt = &now
		p.UpdatedAt = now
		snapshot := *p
		return &snapshot, true, nil
	}

	snapshot := *p
	return &snapshot, false, nil
}

type fakeTransactionRepo struct{ db *fakeDB }

func (r *fakeTransactionRepo) CreateWithStatusTransition(_ context.Context, txn *entity.Transaction, status entity.BookingStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	booking, ok := r.db.bookings[txn.BookingID]
	if !ok {
		return apperr.InvalidInput(fmt.Sprintf("booking %s does not exist", txn.BookingID.String()))
	}

	r.db.transactions = append(r.db.transactions, txn)
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTransactionRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.Transaction, error) {
	var transactions []*entity.Transaction
	for _, txn := range r.db.transactions {
		if txn.BookingID == bookingID {
			transactions = append(transactions, txn)
		}
	}
	return transactions, nil
}
