package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error)
	GetBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error)
	UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	TransitionStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string) error
	RecordPayment(ctx context.Context, req *request.CreateTransactionRequest) (*response.TransactionResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperr.InvalidInput("validation failed: " + utils.FormatValidationErrors(errs))
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, apperr.InvalidInput(fmt.Sprintf("invalid package ID format %s", req.PackageID))
	}

	// Resolve package and city; the city is only needed for the code prefix
	// so a dangling city reference falls through the prefix precedence.
	pkg, err := s.repo.Package.FindByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, apperr.NotFound(fmt.Sprintf("package %s not found", req.PackageID))
	}

	var cityCode, cityName string
	city, err := s.repo.City.FindByID(ctx, pkg.CityID)
	if err != nil {
		return nil, err
	}
	if city != nil {
		cityCode = city.Code
		cityName = city.Name
	}

	prefix := utils.BookingCodePrefix(cityCode, cityName, pkg.Name)
	bookingCode := utils.GenerateBookingCode(prefix)

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingCode:   bookingCode,
		PackageID:     packageID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: nilIfEmpty(req.CustomerPhone),
		TotalPrice:    *req.TotalPrice,
		Status:        entity.BookingStatusAwaitingPayment,
	}

	participants := make([]*entity.Participant, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = &entity.Participant{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			BookingID:  booking.ID,
			Name:       p.Name,
			Phone:      nilIfEmpty(p.Phone),
			Address:    nilIfEmpty(p.Address),
			BirthPlace: nilIfEmpty(p.BirthPlace),
			Status:     entity.ParticipantStatusValid,
		}
	}

	if err := s.repo.Booking.CreateWithParticipants(ctx, booking, participants); err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_code", booking.BookingCode),
		zap.String("package_id", req.PackageID),
		zap.Int("participants", len(participants)),
		zap.Float64("total_price", booking.TotalPrice),
	)

	return &response.CreateBookingResponse{
		BookingID:   booking.ID.String(),
		BookingCode: booking.BookingCode,
		Status:      booking.Status,
	}, nil
}

func (s *bookingService) GetBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.Count(ctx)
	if err != nil {
		return nil, err
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error) {
	booking, id, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	participants, err := s.repo.Participant.FindByBookingID(ctx, id)
	if err != nil {
		return nil, err
	}

	transactions, err := s.repo.Transaction.FindByBookingID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(booking),
		Participants:    make([]response.ParticipantResponse, len(participants)),
		Transactions:    make([]response.TransactionResponse, len(transactions)),
	}
	for i, p := range participants {
		detail.Participants[i] = response.ParticipantToResponse(p)
	}
	for i, txn := range transactions {
		detail.Transactions[i] = response.TransactionToResponse(txn, booking.Status)
	}

	return detail, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.InvalidInput(fmt.Sprintf("invalid booking ID format %s", bookingID))
	}

	if !req.HasFields() {
		return nil, apperr.InvalidInput("no updatable fields supplied")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.InvalidInput("validation failed: " + utils.FormatValidationErrors(errs))
	}

	fields := map[string]any{}
	if req.CustomerName != nil {
		fields["customer_name"] = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		fields["customer_email"] = *req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		// Empty phone normalizes to NULL.
		fields["customer_phone"] = nilIfEmpty(*req.CustomerPhone)
	}
	if req.TotalPrice != nil {
		fields["total_price"] = coerceTotalPrice(req.TotalPrice)
	}
	if req.Status != nil {
		status, ok := entity.ParseBookingStatus(*req.Status)
		if !ok {
			return nil, apperr.InvalidInput(fmt.Sprintf("invalid status %q", *req.Status))
		}
		fields["status"] = string(status)
	}

	booking, err := s.repo.Booking.UpdatePartial(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound(fmt.Sprintf("booking %s not found", bookingID))
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.Int("fields", len(fields)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) TransitionStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.InvalidInput(fmt.Sprintf("invalid booking ID format %s", bookingID))
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.InvalidInput("validation failed: " + utils.FormatValidationErrors(errs))
	}

	status, ok := entity.ParseBookingStatus(req.Status)
	if !ok {
		return nil, apperr.InvalidInput(fmt.Sprintf("invalid status %q", req.Status))
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.log.Info("Booking status transitioned",
		zap.String("booking_id", bookingID),
		zap.String("status", string(status)),
	)

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound(fmt.Sprintf("booking %s not found", bookingID))
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return apperr.InvalidInput(fmt.Sprintf("invalid booking ID format %s", bookingID))
	}

	return s.repo.Booking.DeleteWithParticipants(ctx, id)
}

func (s *bookingService) RecordPayment(ctx context.Context, req *request.CreateTransactionRequest) (*response.TransactionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Record payment validation failed", zap.Any("errors", errs))
		return nil, apperr.InvalidInput("validation failed: " + utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperr.InvalidInput(fmt.Sprintf("invalid booking ID format %s", req.BookingID))
	}

	// A down payment parks the booking at dp_paid; any other payment type
	// settles it.
	status := entity.BookingStatusCompleted
	if strings.EqualFold(strings.TrimSpace(req.PaymentType), entity.PaymentTypeDownPayment) {
		status = entity.BookingStatusDownPaymentPaid
	}

	txn := &entity.Transaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookingID:     bookingID,
		PaymentType:   strings.ToLower(strings.TrimSpace(req.PaymentType)),
		AmountPaid:    *req.AmountPaid,
		PaymentMethod: req.PaymentMethod,
		VANumber:      req.VANumber,
	}

	if err := s.repo.Transaction.CreateWithStatusTransition(ctx, txn, status); err != nil {
		return nil, err
	}

	resp := response.TransactionToResponse(txn, status)
	return &resp, nil
}

// findBooking resolves a path id into a stored booking or a typed error.
func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, uuid.UUID, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, uuid.Nil, apperr.InvalidInput(fmt.Sprintf("invalid booking ID format %s", bookingID))
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if booking == nil {
		return nil, uuid.Nil, apperr.NotFound(fmt.Sprintf("booking %s not found", bookingID))
	}

	return booking, id, nil
}

// coerceTotalPrice applies the lenient policy: malformed or negative input
// becomes 0 rather than a rejection. Quoted numbers are accepted.
func coerceTotalPrice(raw []byte) float64 {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	price, err := strconv.ParseFloat(s, 64)
	if err != nil || price < 0 {
		return 0
	}
	return price
}

func nilIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
