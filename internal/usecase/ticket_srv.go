package usecase

import (
	"context"
	"encoding/base64"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

type TicketService interface {
	// Scan attempts the valid -> redeemed transition for one participant.
	// On rejection the response is still populated so the operator sees
	// whose ticket was presented.
	Scan(ctx context.Context, req *request.ScanTicketRequest) (*response.ScanTicketResponse, error)

	// IssueTicket assembles the presentable ticket for a fully-paid
	// booking. Read-only.
	IssueTicket(ctx context.Context, bookingID string) (*response.TicketResponse, error)
}

type ticketService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketService(repo *repository.Repository, log *zap.Logger) TicketService {
	return &ticketService{
		repo: repo,
		log:  log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) Scan(ctx context.Context, req *request.ScanTicketRequest) (*response.ScanTicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.InvalidInput("validation failed: " + utils.FormatValidationErrors(errs))
	}

	participantID, err := uuid.Parse(req.ParticipantID)
	if err != nil {
		return nil, apperr.InvalidInput(fmt.Sprintf("invalid participant ID format %s", req.ParticipantID))
	}

	participant, transitioned, err := s.repo.Participant.Redeem(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, apperr.NotFound(fmt.Sprintf("participant %s not found", req.ParticipantID))
	}

	resp := &response.ScanTicketResponse{
		ParticipantID: participant.ID.String(),
		Name:          participant.Name,
		Status:        participant.Status,
		ScannedAt:     participant.ScannedAt,
	}

	if transitioned {
		s.log.Info("Ticket redeemed",
			zap.String("participant_id", req.ParticipantID),
			zap.String("name", participant.Name),
		)
		return resp, nil
	}

	// The conditional update lost: classify the state we observed instead.
	// Rejections never mutate anything.
	switch participant.Status {
	case entity.ParticipantStatusRedeemed:
		return resp, apperr.AlreadyRedeemed(fmt.Sprintf("ticket for %s has already been redeemed", participant.Name))
	case entity.ParticipantStatusVoid:
		return resp, apperr.Voided(fmt.Sprintf("ticket for %s has been voided", participant.Name))
	default:
		// Unreachable given the enumeration, but the state machine stays
		// total.
		s.log.Error("Participant in unknown state",
			zap.String("participant_id", req.ParticipantID),
			zap.String("status", string(participant.Status)),
		)
		return resp, apperr.InvalidState(fmt.Sprintf("ticket for %s is in an invalid state", participant.Name))
	}
}

func (s *ticketService) IssueTicket(ctx context.Context, bookingID string) (*response.TicketResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.InvalidInput(fmt.Sprintf("invalid booking ID format %s", bookingID))
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound(fmt.Sprintf("booking %s not found", bookingID))
	}

	if booking.Status != entity.BookingStatusCompleted {
		return nil, apperr.PaymentIncomplete(fmt.Sprintf("booking %s is not fully paid", booking.BookingCode))
	}

	participants, err := s.repo.Participant.FindByBookingID(ctx, id)
	if err != nil {
		return nil, err
	}

	qr, err := encodeQR(booking.BookingCode)
	if err != nil {
		return nil, apperr.Internal("encode ticket QR code", err)
	}

	ticket := &response.TicketResponse{
		BookingCode:   booking.BookingCode,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		Participants:  make([]response.ParticipantResponse, len(participants)),
		TotalPrice:    booking.TotalPrice,
		Status:        booking.Status,
		QRCode:        qr,
	}
	for i, p := range participants {
		ticket.Participants[i] = response.ParticipantToResponse(p)
	}

	s.log.Info("Ticket issued",
		zap.String("booking_id", bookingID),
		zap.String("booking_code", booking.BookingCode),
		zap.Int("participants", len(participants)),
	)

	return ticket, nil
}

// encodeQR renders the booking code as a PNG data URI for embedding in the
// ticket payload.
func encodeQR(bookingCode string) (string, error) {
	png, err := qrcode.Encode(bookingCode, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
