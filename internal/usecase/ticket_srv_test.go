package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScan(t *testing.T) {
	ctx := context.Background()

	t.Run("valid ticket redeems once", func(t *testing.T) {
		db := newFakeDB()
		booking := db.seedBooking(entity.BookingStatusCompleted)
		p := db.seedParticipant(booking.ID, "Budi Santoso", entity.ParticipantStatusValid)
		svc := usecase.NewTicketService(db.repos(), zap.NewNop())

		resp, err := svc.Scan(ctx, &request.ScanTicketRequest{ParticipantID: p.ID.String()})
		require.NoError(t, err)
		assert.Equal(t, "Budi Santoso", resp.Name)
		assert.Equal(t, entity.ParticipantStatusRedeemed, resp.Status)
		require.NotNil(t, resp.ScannedAt)

		firstScan := *resp.ScannedAt

		// Second scan is an idempotent rejection: same name, no mutation.
		resp, err = svc.Scan(ctx, &request.ScanTicketRequest{ParticipantID: p.ID.String()})
		assert.Equal(t, apperr.KindAlreadyRedeemed, apperr.KindOf(err))
		require.NotNil(t, resp)
		assert.Equal(t, "Budi Santoso", resp.Name)
		require.NotNil(t, resp.ScannedAt)
		assert.Equal(t, firstScan, *resp.ScannedAt)
	})

	t.Run("voided ticket is rejected without mutation", func(t *testing.T) {
		db := newFakeDB()
		booking := db.seedBooking(entity.BookingStatusCompleted)
		p := db.seedParticipant(booking.ID, "Siti Rahma", entity.ParticipantStatusVoid)
		svc := usecase.NewTicketService(db.repos(), zap.NewNop())

		resp, err := svc.Scan(ctx, &request.ScanTicketRequest{ParticipantID: p.ID.String()})
		assert.Equal(t, apperr.KindVoided, apperr.KindOf(err))
		require.NotNil(t, resp)
		assert.Equal(t, "Siti Rahma", resp.Name)
		assert.Equal(t, entity.ParticipantStatusVoid, db.participants[p.ID].Status)
		assert.Nil(t, db.participants[p.ID].ScannedAt)
	})

	t.Run("unknown stored state is rejected as invalid", func(t *testing.T) {
		db := newFakeDB()
		booking := db.seedBooking(entity.BookingStatusCompleted)
		p := db.seedParticipant(booking.ID, "Budi Santoso", entity.ParticipantStatus("corrupted"))
		svc := usecase.NewTicketService(db.repos(), zap.NewNop())

		_, err := svc.Scan(ctx, &request.ScanTicketRequest{ParticipantID: p.ID.String()})
		assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
	})

	t.Run("unknown participant is not found", func(t *testing.T) {
		db := newFakeDB()
		svc := usecase.NewTicketService(db.repos(), zap.NewNop())

		_, err := svc.Scan(ctx, &request.ScanTicketRequest{ParticipantID: uuid.NewString()})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("malformed participant id is invalid input", func(t *testing.T) {
		db := newFakeDB()
		svc := usecase.NewTicketService(db.repos(), zap.NewNop())

		_, err := svc.Scan(ctx, &request.ScanTicketRequest{ParticipantID: "not-a-uuid"})
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	})

	t.Run("concurrent scans have exactly one winner", func(t *testing.T) {
		db := newFakeDB()
		booking := db.seedBooking(entity.BookingStatusCompleted)
		p := db.seedParticipant(booking.ID, "Budi Santoso", entity.ParticipantStatusValid)
		svc := usecase.NewTicketService(db.repos(), zap.NewNop())

		const scanners = 20
		var wg sync.WaitGroup
		errs := make([]error, scanners)

		for i := 0; i < scanners; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Scan(ctx, &request.ScanTicketRequest{ParticipantID: p.ID.String()})
			}(i)
		}
		wg.Wait()

		var wins, rejections int
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case apperr.KindOf(err) == apperr.KindAlreadyRedeemed:
				rejections++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, scanners-1, rejections)
		assert.Equal(t, entity.ParticipantStatusRedeemed, db.participants[p.ID].Status)
		assert.NotNil(t, db.participants[p.ID].ScannedAt)
	})
}

func TestIssueTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("issues ticket for fully-paid booking", func(t *testing.T) {
		db := newFakeDB()
		booking := db.seedBooking(entity.BookingStatusCompleted)
		db.seedParticipant(booking.ID, "Siti Rahma", entity.ParticipantStatusValid)
		db.seedParticipant(booking.ID, "Budi Santoso", entity.ParticipantStatusRedeemed)
		svc := usecase.NewTicketService(db.repos(), zap.NewNop())

		ticket, err := svc.IssueTicket(ctx, booking.ID.String())
		require.NoError(t, err)
		assert.Equal(t, booking.BookingCode, ticket.BookingCode)
		assert.Equal(t, booking.CustomerName, ticket.CustomerName)
		assert.Len(t, ticket.Participants, 2)
		assert.True(t, strings.HasPrefix(ticket.QRCode, "data:image/png;base64,"))
	})

	t.Run("unpaid booking never leaks participant data", func(t *testing.T) {
		for _, status := range []entity.BookingStatus{
			entity.BookingStatusAwaitingPayment,
			entity.BookingStatusDownPaymentPaid,
			entity.BookingStatusConfirmed,
			entity.BookingStatusCanceled,
		} {
			db := newFakeDB()
			booking := db.seedBooking(status)
			db.seedParticipant(booking.ID, "Siti Rahma", entity.ParticipantStatusValid)
			svc := usecase.NewTicketService(db.repos(), zap.NewNop())

			ticket, err := svc.IssueTicket(ctx, booking.ID.String())
			assert.Equal(t, apperr.KindPaymentIncomplete, apperr.KindOf(err), "status %s", status)
			assert.Nil(t, ticket)
		}
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		db := newFakeDB()
		svc := usecase.NewTicketService(db.repos(), zap.NewNop())

		_, err := svc.IssueTicket(ctx, uuid.NewString())
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
