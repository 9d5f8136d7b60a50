package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ParticipantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Participant, error)

	// Redeem performs the valid -> redeemed transition as one conditional
	// UPDATE so concurrent scans cannot both win. The bool reports whether
	// this call made the transition; when false the returned participant
	// (nil if absent) carries the state observed instead.
	Redeem(ctx context.Context, id uuid.UUID) (*entity.Participant, bool, error)
}

type participantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewParticipantRepository(db database.PgxIface, log *zap.Logger) ParticipantRepository {
	return &participantRepository{
		db:  db,
		log: log.With(zap.String("repository", "participant")),
	}
}

const participantColumns = `id, booking_id, name, phone, address, birth_place, status, scanned_at, created_at, updated_at`

func scanParticipant(row pgx.Row, p *entity.Participant) error {
	return row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Name,
		&p.Phone,
		&p.Address,
		&p.BirthPlace,
		&p.Status,
		&p.ScannedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *participantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error) {
	query := fmt.Sprintf(`SELECT %s FROM participants WHERE id = $1`, participantColumns)

	var participant entity.Participant
	err := scanParticipant(r.db.QueryRow(ctx, query, id), &participant)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find participant by ID",
			zap.Error(err),
			zap.String("participant_id", id.String()),
		)
		return nil, fmt.Errorf("find participant by ID %s: %w", id.String(), err)
	}

	return &participant, nil
}

func (r *participantRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Participant, error) {
	query := fmt.Sprintf(`SELECT %s FROM participants WHERE booking_id = $1 ORDER BY created_at`, participantColumns)

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find participants by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find participants by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var participants []*entity.Participant
	for rows.Next() {
		var participant entity.Participant
		if err := scanParticipant(rows, &participant); err != nil {
			r.log.Error("Failed to scan participant row", zap.Error(err))
			return nil, fmt.Errorf("scan participant row: %w", err)
		}
		participants = append(participants, &participant)
	}

	return participants, nil
}

func (r *participantRepository) Redeem(ctx context.Context, id uuid.UUID) (*entity.Participant, bool, error) {
	query := fmt.Sprintf(`
		UPDATE participants
		SET status = $2, scanned_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING %s
	`, participantColumns)

	var participant entity.Participant
	err := scanParticipant(
		r.db.QueryRow(ctx, query, id, entity.ParticipantStatusRedeemed, entity.ParticipantStatusValid),
		&participant,
	)

	if err == nil {
		r.log.Info("Participant redeemed",
			zap.String("participant_id", id.String()),
			zap.String("name", participant.Name),
		)
		return &participant, true, nil
	}

	if err != pgx.ErrNoRows {
		r.log.Error("Failed to redeem participant",
			zap.Error(err),
			zap.String("participant_id", id.String()),
		)
		return nil, false, fmt.Errorf("redeem participant %s: %w", id.String(), err)
	}

	// No transition happened: either the participant does not exist or it
	// already left the valid state. Report what is stored now.
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	return current, false, nil
}
