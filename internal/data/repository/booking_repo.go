package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/database"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
)

// updatableBookingColumns is the allow-list for partial updates. Anything
// outside this set never reaches the UPDATE statement.
var updatableBookingColumns = map[string]bool{
	"customer_name":  true,
	"customer_email": true,
	"customer_phone": true,
	"total_price":    true,
	"status":         true,
}

type BookingRepository interface {
	// CreateWithParticipants inserts the booking and all of its
	// participants in one transaction; either all rows commit or none do.
	CreateWithParticipants(ctx context.Context, booking *entity.Booking, participants []*entity.Participant) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context) (int64, error)

	// UpdatePartial mutates only the supplied columns and always refreshes
	// updated_at. Returns nil when the booking does not exist.
	UpdatePartial(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error

	// DeleteWithParticipants removes the participants then the booking in
	// one transaction.
	DeleteWithParticipants(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) CreateWithParticipants(ctx context.Context, booking *entity.Booking, participants []*entity.Participant) error {
	insertBooking := `
		INSERT INTO bookings (id, booking_code, package_id, customer_name, customer_email, customer_phone, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	insertParticipant := `
		INSERT INTO participants (id, booking_id, name, phone, address, birth_place, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	err := r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertBooking,
			booking.ID,
			booking.BookingCode,
			booking.PackageID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.TotalPrice,
			booking.Status,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation {
				return apperr.Wrap(apperr.KindConflict, fmt.Sprintf("booking code %s already exists", booking.BookingCode), err)
			}
			return fmt.Errorf("insert booking %s: %w", booking.BookingCode, err)
		}

		for _, p := range participants {
			_, err := tx.Exec(ctx, insertParticipant,
				p.ID,
				p.BookingID,
				p.Name,
				p.Phone,
				p.Address,
				p.BirthPlace,
				p.Status,
				p.CreatedAt,
				p.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert participant %s: %w", p.Name, err)
			}
		}

		return nil
	})

	if err != nil {
		r.log.Error("Failed to create booking with participants",
			zap.Error(err),
			zap.String("booking_code", booking.BookingCode),
			zap.Int("participants", len(participants)),
		)
		return err
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, booking_code, package_id, customer_name, customer_email, customer_phone, total_price, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.BookingCode,
		&booking.PackageID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT id, booking_code, package_id, customer_name, customer_email, customer_phone, total_price, status, created_at, updated_at
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.BookingCode,
			&booking.PackageID,
			&booking.CustomerName,
			&booking.CustomerEmail,
			&booking.CustomerPhone,
			&booking.TotalPrice,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) UpdatePartial(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Booking, error) {
	record := goqu.Record{}
	for column, value := range fields {
		if !updatableBookingColumns[column] {
			return nil, fmt.Errorf("column %s is not updatable", column)
		}
		record[column] = value
	}
	record["updated_at"] = time.Now()

	stmt := goqu.Dialect("postgres").
		Update("bookings").
		Prepared(true).
		Set(record).
		Where(goqu.C("id").Eq(id.String())).
		Returning("id", "booking_code", "package_id", "customer_name", "customer_email", "customer_phone", "total_price", "status", "created_at", "updated_at")

	query, args, err := stmt.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build partial update for booking %s: %w", id.String(), err)
	}

	var booking entity.Booking
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&booking.ID,
		&booking.BookingCode,
		&booking.PackageID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("update booking %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(fmt.Sprintf("booking %s not found", id.String()))
	}

	return nil
}

func (r *bookingRepository) DeleteWithParticipants(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM participants WHERE booking_id = $1`, id); err != nil {
			return fmt.Errorf("delete participants of booking %s: %w", id.String(), err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgCodeForeignKeyViolation {
				return apperr.Wrap(apperr.KindConflict, fmt.Sprintf("booking %s still has payment records", id.String()), err)
			}
			return fmt.Errorf("delete booking %s: %w", id.String(), err)
		}

		if result.RowsAffected() == 0 {
			return apperr.NotFound(fmt.Sprintf("booking %s not found", id.String()))
		}

		return nil
	})

	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return err
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}
