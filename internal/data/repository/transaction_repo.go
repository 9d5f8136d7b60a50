package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type TransactionRepository interface {
	// CreateWithStatusTransition appends the ledger row and moves the
	// booking to its post-payment status in one transaction.
	CreateWithStatusTransition(ctx context.Context, txn *entity.Transaction, status entity.BookingStatus) error

	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Transaction, error)
}

type transactionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransactionRepository(db database.PgxIface, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction")),
	}
}

func (r *transactionRepository) CreateWithStatusTransition(ctx context.Context, txn *entity.Transaction, status entity.BookingStatus) error {
	insertTransaction := `
		INSERT INTO transactions (id, booking_id, payment_type, amount_paid, payment_method, va_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	err := r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertTransaction,
			txn.ID,
			txn.BookingID,
			txn.PaymentType,
			txn.AmountPaid,
			txn.PaymentMethod,
			txn.VANumber,
			txn.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgCodeForeignKeyViolation {
				return apperr.Wrap(apperr.KindInvalidInput, fmt.Sprintf("booking %s does not exist", txn.BookingID.String()), err)
			}
			return fmt.Errorf("insert transaction for booking %s: %w", txn.BookingID.String(), err)
		}

		result, err := tx.Exec(ctx, `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, txn.BookingID, status)
		if err != nil {
			return fmt.Errorf("transition booking %s to %s: %w", txn.BookingID.String(), string(status), err)
		}

		if result.RowsAffected() == 0 {
			return apperr.InvalidInput(fmt.Sprintf("booking %s does not exist", txn.BookingID.String()))
		}

		return nil
	})

	if err != nil {
		r.log.Error("Failed to record payment",
			zap.Error(err),
			zap.String("booking_id", txn.BookingID.String()),
			zap.String("payment_type", txn.PaymentType),
		)
		return err
	}

	r.log.Info("Payment recorded",
		zap.String("transaction_id", txn.ID.String()),
		zap.String("booking_id", txn.BookingID.String()),
		zap.String("payment_type", txn.PaymentType),
		zap.Float64("amount_paid", txn.AmountPaid),
		zap.String("new_status", string(status)),
	)

	return nil
}

func (r *transactionRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Transaction, error) {
	query := `
		SELECT id, booking_id, payment_type, amount_paid, payment_method, va_number, created_at
		FROM transactions
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find transactions by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find transactions by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var transactions []*entity.Transaction
	for rows.Next() {
		var txn entity.Transaction
		err := rows.Scan(
			&txn.ID,
			&txn.BookingID,
			&txn.PaymentType,
			&txn.AmountPaid,
			&txn.PaymentMethod,
			&txn.VANumber,
			&txn.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan transaction row", zap.Error(err))
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		transactions = append(transactions, &txn)
	}

	return transactions, nil
}
