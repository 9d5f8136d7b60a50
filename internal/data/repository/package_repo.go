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

type PackageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Package, error)
}

type packageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPackageRepository(db database.PgxIface, log *zap.Logger) PackageRepository {
	return &packageRepository{
		db:  db,
		log: log.With(zap.String("repository", "package")),
	}
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Package, error) {
	query := `
		SELECT id, name, price, city_id, image, duration, capacity, is_active, created_at, updated_at
		FROM packages
		WHERE id = $1
	`

	var pkg entity.Package
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Price,
		&pkg.CityID,
		&pkg.Image,
		&pkg.Duration,
		&pkg.Capacity,
		&pkg.IsActive,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find package by ID",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return nil, fmt.Errorf("find package by ID %s: %w", id.String(), err)
	}

	return &pkg, nil
}
