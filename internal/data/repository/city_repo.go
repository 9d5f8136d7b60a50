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

type CityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.City, error)
}

type cityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCityRepository(db database.PgxIface, log *zap.Logger) CityRepository {
	return &cityRepository{
		db:  db,
		log: log.With(zap.String("repository", "city")),
	}
}

func (r *cityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.City, error) {
	query := `
		SELECT id, name, code
		FROM cities
		WHERE id = $1
	`

	var city entity.City
	err := r.db.QueryRow(ctx, query, id).Scan(
		&city.ID,
		&city.Name,
		&city.Code,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find city by ID",
			zap.Error(err),
			zap.String("city_id", id.String()),
		)
		return nil, fmt.Errorf("find city by ID %s: %w", id.String(), err)
	}

	return &city, nil
}
