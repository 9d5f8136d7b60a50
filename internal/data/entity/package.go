package entity

import "github.com/google/uuid"

// Package is a tour package. Owned by reference-data admin, read-only here.
type Package struct {
	Base
	Name     string    `db:"name"`
	Price    float64   `db:"price"`
	CityID   uuid.UUID `db:"city_id"`
	Image    *string   `db:"image"`
	Duration int       `db:"duration"`
	Capacity int       `db:"capacity"`
	IsActive bool      `db:"is_active"`
}
