package entity

import "github.com/google/uuid"

// City is reference data, read-only to the booking flow. Code is the
// canonical booking-code prefix source (max 3 chars).
type City struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
	Code string    `db:"code"`
}
