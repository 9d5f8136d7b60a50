package entity

import (
	"time"

	"github.com/google/uuid"
)

type ParticipantStatus string

// Participant ticket states. valid is the only non-terminal state:
// valid -> redeemed on scan, valid -> void administratively.
const (
	ParticipantStatusValid    ParticipantStatus = "valid"
	ParticipantStatusRedeemed ParticipantStatus = "redeemed"
	ParticipantStatusVoid     ParticipantStatus = "void"
)

type Participant struct {
	Base
	BookingID  uuid.UUID         `db:"booking_id"`
	Name       string            `db:"name"`
	Phone      *string           `db:"phone"`
	Address    *string           `db:"address"`
	BirthPlace *string           `db:"birth_place"`
	Status     ParticipantStatus `db:"status"`
	ScannedAt  *time.Time        `db:"scanned_at"`
}
