package model

import (
	"time"

	"github.com/google/uuid"
)

// List is an ordered column of cards inside a board. Position is 1-based and
// dense within the board: after every completed reorder the positions of a
// board's lists form a permutation of 1..N.
type List struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"not null"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Board Board `gorm:"foreignKey:BoardID"`
}
