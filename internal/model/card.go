package model

import (
	"time"

	"github.com/google/uuid"
)

// Card belongs to exactly one list at a time. Position follows the same dense
// 1..N invariant as List, scoped to ListID. Moving a card across lists is a
// ListID reassignment plus a position recompute in both scopes.
type Card struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ListID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	Position    int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	List List `gorm:"foreignKey:ListID"`
}
