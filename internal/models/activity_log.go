package models

import (
	"time"

	"github.com/google/uuid"
)

// Rastro de auditoría append-only: no existe ninguna ruta de update.
type ActivityLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID   *uuid.UUID `gorm:"type:uuid" json:"user_id"`
	ClientID *uuid.UUID `gorm:"type:uuid;index" json:"client_id"`

	Action  string `gorm:"size:100;not null" json:"action"`
	Details string `gorm:"type:text" json:"details"`

	CreatedAt time.Time `json:"created_at"`
}
