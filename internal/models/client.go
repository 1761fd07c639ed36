package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente / lead del negocio. El email (en minúsculas) es la clave
// natural de dedupe.
type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:30" json:"phone"`

	ServiceType string `gorm:"size:100" json:"service_type"`
	Modality    string `gorm:"size:20" json:"modality"` // presencial | virtual
	Goal        string `gorm:"type:text" json:"goal"`
	Notes       string `gorm:"type:text" json:"notes"`

	Status string `gorm:"size:20;default:'lead'" json:"status"` // lead | active | inactive

	MonthlyFee float64 `json:"monthly_fee"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
