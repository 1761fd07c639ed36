package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invoice struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`
	Client   Client    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"size:3;default:'EUR'" json:"currency"`
	Concept  string  `gorm:"size:255" json:"concept"`

	Status string `gorm:"size:20;default:'pending'" json:"status"` // pending | paid | cancelled

	DueDate time.Time `gorm:"index" json:"due_date"`

	// Invariante: PaidDate != nil solo cuando Status == paid.
	PaidDate *time.Time `json:"paid_date"`

	PaymentURL string `gorm:"size:512" json:"payment_url"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
