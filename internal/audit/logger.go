package audit

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	userID *uuid.UUID,
	clientID *uuid.UUID,
	action string,
	details string,
) error {

	entry := models.ActivityLog{
		UserID:   userID,
		ClientID: clientID,
		Action:   action,
		Details:  details,
	}

	return l.db.Create(&entry).Error
}
