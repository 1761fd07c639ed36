package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Metadatos de un archivo ya persistido en el object storage. FileURL
// es una URL firmada (máximo 7 días por SigV4); FileKey es la clave
// durable del objeto, con la que se reemite la URL cuando caduca.
type FileRecord struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`

	FileName string `gorm:"size:255;not null" json:"file_name"`
	FileKey  string `gorm:"size:512;not null" json:"-"`
	FileURL  string `gorm:"size:2048;not null" json:"file_url"`
	FileType string `gorm:"size:100" json:"file_type"`

	ThumbKey string `gorm:"size:512" json:"-"`
	ThumbURL string `gorm:"size:2048" json:"thumb_url"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *FileRecord) TableName() string { return "files" }

func (f *FileRecord) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
