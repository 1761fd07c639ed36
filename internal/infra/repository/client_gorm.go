package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

// UpsertByEmail crea o actualiza el cliente con el email (minúsculo)
// como clave natural. Una segunda submission con el mismo email
// refresca la fila existente en vez de duplicarla; los campos vacíos
// del payload no pisan datos ya guardados.
func (r *ClientGormRepository) UpsertByEmail(
	ctx context.Context,
	in *models.Client,
) (*models.Client, bool, error) {

	email := strings.ToLower(strings.TrimSpace(in.Email))

	var existing models.Client
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&existing).Error

	if err == nil {
		if in.Name != "" {
			existing.Name = in.Name
		}
		if in.Phone != "" {
			existing.Phone = in.Phone
		}
		if in.ServiceType != "" {
			existing.ServiceType = in.ServiceType
		}
		if in.Modality != "" {
			existing.Modality = in.Modality
		}
		if in.Goal != "" {
			existing.Goal = in.Goal
		}
		if in.Notes != "" {
			existing.Notes = in.Notes
		}

		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, false, err
		}
		return &existing, false, nil
	}

	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	in.Email = email
	if in.Status == "" {
		in.Status = "lead"
	}

	if err := r.db.WithContext(ctx).Create(in).Error; err != nil {
		return nil, false, err
	}
	return in, true, nil
}
