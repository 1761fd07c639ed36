package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/config"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.Session{},
		&models.Client{},
		&models.Invoice{},
		&models.FileRecord{},
		&models.ActivityLog{},
	); err != nil {
		logrus.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE clients
        SET status = 'lead'
        WHERE status IS NULL OR status = ''
    `)

	return db
}
