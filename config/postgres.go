package config

import (
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/models"
)

func OpenPostgres(cfg PostgresConfig) (*gorm.DB, error) {
	if cfg.URI == "" {
		return nil, errors.New("postgres uri is not set")
	}
	db, err := gorm.Open(postgres.Open(cfg.URI), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pooling settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.Skill{},
		&models.TeachableSkill{},
		&models.SkillRequest{},
		&models.Session{},
		&models.SessionRecording{},
		&models.SessionSummary{},
		&models.SessionNotes{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
