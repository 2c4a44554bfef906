package infra

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"itinera/internal/config"
	"itinera/internal/models/db_models"
)

func InitPostgresql(cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	if cfg.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_URL is required")
	}

	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})
	if err != nil {
		logger.Error("Error connecting to database", zap.Error(err))
		return nil, err
	}

	if err := connectionPool.AutoMigrate(&db_models.Itinerary{}, &db_models.ItineraryItem{}); err != nil {
		logger.Error("Error migrating itinerary tables", zap.Error(err))
		return nil, err
	}

	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("Error closing database connection", zap.Error(err))
	} else {
		logger.Info("PostgreSQL database connection closed successfully")
	}
}
