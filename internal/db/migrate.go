package db

import (
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.File{},
		&model.User{},
		&model.Segment{},
		&model.Business{},
		&model.Address{},
		&model.Category{},
		&model.Product{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds the initial segment taxonomy when the table is empty
func Seed() error {
	var count int64
	if err := DB.Model(&model.Segment{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	segments := []model.Segment{
		{Description: "Restaurant"},
		{Description: "Retail"},
		{Description: "Services"},
		{Description: "Health"},
		{Description: "Beauty"},
	}

	if err := DB.Create(&segments).Error; err != nil {
		logger.Error("Failed to seed segments", err)
		return err
	}

	logger.Info("Seeded initial segments", map[string]interface{}{
		"count": len(segments),
	})
	return nil
}
