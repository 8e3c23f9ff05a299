package repository

import (
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	Save(category *model.Category) error
	FindForBusiness(businessID, id uint) (*model.Category, error)
	ListForBusiness(businessID uint) ([]model.Category, error)
	// DeleteScoped removes the category only when both ids match; zero rows
	// affected is not an error.
	DeleteScoped(businessID, id uint) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"description": category.Description,
			"business_id": category.BusinessID,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) Save(category *model.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to save category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) FindForBusiness(businessID, id uint) (*model.Category, error) {
	var category model.Category
	err := r.db.Where("business_id = ?", businessID).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListForBusiness(businessID uint) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("business_id = ?", businessID).Find(&categories).Error
	if err != nil {
		logger.Error("Failed to list categories", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) DeleteScoped(businessID, id uint) (int64, error) {
	result := r.db.Where("business_id = ?", businessID).Delete(&model.Category{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete category in database", result.Error, map[string]interface{}{
			"category_id": id,
			"business_id": businessID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
