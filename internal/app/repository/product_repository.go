package repository

import (
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	Save(tx *gorm.DB, product *model.Product) error
	// FindForBusiness loads the product with its business, category and image,
	// scoped to the owning business. Bound to tx when given.
	FindForBusiness(tx *gorm.DB, businessID, id uint) (*model.Product, error)
	// ListForBusiness projects the listing subset: id, name, image, price,
	// validity.
	ListForBusiness(businessID uint) ([]model.Product, error)
	// DeleteScoped removes the product only when both ids match; zero rows
	// affected is not an error.
	DeleteScoped(businessID, id uint) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(tx *gorm.DB, product *model.Product) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Omit("Image", "Business", "Category").Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":        product.Name,
			"business_id": product.BusinessID,
			"category_id": product.CategoryID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id":  product.ID,
		"name":        product.Name,
		"business_id": product.BusinessID,
	})
	return nil
}

func (r *productRepository) Save(tx *gorm.DB, product *model.Product) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Omit("Image", "Business", "Category").Save(product).Error; err != nil {
		logger.Error("Failed to save product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindForBusiness(tx *gorm.DB, businessID, id uint) (*model.Product, error) {
	if tx == nil {
		tx = r.db
	}
	var product model.Product
	err := tx.
		Preload("Business").
		Preload("Category").
		Preload("Image").
		Where("business_id = ?", businessID).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListForBusiness(businessID uint) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Select("id", "name", "image_id", "price", "valid", "business_id").
		Preload("Image").
		Where("business_id = ?", businessID).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to list products", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) DeleteScoped(businessID, id uint) (int64, error) {
	result := r.db.Where("business_id = ?", businessID).Delete(&model.Product{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete product in database", result.Error, map[string]interface{}{
			"product_id":  id,
			"business_id": businessID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
