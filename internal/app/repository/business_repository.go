package repository

import (
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

type BusinessRepository interface {
	Create(tx *gorm.DB, business *model.Business) error
	Save(tx *gorm.DB, business *model.Business) error
	FindByID(id uint) (*model.Business, error)
	// FindByIDBare loads the row without relations, bound to tx when given, for
	// in-transaction merge loads.
	FindByIDBare(tx *gorm.DB, id uint) (*model.Business, error)
	// FindByIDFull loads addresses, categories and products, for deletion.
	FindByIDFull(id uint) (*model.Business, error)
	// ReplaceAddresses normalizes the business to exactly the given address set.
	ReplaceAddresses(tx *gorm.DB, business *model.Business, addresses []*model.Address) error
	Delete(tx *gorm.DB, business *model.Business) error
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(tx *gorm.DB, business *model.Business) error {
	if tx == nil {
		tx = r.db
	}
	// Omit associations: logo, segment and addresses are persisted through
	// their own repositories inside the same transaction.
	if err := tx.Omit("Logo", "Image", "Segment", "Addresses").Create(business).Error; err != nil {
		logger.Error("Failed to create business in database", err, map[string]interface{}{
			"name":       business.Name,
			"segment_id": business.SegmentID,
		})
		return err
	}

	logger.Debug("Business created in database", map[string]interface{}{
		"business_id": business.ID,
		"name":        business.Name,
	})
	return nil
}

func (r *businessRepository) Save(tx *gorm.DB, business *model.Business) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Omit("Logo", "Image", "Segment", "Addresses").Save(business).Error; err != nil {
		logger.Error("Failed to save business in database", err, map[string]interface{}{
			"business_id": business.ID,
		})
		return err
	}
	return nil
}

func (r *businessRepository) FindByID(id uint) (*model.Business, error) {
	var business model.Business
	err := r.db.
		Preload("Addresses").
		Preload("Segment").
		Preload("Logo").
		Preload("Image").
		First(&business, id).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) FindByIDBare(tx *gorm.DB, id uint) (*model.Business, error) {
	if tx == nil {
		tx = r.db
	}
	var business model.Business
	if err := tx.First(&business, id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) FindByIDFull(id uint) (*model.Business, error) {
	var business model.Business
	err := r.db.
		Preload("Addresses").
		Preload("Categories").
		Preload("Products").
		First(&business, id).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) ReplaceAddresses(tx *gorm.DB, business *model.Business, addresses []*model.Address) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Model(business).Association("Addresses").Replace(addresses); err != nil {
		logger.Error("Failed to replace business addresses", err, map[string]interface{}{
			"business_id": business.ID,
		})
		return err
	}
	return nil
}

func (r *businessRepository) Delete(tx *gorm.DB, business *model.Business) error {
	if tx == nil {
		tx = r.db
	}
	// Soft delete: the row is flagged removed and excluded from normal reads.
	if err := tx.Delete(business).Error; err != nil {
		logger.Error("Failed to delete business in database", err, map[string]interface{}{
			"business_id": business.ID,
		})
		return err
	}
	return nil
}
