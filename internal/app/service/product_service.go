package service

import (
	"errors"

	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Obs         string
}

// ProductMutation is a partial overlay for update: nil fields keep the stored
// value.
type ProductMutation struct {
	Name        *string
	Description *string
	Price       *float64
	Obs         *string
	Valid       *bool
}

type ProductService interface {
	ListForBusiness(businessID uint) ([]model.Product, error)
	GetByID(businessID, id uint) (*model.Product, error)
	Create(businessID, categoryID uint, input ProductInput, image FileInput) (*model.Product, error)
	Update(businessID, productID, categoryID uint, input ProductMutation, image FileInput) (*model.Product, error)
	Delete(businessID, productID uint) error
}

type productService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	businessRepo repository.BusinessRepository
	categoryRepo repository.CategoryRepository
	fileRepo     repository.FileRepository
}

func NewProductService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	businessRepo repository.BusinessRepository,
	categoryRepo repository.CategoryRepository,
	fileRepo repository.FileRepository,
) ProductService {
	return &productService{
		db:           db,
		productRepo:  productRepo,
		businessRepo: businessRepo,
		categoryRepo: categoryRepo,
		fileRepo:     fileRepo,
	}
}

func (s *productService) ListForBusiness(businessID uint) ([]model.Product, error) {
	if _, err := s.businessRepo.FindByIDBare(nil, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return s.productRepo.ListForBusiness(businessID)
}

func (s *productService) GetByID(businessID, id uint) (*model.Product, error) {
	if _, err := s.businessRepo.FindByIDBare(nil, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	product, err := s.productRepo.FindForBusiness(nil, businessID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Create builds the product aggregate: image file resolved by dedup inside
// the transaction, business and category resolved before it opens.
func (s *productService) Create(businessID, categoryID uint, input ProductInput, image FileInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"business_id": businessID,
		"category_id": categoryID,
		"name":        input.Name,
	})

	business, err := s.businessRepo.FindByIDBare(nil, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	category, err := s.categoryRepo.FindForBusiness(businessID, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	var product *model.Product
	err = repository.RunInTransaction(s.db, func(tx *gorm.DB) error {
		imageFile, err := s.fileRepo.Resolve(tx, image.Name, image.Path)
		if err != nil {
			return err
		}

		product = &model.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Obs:         input.Obs,
			ImageID:     &imageFile.ID,
			BusinessID:  business.ID,
			CategoryID:  category.ID,
			Valid:       true,
		}
		return s.productRepo.Create(tx, product)
	})
	if err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"business_id": businessID,
			"name":        input.Name,
		})
		return nil, err
	}

	return s.productRepo.FindForBusiness(nil, businessID, product.ID)
}

// Update overlays the mutation onto the stored product, re-validating that
// business and category still exist before the transaction opens.
func (s *productService) Update(businessID, productID, categoryID uint, input ProductMutation, image FileInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"business_id": businessID,
		"product_id":  productID,
	})

	business, err := s.businessRepo.FindByIDBare(nil, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	category, err := s.categoryRepo.FindForBusiness(businessID, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	var product *model.Product
	err = repository.RunInTransaction(s.db, func(tx *gorm.DB) error {
		imageFile, err := s.fileRepo.Resolve(tx, image.Name, image.Path)
		if err != nil {
			return err
		}

		product, err = s.productRepo.FindForBusiness(tx, businessID, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.Obs != nil {
			product.Obs = *input.Obs
		}
		if input.Valid != nil {
			product.Valid = *input.Valid
		}
		product.ImageID = &imageFile.ID
		product.BusinessID = business.ID
		product.CategoryID = category.ID

		return s.productRepo.Save(tx, product)
	})
	if err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	return s.productRepo.FindForBusiness(nil, businessID, product.ID)
}

// Delete removes the product scoped by both business and product id. A delete
// that matches neither fails silently with zero rows affected.
func (s *productService) Delete(businessID, productID uint) error {
	if _, err := s.businessRepo.FindByIDBare(nil, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBusinessNotFound
		}
		return err
	}

	rows, err := s.productRepo.DeleteScoped(businessID, productID)
	if err != nil {
		return err
	}

	logger.Info("Product delete completed", map[string]interface{}{
		"business_id":   businessID,
		"product_id":    productID,
		"rows_affected": rows,
	})
	return nil
}
