package service

import (
	"errors"

	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryService interface {
	ListForBusiness(businessID uint) ([]model.Category, error)
	GetByID(businessID, id uint) (*model.Category, error)
	Create(businessID uint, description string) (*model.Category, error)
	Update(businessID, id uint, description string) (*model.Category, error)
	Delete(businessID, id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	businessRepo repository.BusinessRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, businessRepo repository.BusinessRepository) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		businessRepo: businessRepo,
	}
}

func (s *categoryService) ListForBusiness(businessID uint) ([]model.Category, error) {
	if err := s.requireBusiness(businessID); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListForBusiness(businessID)
}

func (s *categoryService) GetByID(businessID, id uint) (*model.Category, error) {
	if err := s.requireBusiness(businessID); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindForBusiness(businessID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Create(businessID uint, description string) (*model.Category, error) {
	if err := s.requireBusiness(businessID); err != nil {
		return nil, err
	}

	category := &model.Category{
		Description: description,
		BusinessID:  businessID,
		Valid:       true,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	logger.Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
		"business_id": businessID,
	})
	return category, nil
}

func (s *categoryService) Update(businessID, id uint, description string) (*model.Category, error) {
	if err := s.requireBusiness(businessID); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindForBusiness(businessID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	category.Description = description
	if err := s.categoryRepo.Save(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete is scoped by both ids: a mismatch removes nothing and is not an
// error.
func (s *categoryService) Delete(businessID, id uint) error {
	if err := s.requireBusiness(businessID); err != nil {
		return err
	}

	rows, err := s.categoryRepo.DeleteScoped(businessID, id)
	if err != nil {
		return err
	}

	logger.Info("Category delete completed", map[string]interface{}{
		"category_id":   id,
		"business_id":   businessID,
		"rows_affected": rows,
	})
	return nil
}

func (s *categoryService) requireBusiness(businessID uint) error {
	if _, err := s.businessRepo.FindByIDBare(nil, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBusinessNotFound
		}
		return err
	}
	return nil
}
