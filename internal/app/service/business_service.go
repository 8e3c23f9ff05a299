package service

import (
	"errors"

	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrBusinessNotOwned = errors.New("business does not belong to the user")
)

// FileInput is what the upload handler supplies for an incoming file: the
// original display name and the generated storage path.
type FileInput struct {
	Name string
	Path string
}

type BusinessInput struct {
	Name        string
	Description string
	Payment     string
	Phone       string
	Whatsapp    string
	SegmentID   uint

	Street     string
	City       string
	State      string
	PostalCode string
	Locality   string
	Number     string
}

// BusinessMutation is a partial overlay for update: nil fields keep the
// stored value.
type BusinessMutation struct {
	Name        *string
	Description *string
	Payment     *string
	Phone       *string
	Whatsapp    *string
	Valid       *bool
	SegmentID   uint

	AddressID uint
	Address   repository.AddressMutation
}

type BusinessService interface {
	ListForUser(userID uint) ([]model.Business, error)
	GetByID(id uint) (*model.Business, error)
	Create(userID uint, input BusinessInput, logo FileInput) (*model.Business, error)
	Update(userID, businessID uint, input BusinessMutation, logo FileInput) (*model.Business, error)
	Delete(userID, businessID uint) error
}

type businessService struct {
	db           *gorm.DB
	businessRepo repository.BusinessRepository
	userRepo     repository.UserRepository
	segmentRepo  repository.SegmentRepository
	fileRepo     repository.FileRepository
	addressRepo  repository.AddressRepository
}

func NewBusinessService(
	db *gorm.DB,
	businessRepo repository.BusinessRepository,
	userRepo repository.UserRepository,
	segmentRepo repository.SegmentRepository,
	fileRepo repository.FileRepository,
	addressRepo repository.AddressRepository,
) BusinessService {
	return &businessService{
		db:           db,
		businessRepo: businessRepo,
		userRepo:     userRepo,
		segmentRepo:  segmentRepo,
		fileRepo:     fileRepo,
		addressRepo:  addressRepo,
	}
}

func (s *businessService) ListForUser(userID uint) ([]model.Business, error) {
	user, err := s.userRepo.FindByIDWithBusinesses(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.Businesses, nil
}

func (s *businessService) GetByID(id uint) (*model.Business, error) {
	business, err := s.businessRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return business, nil
}

// Create registers a business aggregate: logo file, initial address, the
// business row and the owner link, written through one transaction. User and
// segment are resolved first so a missing reference never opens a transaction.
func (s *businessService) Create(userID uint, input BusinessInput, logo FileInput) (*model.Business, error) {
	logger.Info("Creating business", map[string]interface{}{
		"user_id":    userID,
		"name":       input.Name,
		"segment_id": input.SegmentID,
	})

	user, err := s.userRepo.FindByIDWithBusinesses(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	segment, err := s.segmentRepo.FindByID(input.SegmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSegmentNotFound
		}
		return nil, err
	}

	var business *model.Business
	err = repository.RunInTransaction(s.db, func(tx *gorm.DB) error {
		logoFile, err := s.fileRepo.Resolve(tx, logo.Name, logo.Path)
		if err != nil {
			return err
		}

		address := &model.Address{
			Street:     input.Street,
			City:       input.City,
			State:      input.State,
			PostalCode: input.PostalCode,
			Locality:   input.Locality,
			Number:     input.Number,
		}
		if err := s.addressRepo.CreateNew(tx, address); err != nil {
			return err
		}

		business = &model.Business{
			Name:        input.Name,
			Description: input.Description,
			LogoID:      logoFile.ID,
			Payment:     input.Payment,
			Phone:       input.Phone,
			Whatsapp:    input.Whatsapp,
			SegmentID:   segment.ID,
			Valid:       true,
		}
		if err := s.businessRepo.Create(tx, business); err != nil {
			return err
		}

		if err := s.businessRepo.ReplaceAddresses(tx, business, []*model.Address{address}); err != nil {
			return err
		}

		return s.userRepo.AppendBusiness(tx, user, business)
	})
	if err != nil {
		logger.Error("Failed to create business", err, map[string]interface{}{
			"user_id": userID,
			"name":    input.Name,
		})
		return nil, err
	}

	logger.Info("Business created successfully", map[string]interface{}{
		"business_id": business.ID,
		"user_id":     userID,
	})

	return s.businessRepo.FindByID(business.ID)
}

// Update overlays the mutation onto the stored business, resolves the cover
// file by dedup and merges or creates the address, normalizing the business
// to exactly one current address.
func (s *businessService) Update(userID, businessID uint, input BusinessMutation, logo FileInput) (*model.Business, error) {
	logger.Info("Updating business", map[string]interface{}{
		"user_id":     userID,
		"business_id": businessID,
	})

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	segment, err := s.segmentRepo.FindByID(input.SegmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSegmentNotFound
		}
		return nil, err
	}

	var business *model.Business
	err = repository.RunInTransaction(s.db, func(tx *gorm.DB) error {
		imageFile, err := s.fileRepo.Resolve(tx, logo.Name, logo.Path)
		if err != nil {
			return err
		}

		address, err := s.addressRepo.ResolveForUpdate(tx, input.AddressID, input.Address)
		if err != nil {
			return err
		}

		business, err = s.businessRepo.FindByIDBare(tx, businessID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBusinessNotFound
			}
			return err
		}

		if input.Name != nil {
			business.Name = *input.Name
		}
		if input.Description != nil {
			business.Description = *input.Description
		}
		if input.Payment != nil {
			business.Payment = *input.Payment
		}
		if input.Phone != nil {
			business.Phone = *input.Phone
		}
		if input.Whatsapp != nil {
			business.Whatsapp = *input.Whatsapp
		}
		if input.Valid != nil {
			business.Valid = *input.Valid
		}
		business.SegmentID = segment.ID
		business.ImageID = &imageFile.ID

		if err := s.businessRepo.Save(tx, business); err != nil {
			return err
		}

		return s.businessRepo.ReplaceAddresses(tx, business, []*model.Address{address})
	})
	if err != nil {
		logger.Error("Failed to update business", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}

	return s.businessRepo.FindByID(business.ID)
}

// Delete removes the business from the owner's collection and soft-removes
// the row. Ownership is checked by identity against the user's collection.
func (s *businessService) Delete(userID, businessID uint) error {
	user, err := s.userRepo.FindByIDWithBusinesses(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	business, err := s.businessRepo.FindByIDFull(businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBusinessNotFound
		}
		return err
	}

	if !user.OwnsBusiness(business.ID) {
		logger.Warn("Business deletion denied: not owned by user", map[string]interface{}{
			"user_id":     userID,
			"business_id": businessID,
		})
		return ErrBusinessNotOwned
	}

	err = repository.RunInTransaction(s.db, func(tx *gorm.DB) error {
		if err := s.userRepo.RemoveBusiness(tx, user, business); err != nil {
			return err
		}
		return s.businessRepo.Delete(tx, business)
	})
	if err != nil {
		logger.Error("Failed to delete business", err, map[string]interface{}{
			"business_id": businessID,
		})
		return err
	}

	logger.Info("Business deleted successfully", map[string]interface{}{
		"business_id": businessID,
		"user_id":     userID,
	})
	return nil
}
