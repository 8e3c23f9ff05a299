package repository

import (
	"errors"

	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrAddressIncomplete = errors.New("address is missing required fields")

// AddressMutation is a partial overlay: nil fields leave the stored value
// untouched.
type AddressMutation struct {
	Street     *string
	City       *string
	State      *string
	PostalCode *string
	Locality   *string
	Number     *string
}

type AddressRepository interface {
	// CreateNew persists a fresh address. Street, city, state, postal code and
	// locality are required on this path.
	CreateNew(tx *gorm.DB, address *model.Address) error
	// ResolveForUpdate merges the overlay into the address with the given id,
	// or creates a new address from the overlay when the id does not resolve.
	ResolveForUpdate(tx *gorm.DB, id uint, overlay AddressMutation) (*model.Address, error)
	FindByID(id uint) (*model.Address, error)
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) CreateNew(tx *gorm.DB, address *model.Address) error {
	if tx == nil {
		tx = r.db
	}

	if address.Street == "" || address.City == "" || address.State == "" ||
		address.PostalCode == "" || address.Locality == "" {
		return ErrAddressIncomplete
	}

	if err := tx.Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"city":  address.City,
			"state": address.State,
		})
		return err
	}
	return nil
}

func (r *addressRepository) ResolveForUpdate(tx *gorm.DB, id uint, overlay AddressMutation) (*model.Address, error) {
	if tx == nil {
		tx = r.db
	}

	var address model.Address
	err := tx.First(&address, id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		// No prior row: the overlay must describe a complete address.
		fresh := &model.Address{}
		applyAddressMutation(fresh, overlay)
		if err := r.CreateNew(tx, fresh); err != nil {
			return nil, err
		}

		logger.Debug("Address created during resolve", map[string]interface{}{
			"address_id": fresh.ID,
		})
		return fresh, nil
	}

	applyAddressMutation(&address, overlay)
	if err := tx.Save(&address).Error; err != nil {
		logger.Error("Failed to merge address in database", err, map[string]interface{}{
			"address_id": address.ID,
		})
		return nil, err
	}

	logger.Debug("Address merged during resolve", map[string]interface{}{
		"address_id": address.ID,
	})
	return &address, nil
}

func (r *addressRepository) FindByID(id uint) (*model.Address, error) {
	var address model.Address
	if err := r.db.First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func applyAddressMutation(address *model.Address, overlay AddressMutation) {
	if overlay.Street != nil {
		address.Street = *overlay.Street
	}
	if overlay.City != nil {
		address.City = *overlay.City
	}
	if overlay.State != nil {
		address.State = *overlay.State
	}
	if overlay.PostalCode != nil {
		address.PostalCode = *overlay.PostalCode
	}
	if overlay.Locality != nil {
		address.Locality = *overlay.Locality
	}
	if overlay.Number != nil {
		address.Number = *overlay.Number
	}
}
