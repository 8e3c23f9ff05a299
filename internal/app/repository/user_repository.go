package repository

import (
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByIDWithBusinesses(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindAll() ([]model.User, error)
	Save(tx *gorm.DB, user *model.User) error
	// AppendBusiness adds the business to the user's owned collection.
	AppendBusiness(tx *gorm.DB, user *model.User, business *model.Business) error
	// RemoveBusiness detaches the business from the user's owned collection.
	RemoveBusiness(tx *gorm.DB, user *model.User, business *model.Business) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email":    user.Email,
		"username": user.Username,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Avatar").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDWithBusinesses(id uint) (*model.User, error) {
	var user model.User
	err := r.db.
		Preload("Avatar").
		Preload("Businesses").
		Preload("Businesses.Addresses").
		Preload("Businesses.Segment").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Avatar").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.db.
		Preload("Avatar").
		Preload("Businesses").
		Preload("Businesses.Addresses").
		Order("first_name ASC").
		Find(&users).Error
	if err != nil {
		logger.Error("Failed to list users", err)
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Save(tx *gorm.DB, user *model.User) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Save(user).Error; err != nil {
		logger.Error("Failed to save user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) AppendBusiness(tx *gorm.DB, user *model.User, business *model.Business) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Model(user).Association("Businesses").Append(business); err != nil {
		logger.Error("Failed to append business to user", err, map[string]interface{}{
			"user_id":     user.ID,
			"business_id": business.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) RemoveBusiness(tx *gorm.DB, user *model.User, business *model.Business) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Model(user).Association("Businesses").Delete(business); err != nil {
		logger.Error("Failed to remove business from user", err, map[string]interface{}{
			"user_id":     user.ID,
			"business_id": business.ID,
		})
		return err
	}
	return nil
}
