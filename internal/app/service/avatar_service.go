package service

import (
	"errors"

	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

type AvatarService interface {
	// Attach resolves the uploaded file by (name, path) dedup and links it as
	// the user's avatar; file and user are persisted in one transaction.
	Attach(userID uint, upload FileInput) (*model.File, error)
}

type avatarService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	fileRepo repository.FileRepository
}

func NewAvatarService(db *gorm.DB, userRepo repository.UserRepository, fileRepo repository.FileRepository) AvatarService {
	return &avatarService{
		db:       db,
		userRepo: userRepo,
		fileRepo: fileRepo,
	}
}

func (s *avatarService) Attach(userID uint, upload FileInput) (*model.File, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var file *model.File
	err = repository.RunInTransaction(s.db, func(tx *gorm.DB) error {
		file, err = s.fileRepo.Resolve(tx, upload.Name, upload.Path)
		if err != nil {
			return err
		}

		user.AvatarID = &file.ID
		user.Avatar = nil
		return s.userRepo.Save(tx, user)
	})
	if err != nil {
		logger.Error("Failed to attach avatar", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Avatar attached successfully", map[string]interface{}{
		"user_id": userID,
		"file_id": file.ID,
	})
	return file, nil
}
