package service

import (
	"errors"

	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"github.com/vitrine/vitrine-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("user email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrPasswordMismatch      = errors.New("password does not match")
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	Phone     string
}

// UserMutation is a partial overlay for update. Password handling: Reset
// forces the configured default password; otherwise a non-empty Password is
// re-hashed only after OldPassword verifies against the stored hash.
type UserMutation struct {
	FirstName   *string
	LastName    *string
	Username    *string
	Email       *string
	Phone       *string
	Valid       *bool
	Password    string
	OldPassword string
	Reset       bool
}

// UserProfile is the password-free projection returned to callers.
type UserProfile struct {
	ID        uint           `json:"id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Role      model.UserRole `json:"role"`
	Valid     bool           `json:"valid"`
	Avatar    *model.File    `json:"avatar,omitempty"`
}

type UserService interface {
	Register(input RegisterInput) (*UserProfile, error)
	Update(userID uint, input UserMutation) (*UserProfile, error)
	GetByID(id uint) (*UserProfile, error)
	List() ([]UserProfile, error)
}

type userService struct {
	userRepo      repository.UserRepository
	resetPassword string
}

func NewUserService(userRepo repository.UserRepository, resetPassword string) UserService {
	return &userService{
		userRepo:      userRepo,
		resetPassword: resetPassword,
	}
}

// Register creates an account after checking email then username uniqueness.
// The password is hashed before anything is persisted.
func (s *userService) Register(input RegisterInput) (*UserProfile, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"email":    input.Email,
		"username": input.Username,
	})

	if err := s.checkEmailAvailable(input.Email); err != nil {
		return nil, err
	}
	if err := s.checkUsernameAvailable(input.Username); err != nil {
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}

	user := &model.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Valid:        true,
		Role:         model.RoleOwner,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return projectUser(user), nil
}

// Update overlays the mutation onto the stored user. Changed email or
// username re-runs the uniqueness checks; a supplied old password must verify
// before any password change.
func (s *userService) Update(userID uint, input UserMutation) (*UserProfile, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := s.checkEmailAvailable(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.Username != nil && *input.Username != user.Username {
		if err := s.checkUsernameAvailable(*input.Username); err != nil {
			return nil, err
		}
	}

	// Changing the password (outside the reset flow) always requires the
	// current one.
	if input.Password != "" && !input.Reset {
		if input.OldPassword == "" || !util.VerifyPassword(user.PasswordHash, input.OldPassword) {
			logger.Warn("User update denied: old password mismatch", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrPasswordMismatch
		}
	} else if input.OldPassword != "" && !util.VerifyPassword(user.PasswordHash, input.OldPassword) {
		logger.Warn("User update denied: old password mismatch", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrPasswordMismatch
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Valid != nil {
		user.Valid = *input.Valid
	}

	if input.Reset {
		hash, err := util.HashPassword(s.resetPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	} else if input.Password != "" {
		hash, err := util.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Save(nil, user); err != nil {
		return nil, err
	}

	logger.Info("User updated successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return projectUser(user), nil
}

func (s *userService) GetByID(id uint) (*UserProfile, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return projectUser(user), nil
}

func (s *userService) List() ([]UserProfile, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	profiles := make([]UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, *projectUser(&users[i]))
	}
	return profiles, nil
}

func (s *userService) checkEmailAvailable(email string) error {
	_, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return ErrEmailAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *userService) checkUsernameAvailable(username string) error {
	_, err := s.userRepo.FindByUsername(username)
	if err == nil {
		return ErrUsernameAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func projectUser(user *model.User) *UserProfile {
	return &UserProfile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		Valid:     user.Valid,
		Avatar:    user.Avatar,
	}
}
