package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
	"github.com/vitrine/vitrine-backend/internal/db"
	"github.com/vitrine/vitrine-backend/pkg/util"
	"gorm.io/gorm"
)

const testResetPassword = "123456"

func setupUserServiceTest(t *testing.T) (UserService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userService := NewUserService(repository.NewUserRepository(testDB), testResetPassword)
	return userService, testDB
}

func registerInput(username string) RegisterInput {
	return RegisterInput{
		FirstName: "Test",
		LastName:  "Owner",
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
		Phone:     "555-0100",
	}
}

func TestUserService_Register(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)

	profile, err := userService.Register(registerInput("owner1"))
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, "owner1", profile.Username)
	assert.Equal(t, "owner1@example.com", profile.Email)
	assert.Equal(t, model.RoleOwner, profile.Role)
	assert.True(t, profile.Valid)

	// password is stored hashed, never raw
	var stored model.User
	require.NoError(t, testDB.First(&stored, profile.ID).Error)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.True(t, util.VerifyPassword(stored.PasswordHash, "password123"))
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)

	_, err := userService.Register(registerInput("owner1"))
	require.NoError(t, err)

	input := registerInput("owner2")
	input.Email = "owner1@example.com"
	_, err = userService.Register(input)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	// the failed registration left the table unchanged
	var count int64
	testDB.Model(&model.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)

	_, err := userService.Register(registerInput("owner1"))
	require.NoError(t, err)

	input := registerInput("owner1")
	input.Email = "different@example.com"
	_, err = userService.Register(input)
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

	var count int64
	testDB.Model(&model.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUserService_Update(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	profile, err := userService.Register(registerInput("owner1"))
	require.NoError(t, err)

	updated, err := userService.Update(profile.ID, UserMutation{
		FirstName: strPtr("Renamed"),
		Phone:     strPtr("555-0999"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.FirstName)
	assert.Equal(t, "555-0999", updated.Phone)

	// fields absent from the overlay keep their stored values
	assert.Equal(t, "Owner", updated.LastName)
	assert.Equal(t, "owner1", updated.Username)
	assert.Equal(t, "owner1@example.com", updated.Email)
}

func TestUserService_Update_EmailTakenByOther(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	_, err := userService.Register(registerInput("owner1"))
	require.NoError(t, err)
	profile, err := userService.Register(registerInput("owner2"))
	require.NoError(t, err)

	_, err = userService.Update(profile.ID, UserMutation{
		Email: strPtr("owner1@example.com"),
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestUserService_Update_SameEmailIsAllowed(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	profile, err := userService.Register(registerInput("owner1"))
	require.NoError(t, err)

	// resubmitting the user's own email must not trip the uniqueness check
	updated, err := userService.Update(profile.ID, UserMutation{
		Email: strPtr("owner1@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "owner1@example.com", updated.Email)
}

func TestUserService_Update_PasswordChange(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)

	profile, err := userService.Register(registerInput("owner1"))
	require.NoError(t, err)

	_, err = userService.Update(profile.ID, UserMutation{
		Password:    "new-password",
		OldPassword: "password123",
	})
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, testDB.First(&stored, profile.ID).Error)
	assert.True(t, util.VerifyPassword(stored.PasswordHash, "new-password"))
	assert.False(t, util.VerifyPassword(stored.PasswordHash, "password123"))
}

func TestUserService_Update_PasswordRequiresOldPassword(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)

	profile, err := userService.Register(registerInput("owner1"))
	require.NoError(t, err)

	// a password change with no current password is refused
	_, err = userService.Update(profile.ID, UserMutation{
		Password: "new-password",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	var stored model.User
	require.NoError(t, testDB.First(&stored, profile.ID).Error)
	assert.True(t, util.VerifyPassword(stored.PasswordHash, "password123"))
}

func TestUserService_Update_WrongOldPassword(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)

	profile, err := userService.Register(registerInput("owner1"))
	require.NoError(t, err)

	_, err = userService.Update(profile.ID, UserMutation{
		Password:    "new-password",
		OldPassword: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// nothing changed
	var stored model.User
	require.NoError(t, testDB.First(&stored, profile.ID).Error)
	assert.True(t, util.VerifyPassword(stored.PasswordHash, "password123"))
}

func TestUserService_Update_Reset(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)

	profile, err := userService.Register(registerInput("owner1"))
	require.NoError(t, err)

	// reset overrides any supplied password with the configured default
	_, err = userService.Update(profile.ID, UserMutation{
		Password: "ignored-password",
		Reset:    true,
	})
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, testDB.First(&stored, profile.ID).Error)
	assert.True(t, util.VerifyPassword(stored.PasswordHash, testResetPassword))
	assert.False(t, util.VerifyPassword(stored.PasswordHash, "ignored-password"))
}

func TestUserService_Update_UnknownUser(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	_, err := userService.Update(999, UserMutation{FirstName: strPtr("Ghost")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetByID(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	profile, err := userService.Register(registerInput("owner1"))
	require.NoError(t, err)

	found, err := userService.GetByID(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, found.ID)
	assert.Equal(t, "owner1", found.Username)

	_, err = userService.GetByID(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	input := registerInput("bob")
	input.FirstName = "Bob"
	_, err := userService.Register(input)
	require.NoError(t, err)

	input = registerInput("alice")
	input.FirstName = "Alice"
	_, err = userService.Register(input)
	require.NoError(t, err)

	profiles, err := userService.List()
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	// ordered by first name
	assert.Equal(t, "Alice", profiles[0].FirstName)
	assert.Equal(t, "Bob", profiles[1].FirstName)
}
