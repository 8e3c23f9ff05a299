package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
	"github.com/vitrine/vitrine-backend/internal/db"
	"gorm.io/gorm"
)

func setupAvatarServiceTest(t *testing.T) (AvatarService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	avatarService := NewAvatarService(
		testDB,
		repository.NewUserRepository(testDB),
		repository.NewFileRepository(testDB),
	)
	return avatarService, testDB
}

func TestAvatarService_Attach(t *testing.T) {
	avatarService, testDB := setupAvatarServiceTest(t)
	user := createTestUser(t, testDB, "owner1")

	file, err := avatarService.Attach(user.ID, FileInput{
		Name: "me.png",
		Path: "avatars/abc123.png",
	})
	require.NoError(t, err)
	require.NotZero(t, file.ID)

	var stored model.User
	require.NoError(t, testDB.First(&stored, user.ID).Error)
	require.NotNil(t, stored.AvatarID)
	assert.Equal(t, file.ID, *stored.AvatarID)
}

func TestAvatarService_Attach_ReplacesAvatar(t *testing.T) {
	avatarService, testDB := setupAvatarServiceTest(t)
	user := createTestUser(t, testDB, "owner1")

	_, err := avatarService.Attach(user.ID, FileInput{Name: "me.png", Path: "avatars/abc123.png"})
	require.NoError(t, err)

	second, err := avatarService.Attach(user.ID, FileInput{Name: "me-v2.png", Path: "avatars/def456.png"})
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, testDB.First(&stored, user.ID).Error)
	require.NotNil(t, stored.AvatarID)
	assert.Equal(t, second.ID, *stored.AvatarID)
}

func TestAvatarService_Attach_UnknownUser(t *testing.T) {
	avatarService, _ := setupAvatarServiceTest(t)

	_, err := avatarService.Attach(999, FileInput{Name: "me.png", Path: "avatars/abc123.png"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
