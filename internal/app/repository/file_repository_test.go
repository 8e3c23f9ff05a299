package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/db"
	"gorm.io/gorm"
)

func setupFileRepoTest(t *testing.T) (FileRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewFileRepository(testDB), testDB
}

func TestFileRepository_Resolve_CreatesNewRow(t *testing.T) {
	repo, testDB := setupFileRepoTest(t)

	file, err := repo.Resolve(nil, "logo.png", "logos/abc123.png")
	require.NoError(t, err)
	require.NotZero(t, file.ID)
	assert.Equal(t, "logo.png", file.Name)
	assert.Equal(t, "logos/abc123.png", file.Path)

	var count int64
	testDB.Model(&model.File{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFileRepository_Resolve_ReusesExistingRow(t *testing.T) {
	repo, testDB := setupFileRepoTest(t)

	first, err := repo.Resolve(nil, "logo.png", "logos/abc123.png")
	require.NoError(t, err)

	second, err := repo.Resolve(nil, "logo.png", "logos/abc123.png")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	testDB.Model(&model.File{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFileRepository_Resolve_DistinctPathsGetDistinctRows(t *testing.T) {
	repo, _ := setupFileRepoTest(t)

	first, err := repo.Resolve(nil, "logo.png", "logos/abc123.png")
	require.NoError(t, err)

	// same display name, different storage key: a genuinely different upload
	second, err := repo.Resolve(nil, "logo.png", "logos/def456.png")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestFileRepository_DeleteOrphans(t *testing.T) {
	repo, testDB := setupFileRepoTest(t)

	logo, err := repo.Resolve(nil, "logo.png", "logos/kept.png")
	require.NoError(t, err)
	orphan, err := repo.Resolve(nil, "stale.png", "logos/stale.png")
	require.NoError(t, err)

	segment := model.Segment{Description: "Restaurant"}
	require.NoError(t, testDB.Create(&segment).Error)

	business := model.Business{
		Name:      "Corner Bakery",
		LogoID:    logo.ID,
		SegmentID: segment.ID,
		Valid:     true,
	}
	require.NoError(t, testDB.Omit("Logo", "Segment").Create(&business).Error)

	removed, err := repo.DeleteOrphans()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var kept model.File
	assert.NoError(t, testDB.First(&kept, logo.ID).Error)

	var gone model.File
	err = testDB.First(&gone, orphan.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
