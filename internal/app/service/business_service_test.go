package service

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
	"github.com/vitrine/vitrine-backend/internal/db"
	"github.com/vitrine/vitrine-backend/pkg/util"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

func setupBusinessServiceTest(t *testing.T) (BusinessService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	businessService := NewBusinessService(
		testDB,
		repository.NewBusinessRepository(testDB),
		repository.NewUserRepository(testDB),
		repository.NewSegmentRepository(testDB),
		repository.NewFileRepository(testDB),
		repository.NewAddressRepository(testDB),
	)
	return businessService, testDB
}

func createTestUser(t *testing.T, testDB *gorm.DB, username string) *model.User {
	hash, err := util.HashPassword("password123")
	require.NoError(t, err)

	user := &model.User{
		FirstName:    "Test",
		LastName:     "Owner",
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Valid:        true,
		Role:         model.RoleOwner,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createTestSegment(t *testing.T, testDB *gorm.DB, description string) *model.Segment {
	segment := &model.Segment{Description: description}
	require.NoError(t, testDB.Create(segment).Error)
	return segment
}

func businessInput(segmentID uint) BusinessInput {
	return BusinessInput{
		Name:        "Corner Bakery",
		Description: "Fresh bread daily",
		Payment:     "cash, card",
		Phone:       "555-0100",
		Whatsapp:    "555-0101",
		SegmentID:   segmentID,
		Street:      "Main Street",
		City:        "Springfield",
		State:       "IL",
		PostalCode:  "62701",
		Locality:    "Downtown",
		Number:      "12B",
	}
}

func TestBusinessService_Create(t *testing.T) {
	businessService, testDB := setupBusinessServiceTest(t)
	user := createTestUser(t, testDB, "owner1")
	segment := createTestSegment(t, testDB, "Bakery")

	business, err := businessService.Create(user.ID, businessInput(segment.ID), FileInput{
		Name: "logo.png",
		Path: "logos/abc123.png",
	})
	require.NoError(t, err)
	require.NotNil(t, business)

	assert.Equal(t, "Corner Bakery", business.Name)
	assert.True(t, business.Valid)
	assert.Equal(t, segment.ID, business.SegmentID)
	assert.Equal(t, "logo.png", business.Logo.Name)

	require.Len(t, business.Addresses, 1)
	assert.Equal(t, "Main Street", business.Addresses[0].Street)
	assert.Equal(t, "Springfield", business.Addresses[0].City)

	// the business is linked to its owner
	var owner model.User
	require.NoError(t, testDB.Preload("Businesses").First(&owner, user.ID).Error)
	assert.True(t, owner.OwnsBusiness(business.ID))
}

func TestBusinessService_Create_UnknownUser(t *testing.T) {
	businessService, testDB := setupBusinessServiceTest(t)
	segment := createTestSegment(t, testDB, "Bakery")

	_, err := businessService.Create(999, businessInput(segment.ID), FileInput{
		Name: "logo.png",
		Path: "logos/abc123.png",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestBusinessService_Create_UnknownSegment(t *testing.T) {
	businessService, testDB := setupBusinessServiceTest(t)
	user := createTestUser(t, testDB, "owner1")

	_, err := businessService.Create(user.ID, businessInput(999), FileInput{
		Name: "logo.png",
		Path: "logos/abc123.png",
	})
	assert.ErrorIs(t, err, ErrSegmentNotFound)
}

func TestBusinessService_Create_IncompleteAddress(t *testing.T) {
	businessService, testDB := setupBusinessServiceTest(t)
	user := createTestUser(t, testDB, "owner1")
	segment := createTestSegment(t, testDB, "Bakery")

	input := businessInput(segment.ID)
	input.City = ""

	_, err := businessService.Create(user.ID, input, FileInput{
		Name: "logo.png",
		Path: "logos/abc123.png",
	})
	assert.ErrorIs(t, err, repository.ErrAddressIncomplete)

	// nothing from the aggregate survives the rollback
	var fileCount, addressCount int64
	testDB.Model(&model.File{}).Count(&fileCount)
	testDB.Model(&model.Address{}).Count(&addressCount)
	assert.Zero(t, fileCount)
	assert.Zero(t, addressCount)
}

func TestBusinessService_Create_RollsBackOnFailure(t *testing.T) {
	businessService, testDB := setupBusinessServiceTest(t)
	user := createTestUser(t, testDB, "owner1")
	segment := createTestSegment(t, testDB, "Bakery")

	// force the business insert itself to fail, after file and address writes
	injected := errors.New("injected insert failure")
	err := testDB.Callback().Create().Before("gorm:create").Register("fail_business_insert", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.ModelType == reflect.TypeOf(model.Business{}) {
			tx.AddError(injected)
		}
	})
	require.NoError(t, err)
	defer testDB.Callback().Create().Remove("fail_business_insert")

	_, err = businessService.Create(user.ID, businessInput(segment.ID), FileInput{
		Name: "logo.png",
		Path: "logos/abc123.png",
	})
	require.Error(t, err)

	var fileCount, addressCount, businessCount int64
	testDB.Model(&model.File{}).Count(&fileCount)
	testDB.Model(&model.Address{}).Count(&addressCount)
	testDB.Model(&model.Business{}).Count(&businessCount)
	assert.Zero(t, fileCount)
	assert.Zero(t, addressCount)
	assert.Zero(t, businessCount)
}

func TestBusinessService_Create_ReusesExistingFile(t *testing.T) {
	businessService, testDB := setupBusinessServiceTest(t)
	user := createTestUser(t, testDB, "owner1")
	segment := createTestSegment(t, testDB, "Bakery")

	logo := FileInput{Name: "logo.png", Path: "logos/abc123.png"}

	first, err := businessService.Create(user.ID, businessInput(segment.ID), logo)
	require.NoError(t, err)

	input := businessInput(segment.ID)
	input.Name = "Second Shop"
	second, err := businessService.Create(user.ID, input, logo)
	require.NoError(t, err)

	assert.Equal(t, first.LogoID, second.LogoID)

	var fileCount int64
	testDB.Model(&model.File{}).Count(&fileCount)
	assert.Equal(t, int64(1), fileCount)
}

func TestBusinessService_Update(t *testing.T) {
	businessService, testDB := setupBusinessServiceTest(t)
	user := createTestUser(t, testDB, "owner1")
	segment := createTestSegment(t, testDB, "Bakery")

	business, err := businessService.Create(user.ID, businessInput(segment.ID), FileInput{
		Name: "logo.png",
		Path: "logos/abc123.png",
	})
	require.NoError(t, err)
	require.Len(t, business.Addresses, 1)
	addressID := business.Addresses[0].ID

	newSegment := createTestSegment(t, testDB, "Restaurant")

	updated, err := businessService.Update(user.ID, business.ID, BusinessMutation{
		Name:      strPtr("Corner Restaurant"),
		Valid:     boolPtr(false),
		SegmentID: newSegment.ID,
		AddressID: addressID,
		Address: repository.AddressMutation{
			Street: strPtr("Oak Avenue"),
		},
	}, FileInput{Name: "cover.png", Path: "images/cover123.png"})
	require.NoError(t, err)

	assert.Equal(t, "Corner Restaurant", updated.Name)
	assert.False(t, updated.Valid)
	assert.Equal(t, newSegment.ID, updated.SegmentID)

	// fields absent from the overlay keep their stored values
	assert.Equal(t, "Fresh bread daily", updated.Description)
	assert.Equal(t, "555-0100", updated.Phone)

	// the uploaded file lands on the cover image, not the logo
	require.NotNil(t, updated.Image)
	assert.Equal(t, "cover.png", updated.Image.Name)
	assert.Equal(t, "logo.png", updated.Logo.Name)

	require.Len(t, updated.Addresses, 1)
	assert.Equal(t, addressID, updated.Addresses[0].ID)
	assert.Equal(t, "Oak Avenue", updated.Addresses[0].Street)
	assert.Equal(t, "Springfield", updated.Addresses[0].City)
}

func TestBusinessService_Update_UnknownBusiness(t *testing.T) {
	businessService, testDB := setupBusinessServiceTest(t)
	user := createTestUser(t, testDB, "owner1")
	segment := createTestSegment(t, testDB, "Bakery")

	_, err := businessService.Update(user.ID, 999, BusinessMutation{
		SegmentID: segment.ID,
		Address: repository.AddressMutation{
			Street:     strPtr("Oak Avenue"),
			City:       strPtr("Shelbyville"),
			State:      strPtr("IL"),
			PostalCode: strPtr("62565"),
			Locality:   strPtr("Old Town"),
		},
	}, FileInput{Name: "cover.png", Path: "images/cover123.png"})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestBusinessService_Delete(t *testing.T) {
	businessService, testDB := setupBusinessServiceTest(t)
	user := createTestUser(t, testDB, "owner1")
	segment := createTestSegment(t, testDB, "Bakery")

	business, err := businessService.Create(user.ID, businessInput(segment.ID), FileInput{
		Name: "logo.png",
		Path: "logos/abc123.png",
	})
	require.NoError(t, err)

	require.NoError(t, businessService.Delete(user.ID, business.ID))

	// soft delete: the default scope hides the row, Unscoped still sees it
	var found model.Business
	err = testDB.First(&found, business.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, testDB.Unscoped().First(&found, business.ID).Error)
}

func TestBusinessService_Delete_NotOwned(t *testing.T) {
	businessService, testDB := setupBusinessServiceTest(t)
	owner := createTestUser(t, testDB, "owner1")
	intruder := createTestUser(t, testDB, "owner2")
	segment := createTestSegment(t, testDB, "Bakery")

	business, err := businessService.Create(owner.ID, businessInput(segment.ID), FileInput{
		Name: "logo.png",
		Path: "logos/abc123.png",
	})
	require.NoError(t, err)

	err = businessService.Delete(intruder.ID, business.ID)
	assert.ErrorIs(t, err, ErrBusinessNotOwned)

	var found model.Business
	assert.NoError(t, testDB.First(&found, business.ID).Error)
}

func TestBusinessService_ListForUser(t *testing.T) {
	businessService, testDB := setupBusinessServiceTest(t)
	user := createTestUser(t, testDB, "owner1")
	other := createTestUser(t, testDB, "owner2")
	segment := createTestSegment(t, testDB, "Bakery")

	_, err := businessService.Create(user.ID, businessInput(segment.ID), FileInput{
		Name: "logo.png",
		Path: "logos/abc123.png",
	})
	require.NoError(t, err)

	mine, err := businessService.ListForUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := businessService.ListForUser(other.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
