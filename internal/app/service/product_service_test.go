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

func setupProductServiceTest(t *testing.T) (ProductService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	productService := NewProductService(
		testDB,
		repository.NewProductRepository(testDB),
		repository.NewBusinessRepository(testDB),
		repository.NewCategoryRepository(testDB),
		repository.NewFileRepository(testDB),
	)
	return productService, testDB
}

func createTestBusiness(t *testing.T, testDB *gorm.DB, name string) *model.Business {
	logo := &model.File{Name: "logo.png", Path: "logos/" + name + ".png"}
	require.NoError(t, testDB.Create(logo).Error)

	segment := createTestSegment(t, testDB, "Segment for "+name)

	business := &model.Business{
		Name:      name,
		LogoID:    logo.ID,
		SegmentID: segment.ID,
		Valid:     true,
	}
	require.NoError(t, testDB.Omit("Logo", "Segment").Create(business).Error)
	return business
}

func createTestCategory(t *testing.T, testDB *gorm.DB, businessID uint, description string) *model.Category {
	category := &model.Category{
		Description: description,
		BusinessID:  businessID,
		Valid:       true,
	}
	require.NoError(t, testDB.Create(category).Error)
	return category
}

func TestProductService_Create(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)
	business := createTestBusiness(t, testDB, "Corner Bakery")
	category := createTestCategory(t, testDB, business.ID, "Breads")

	product, err := productService.Create(business.ID, category.ID, ProductInput{
		Name:        "Sourdough",
		Description: "Naturally leavened",
		Price:       6.5,
		Obs:         "baked daily",
	}, FileInput{Name: "sourdough.png", Path: "products/abc123.png"})
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.Equal(t, "Sourdough", product.Name)
	assert.Equal(t, 6.5, product.Price)
	assert.True(t, product.Valid)
	assert.Equal(t, business.ID, product.BusinessID)
	assert.Equal(t, category.ID, product.CategoryID)
	require.NotNil(t, product.Image)
	assert.Equal(t, "sourdough.png", product.Image.Name)
}

func TestProductService_Create_UnknownBusiness(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	_, err := productService.Create(999, 1, ProductInput{Name: "Sourdough"},
		FileInput{Name: "sourdough.png", Path: "products/abc123.png"})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestProductService_Create_CategoryFromAnotherBusiness(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)
	business := createTestBusiness(t, testDB, "Corner Bakery")
	other := createTestBusiness(t, testDB, "Rival Bakery")
	foreignCategory := createTestCategory(t, testDB, other.ID, "Breads")

	_, err := productService.Create(business.ID, foreignCategory.ID, ProductInput{Name: "Sourdough"},
		FileInput{Name: "sourdough.png", Path: "products/abc123.png"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestProductService_Update(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)
	business := createTestBusiness(t, testDB, "Corner Bakery")
	category := createTestCategory(t, testDB, business.ID, "Breads")

	product, err := productService.Create(business.ID, category.ID, ProductInput{
		Name:        "Sourdough",
		Description: "Naturally leavened",
		Price:       6.5,
	}, FileInput{Name: "sourdough.png", Path: "products/abc123.png"})
	require.NoError(t, err)

	newCategory := createTestCategory(t, testDB, business.ID, "Specials")

	updated, err := productService.Update(business.ID, product.ID, newCategory.ID, ProductMutation{
		Price: floatPtr(7.0),
		Valid: boolPtr(false),
	}, FileInput{Name: "sourdough-v2.png", Path: "products/def456.png"})
	require.NoError(t, err)

	assert.Equal(t, 7.0, updated.Price)
	assert.False(t, updated.Valid)
	assert.Equal(t, newCategory.ID, updated.CategoryID)

	// fields absent from the overlay keep their stored values
	assert.Equal(t, "Sourdough", updated.Name)
	assert.Equal(t, "Naturally leavened", updated.Description)

	require.NotNil(t, updated.Image)
	assert.Equal(t, "sourdough-v2.png", updated.Image.Name)
}

func TestProductService_Update_UnknownProduct(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)
	business := createTestBusiness(t, testDB, "Corner Bakery")
	category := createTestCategory(t, testDB, business.ID, "Breads")

	_, err := productService.Update(business.ID, 999, category.ID, ProductMutation{},
		FileInput{Name: "sourdough.png", Path: "products/abc123.png"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Delete(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)
	business := createTestBusiness(t, testDB, "Corner Bakery")
	category := createTestCategory(t, testDB, business.ID, "Breads")

	product, err := productService.Create(business.ID, category.ID, ProductInput{Name: "Sourdough"},
		FileInput{Name: "sourdough.png", Path: "products/abc123.png"})
	require.NoError(t, err)

	require.NoError(t, productService.Delete(business.ID, product.ID))

	var count int64
	testDB.Model(&model.Product{}).Count(&count)
	assert.Zero(t, count)
}

func TestProductService_Delete_WrongBusinessIsSilent(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)
	business := createTestBusiness(t, testDB, "Corner Bakery")
	other := createTestBusiness(t, testDB, "Rival Bakery")
	category := createTestCategory(t, testDB, business.ID, "Breads")

	product, err := productService.Create(business.ID, category.ID, ProductInput{Name: "Sourdough"},
		FileInput{Name: "sourdough.png", Path: "products/abc123.png"})
	require.NoError(t, err)

	// mismatched scope deletes nothing and reports no error
	require.NoError(t, productService.Delete(other.ID, product.ID))

	var found model.Product
	assert.NoError(t, testDB.First(&found, product.ID).Error)
}

func TestProductService_ListForBusiness(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)
	business := createTestBusiness(t, testDB, "Corner Bakery")
	other := createTestBusiness(t, testDB, "Rival Bakery")
	category := createTestCategory(t, testDB, business.ID, "Breads")
	otherCategory := createTestCategory(t, testDB, other.ID, "Breads")

	_, err := productService.Create(business.ID, category.ID, ProductInput{Name: "Sourdough"},
		FileInput{Name: "sourdough.png", Path: "products/abc123.png"})
	require.NoError(t, err)
	_, err = productService.Create(other.ID, otherCategory.ID, ProductInput{Name: "Baguette"},
		FileInput{Name: "baguette.png", Path: "products/def456.png"})
	require.NoError(t, err)

	products, err := productService.ListForBusiness(business.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Sourdough", products[0].Name)
}
