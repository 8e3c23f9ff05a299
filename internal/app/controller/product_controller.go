package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vitrine/vitrine-backend/internal/app/service"
	"github.com/vitrine/vitrine-backend/internal/errors"
	"github.com/vitrine/vitrine-backend/internal/storage"
)

type ProductController struct {
	productService service.ProductService
	storage        *storage.S3Storage
}

func NewProductController(productService service.ProductService, storage *storage.S3Storage) *ProductController {
	return &ProductController{
		productService: productService,
		storage:        storage,
	}
}

type CreateProductRequest struct {
	Name        string  `form:"name" binding:"required"`
	Description string  `form:"description"`
	Price       float64 `form:"price"`
	Obs         string  `form:"obs"`
	CategoryID  uint    `form:"category_id" binding:"required"`
}

type UpdateProductRequest struct {
	Name        *string  `form:"name"`
	Description *string  `form:"description"`
	Price       *float64 `form:"price"`
	Obs         *string  `form:"obs"`
	Valid       *bool    `form:"valid"`
	CategoryID  uint     `form:"category_id" binding:"required"`
}

// Index lists a business's products (restricted projection)
// GET /business/:businessId/products
func (ctrl *ProductController) Index(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}

	products, err := ctrl.productService.ListForBusiness(businessID)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Show returns one product with full detail
// GET /business/:businessId/products/:id
func (ctrl *ProductController) Show(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetByID(businessID, id)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Store creates a product with its image
// POST /business/:businessId/products
func (ctrl *ProductController) Store(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid product data")
		return
	}

	image, err := receiveImage(c, ctrl.storage, "image", "products")
	if err != nil {
		return
	}

	product, err := ctrl.productService.Create(businessID, req.CategoryID, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Obs:         req.Obs,
	}, *image)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// Update overlays the supplied fields onto the product
// PUT /business/:businessId/products/:id
func (ctrl *ProductController) Update(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid product data")
		return
	}

	image, err := receiveImage(c, ctrl.storage, "image", "products")
	if err != nil {
		return
	}

	product, err := ctrl.productService.Update(businessID, id, req.CategoryID, service.ProductMutation{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Obs:         req.Obs,
		Valid:       req.Valid,
	}, *image)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// Delete removes a product scoped by business and product id
// DELETE /business/:businessId/products/:id
func (ctrl *ProductController) Delete(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.Delete(businessID, id); err != nil {
		respondProductError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func respondProductError(c *gin.Context, err error) {
	switch err {
	case service.ErrBusinessNotFound:
		errors.NotFound(c, errors.BusinessNotFound, "Business not found")
	case service.ErrCategoryNotFound:
		errors.NotFound(c, errors.CategoryNotFound, "Category not found")
	case service.ErrProductNotFound:
		errors.NotFound(c, errors.ProductNotFound, "Product not found")
	default:
		errors.RespondWithParsedError(c, err)
	}
}
