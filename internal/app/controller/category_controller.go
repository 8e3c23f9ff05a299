package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitrine/vitrine-backend/internal/app/service"
	"github.com/vitrine/vitrine-backend/internal/errors"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

type CategoryRequest struct {
	Description string `json:"description" binding:"required"`
}

// Index lists a business's categories
// GET /business/:businessId/categories
func (ctrl *CategoryController) Index(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}

	categories, err := ctrl.categoryService.ListForBusiness(businessID)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Show returns one category
// GET /business/:businessId/categories/:id
func (ctrl *CategoryController) Show(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := ctrl.categoryService.GetByID(businessID, id)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Store creates a category under the business
// POST /business/:businessId/categories
func (ctrl *CategoryController) Store(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.categoryService.Create(businessID, req.Description)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Update replaces the category description
// PUT /business/:businessId/categories/:id
func (ctrl *CategoryController) Update(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.categoryService.Update(businessID, id, req.Description)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete removes a category scoped by business and category id
// DELETE /business/:businessId/categories/:id
func (ctrl *CategoryController) Delete(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.categoryService.Delete(businessID, id); err != nil {
		respondCategoryError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func respondCategoryError(c *gin.Context, err error) {
	switch err {
	case service.ErrBusinessNotFound:
		errors.NotFound(c, errors.BusinessNotFound, "Business not found")
	case service.ErrCategoryNotFound:
		errors.NotFound(c, errors.CategoryNotFound, "Category not found")
	default:
		errors.RespondWithParsedError(c, err)
	}
}
