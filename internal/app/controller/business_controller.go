package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
	"github.com/vitrine/vitrine-backend/internal/app/service"
	"github.com/vitrine/vitrine-backend/internal/errors"
	"github.com/vitrine/vitrine-backend/internal/middleware"
	"github.com/vitrine/vitrine-backend/internal/storage"
)

type BusinessController struct {
	businessService service.BusinessService
	storage         *storage.S3Storage
}

func NewBusinessController(businessService service.BusinessService, storage *storage.S3Storage) *BusinessController {
	return &BusinessController{
		businessService: businessService,
		storage:         storage,
	}
}

type CreateBusinessRequest struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Payment     string `form:"payment"`
	Phone       string `form:"phone"`
	Whatsapp    string `form:"whatsapp"`
	SegmentID   uint   `form:"segment_id" binding:"required"`

	Street     string `form:"street" binding:"required"`
	City       string `form:"city" binding:"required"`
	State      string `form:"state" binding:"required"`
	PostalCode string `form:"postal_code" binding:"required"`
	Locality   string `form:"locality" binding:"required"`
	Number     string `form:"number"`
}

type UpdateBusinessRequest struct {
	Name        *string `form:"name"`
	Description *string `form:"description"`
	Payment     *string `form:"payment"`
	Phone       *string `form:"phone"`
	Whatsapp    *string `form:"whatsapp"`
	Valid       *bool   `form:"valid"`
	SegmentID   uint    `form:"segment_id" binding:"required"`

	AddressID  uint    `form:"address_id"`
	Street     *string `form:"street"`
	City       *string `form:"city"`
	State      *string `form:"state"`
	PostalCode *string `form:"postal_code"`
	Locality   *string `form:"locality"`
	Number     *string `form:"number"`
}

// Index lists the authenticated user's businesses
// GET /business
func (ctrl *BusinessController) Index(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, errors.AuthUnauthorized, "")
		return
	}

	businesses, err := ctrl.businessService.ListForUser(userID)
	if err != nil {
		if err == service.ErrUserNotFound {
			errors.NotFound(c, errors.UserNotFound, "User not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, businesses)
}

// Show returns one business with address and segment attached
// GET /business/:id
func (ctrl *BusinessController) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}

	business, err := ctrl.businessService.GetByID(id)
	if err != nil {
		if err == service.ErrBusinessNotFound {
			errors.NotFound(c, errors.BusinessNotFound, "Business not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, business)
}

// Store registers a business with its logo and initial address
// POST /business
func (ctrl *BusinessController) Store(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, errors.AuthUnauthorized, "")
		return
	}

	var req CreateBusinessRequest
	if err := c.ShouldBind(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid business data")
		return
	}

	logo, err := receiveImage(c, ctrl.storage, "logo", "logos")
	if err != nil {
		return
	}

	business, err := ctrl.businessService.Create(userID, service.BusinessInput{
		Name:        req.Name,
		Description: req.Description,
		Payment:     req.Payment,
		Phone:       req.Phone,
		Whatsapp:    req.Whatsapp,
		SegmentID:   req.SegmentID,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Locality:    req.Locality,
		Number:      req.Number,
	}, *logo)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, business)
}

// Update overlays the supplied fields onto the business
// PUT /business/:id
func (ctrl *BusinessController) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, errors.AuthUnauthorized, "")
		return
	}

	id, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBind(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid business data")
		return
	}

	logo, err := receiveImage(c, ctrl.storage, "logo", "logos")
	if err != nil {
		return
	}

	business, err := ctrl.businessService.Update(userID, id, service.BusinessMutation{
		Name:        req.Name,
		Description: req.Description,
		Payment:     req.Payment,
		Phone:       req.Phone,
		Whatsapp:    req.Whatsapp,
		Valid:       req.Valid,
		SegmentID:   req.SegmentID,
		AddressID:   req.AddressID,
		Address: repository.AddressMutation{
			Street:     req.Street,
			City:       req.City,
			State:      req.State,
			PostalCode: req.PostalCode,
			Locality:   req.Locality,
			Number:     req.Number,
		},
	}, *logo)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, business)
}

// Delete soft-removes a business owned by the authenticated user
// DELETE /business/:id
func (ctrl *BusinessController) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, errors.AuthUnauthorized, "")
		return
	}

	id, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}

	if err := ctrl.businessService.Delete(userID, id); err != nil {
		if err == service.ErrBusinessNotOwned {
			errors.Forbidden(c, "Business does not belong to the logged in user")
			return
		}
		respondBusinessError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func respondBusinessError(c *gin.Context, err error) {
	switch err {
	case service.ErrUserNotFound:
		errors.NotFound(c, errors.UserNotFound, "User not found")
	case service.ErrSegmentNotFound:
		errors.NotFound(c, errors.SegmentNotFound, "Segment not found")
	case service.ErrBusinessNotFound:
		errors.NotFound(c, errors.BusinessNotFound, "Business not found")
	case repository.ErrAddressIncomplete:
		errors.BadRequest(c, errors.ValidationRequired, "Address is missing required fields")
	default:
		errors.RespondWithParsedError(c, err)
	}
}
