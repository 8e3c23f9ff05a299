package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitrine/vitrine-backend/internal/app/service"
	"github.com/vitrine/vitrine-backend/internal/errors"
)

type SegmentController struct {
	segmentService service.SegmentService
}

func NewSegmentController(segmentService service.SegmentService) *SegmentController {
	return &SegmentController{segmentService: segmentService}
}

type CreateSegmentRequest struct {
	Description string `json:"description" binding:"required"`
}

// Index lists segments ordered by description
// GET /segments
func (ctrl *SegmentController) Index(c *gin.Context) {
	segments, err := ctrl.segmentService.List()
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, segments)
}

// Store creates a segment
// POST /segments
func (ctrl *SegmentController) Store(c *gin.Context) {
	var req CreateSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationRequired, "Description is required")
		return
	}

	segment, err := ctrl.segmentService.Create(req.Description)
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusCreated, segment)
}
