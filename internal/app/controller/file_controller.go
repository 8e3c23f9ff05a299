package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitrine/vitrine-backend/internal/app/service"
	"github.com/vitrine/vitrine-backend/internal/errors"
	"github.com/vitrine/vitrine-backend/internal/middleware"
	"github.com/vitrine/vitrine-backend/internal/storage"
)

const maxUploadSize = 5 << 20 // 5 MiB

var allowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

type FileController struct {
	avatarService service.AvatarService
	storage       *storage.S3Storage
}

func NewFileController(avatarService service.AvatarService, storage *storage.S3Storage) *FileController {
	return &FileController{
		avatarService: avatarService,
		storage:       storage,
	}
}

// Store uploads a file and attaches it as the authenticated user's avatar
// POST /files
func (ctrl *FileController) Store(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, errors.AuthUnauthorized, "")
		return
	}

	upload, err := receiveImage(c, ctrl.storage, "file", "avatars")
	if err != nil {
		return // receiveImage has written the response
	}

	file, err := ctrl.avatarService.Attach(userID, *upload)
	if err != nil {
		if err == service.ErrUserNotFound {
			errors.NotFound(c, errors.UserNotFound, "User not found")
			return
		}
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, file)
}

// receiveImage validates and stores a multipart image, returning the
// (original name, storage key) pair the aggregate services consume. On error
// it writes the HTTP response and returns a non-nil error.
func receiveImage(c *gin.Context, s *storage.S3Storage, field, folder string) (*service.FileInput, error) {
	header, err := c.FormFile(field)
	if err != nil {
		errors.BadRequest(c, errors.UploadMissingFile, "An image file is required")
		return nil, err
	}

	if err := s.ValidateFileSize(header.Size, maxUploadSize); err != nil {
		errors.BadRequest(c, errors.UploadFileTooLarge, "File is too large")
		return nil, err
	}
	if err := s.ValidateContentType(header.Header.Get("Content-Type"), allowedImageTypes); err != nil {
		errors.BadRequest(c, errors.UploadInvalidFileType, "Only image files are allowed")
		return nil, err
	}

	key, err := s.Upload(c.Request.Context(), header, folder)
	if err != nil {
		errors.InternalError(c, "Failed to store the uploaded file")
		return nil, err
	}

	return &service.FileInput{Name: header.Filename, Path: key}, nil
}
