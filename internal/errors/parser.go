package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is the parsed form of a storage error
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a storage-layer error into a code and message safe to
// return to the client. Service-level sentinel errors are handled by the
// controllers directly; this is the fallback for everything that leaks
// through from the database.
func ParseError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: "Resource not found"}
	}

	errStr := strings.ToLower(err.Error())

	// Unique constraint violation (postgres 23505, sqlite "UNIQUE constraint failed")
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Resource already exists"}
	}

	// Foreign key constraint violation (postgres 23503)
	if strings.Contains(errStr, "foreign key constraint") {
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Referenced resource does not exist"}
	}

	// Not null constraint violation (postgres 23502)
	if strings.Contains(errStr, "violates not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{Code: InternalServerError, Message: "Storage is unavailable. Please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred"}
}

// RespondWithParsedError writes the HTTP response for an unclassified
// storage-layer error.
func RespondWithParsedError(c *gin.Context, err error) {
	info := ParseError(err)

	status := http.StatusInternalServerError
	switch info.Code {
	case ResourceNotFound:
		status = http.StatusNotFound
	case ResourceAlreadyExists:
		status = http.StatusConflict
	case ValidationInvalidInput, ValidationRequired:
		status = http.StatusBadRequest
	}

	RespondWithError(c, status, info.Code, info.Message)
}
