package errors

// Error code constants, CATEGORY_SPECIFIC_DETAIL. The frontend maps these to
// display messages.

const (
	// Authentication
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailExists        = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"
	AuthPasswordMismatch   = "AUTH_PASSWORD_MISMATCH"

	// Authorization
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY"

	// Validation
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// Resources
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	UserNotFound          = "USER_NOT_FOUND"
	BusinessNotFound      = "BUSINESS_NOT_FOUND"
	SegmentNotFound       = "SEGMENT_NOT_FOUND"
	CategoryNotFound      = "CATEGORY_NOT_FOUND"
	ProductNotFound       = "PRODUCT_NOT_FOUND"

	// Uploads
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadMissingFile     = "UPLOAD_MISSING_FILE"

	// Internal
	InternalServerError = "INTERNAL_SERVER_ERROR"
)
