package apperrors

// Error codes - organized by domain

// Authentication errors (AUTH_*)
const (
	ErrCodeTokenMissing   = "AUTH_TOKEN_MISSING"
	ErrCodeTokenInvalid   = "AUTH_TOKEN_INVALID"
	ErrCodeTokenMalformed = "AUTH_TOKEN_MALFORMED"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodeInsufficientPermission = "AUTHZ_INSUFFICIENT_PERMISSION"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidInput     = "VALIDATION_INVALID_INPUT"
	ErrCodeMissingField     = "VALIDATION_MISSING_FIELD"
	ErrCodeInvalidSection   = "VALIDATION_INVALID_SECTION"
)

// Resource errors (RESOURCE_*)
const (
	ErrCodeContentNotFound = "RESOURCE_CONTENT_NOT_FOUND"
)

// Landing page content errors (CONTENT_*)
const (
	ErrCodeContentWriteFailed = "CONTENT_WRITE_FAILED"
	ErrCodeBulkPartialFailure = "CONTENT_BULK_PARTIAL_FAILURE"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeDatabaseError   = "INTERNAL_DATABASE_ERROR"
	ErrCodeUnexpectedError = "INTERNAL_UNEXPECTED_ERROR"
)
