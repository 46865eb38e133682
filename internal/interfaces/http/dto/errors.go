package dto

import "net/http"

// Error codes shared between the API and its clients. Domain errors
// carry these codes; the HTTP layer only maps them to status codes.
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "ALREADY_EXISTS"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Validation errors -> 400
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeInvalidInput:      http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_EMAIL":          http.StatusBadRequest,
	"INVALID_PASSWORD":       http.StatusBadRequest,
	"INVALID_MESSAGE":        http.StatusBadRequest,
	"INVALID_PRICE":          http.StatusBadRequest,
	"INVALID_SKU":            http.StatusBadRequest,
	"INVALID_SLUG":           http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	"INVALID_ITEM":           http.StatusBadRequest,
	"INVALID_PRODUCT":        http.StatusBadRequest,
	"INVALID_USER":           http.StatusBadRequest,
	"INVALID_STATUS":         http.StatusBadRequest,
	"INVALID_SHIPPING":       http.StatusBadRequest,
	"INVALID_PAYMENT_METHOD": http.StatusBadRequest,
	"INVALID_PAYMENT_NOTE":   http.StatusBadRequest,
	"INVALID_IMAGE_URL":      http.StatusBadRequest,
	"INVALID_STORAGE_KEY":    http.StatusBadRequest,
	"INVALID_CATEGORY_NAME":  http.StatusBadRequest,

	// Authentication / authorization -> 401 / 403
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,

	// Not found -> 404
	ErrCodeNotFound: http.StatusNotFound,

	// Conflicts -> 409
	ErrCodeConflict:   http.StatusConflict,
	"EMAIL_TAKEN":     http.StatusConflict,
	"SKU_TAKEN":       http.StatusConflict,
	"CATEGORY_IN_USE": http.StatusConflict,

	// Business rule violations -> 422
	"EMPTY_CART":             http.StatusUnprocessableEntity,
	"EMPTY_ORDER":            http.StatusUnprocessableEntity,
	"CART_NOT_READY":         http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":     http.StatusUnprocessableEntity,
	"FEATURED_LIMIT":         http.StatusUnprocessableEntity,
	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"INVALID_CATEGORY":       http.StatusUnprocessableEntity,
	"UNSUPPORTED_IMAGE_TYPE": http.StatusUnprocessableEntity,
	"IMAGE_NOT_UPLOADED":     http.StatusUnprocessableEntity,

	// Rate limiting -> 429
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Upstream dependencies -> 502 / 503
	"GENERATION_FAILED":  http.StatusBadGateway,
	"UPLOAD_UNAVAILABLE": http.StatusServiceUnavailable,

	// Internal -> 500
	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(errorCode string) int {
	if status, ok := ErrorCodeHTTPStatus[errorCode]; ok {
		return status
	}
	return http.StatusInternalServerError
}
