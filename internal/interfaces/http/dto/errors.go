package dto

import "net/http"

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to 500.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	// Resource errors
	"NOT_FOUND":            http.StatusNotFound,
	"ITEM_NOT_FOUND":       http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Input validation errors
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_AMOUNT":       http.StatusBadRequest,
	"INVALID_CODE":         http.StatusBadRequest,
	"INVALID_NAME":         http.StatusBadRequest,
	"INVALID_COUNTRY":      http.StatusBadRequest,
	"INVALID_CUSTOMER":     http.StatusBadRequest,
	"INVALID_ORDER_NUMBER": http.StatusBadRequest,
	"INVALID_ITEM":         http.StatusBadRequest,
	"INVALID_QUANTITY":     http.StatusBadRequest,
	"INVALID_DISCOUNT":     http.StatusBadRequest,
	"INVALID_PERCENTAGE":   http.StatusBadRequest,
	"INVALID_RANGE":        http.StatusBadRequest,
	"INVALID_REASON":       http.StatusBadRequest,
	"INVALID_SETTING":      http.StatusBadRequest,
	"INVALID_LANGUAGE":     http.StatusBadRequest,

	// Business rule errors
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"NO_ITEMS":             http.StatusUnprocessableEntity,
	"NO_RULE_FOUND":        http.StatusUnprocessableEntity,
	"INCOMPLETE_ITEM_DATA": http.StatusUnprocessableEntity,
	"NOTHING_TO_ALLOCATE":  http.StatusUnprocessableEntity,
	"AMOUNT_TOO_LARGE":     http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
