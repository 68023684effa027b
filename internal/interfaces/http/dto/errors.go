package dto

import "net/http"

// Interface-level error codes. Domain errors keep their own stable codes;
// these cover failures raised before a request reaches the domain.
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Unknown codes
// fall back to 500 so unexpected failures are never misreported as client
// errors.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	// Resource errors
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Input validation raised by the domain or application layer
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_AMOUNT":         http.StatusBadRequest,
	"INVALID_LINE_ITEM":      http.StatusBadRequest,
	"INVALID_SCHEDULE_ENTRY": http.StatusBadRequest,
	"INVALID_SCHEDULE_INDEX": http.StatusBadRequest,
	"INVALID_CUSTOMER":       http.StatusBadRequest,
	"INVALID_PRODUCT":        http.StatusBadRequest,
	"INVALID_SALE":           http.StatusBadRequest,
	"INVALID_EXPENSE":        http.StatusBadRequest,

	// Business rule violations
	"INVALID_STATE":           http.StatusUnprocessableEntity,
	"PAYMENT_EXCEEDS_TOTAL":   http.StatusUnprocessableEntity,
	"SCHEDULE_TOTAL_MISMATCH": http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":      http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
