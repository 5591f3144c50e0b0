package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Authentication and authorization error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// Tenant and subscription error codes
const (
	ErrCodeTenantNotBound  = "TENANT_NOT_BOUND"
	ErrCodeInvalidTenant   = "INVALID_TENANT"
	ErrCodePaymentRequired = "PAYMENT_REQUIRED"
	ErrCodePlanRestriction = "PLAN_RESTRICTION"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Codes absent
// from the map answer 500 so an unmapped domain error never leaks as a
// false success.
//
// PAYMENT_REQUIRED and PLAN_RESTRICTION both answer 403, not 402: the
// request is understood and refused, and 402 support in clients and proxies
// is inconsistent.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidToken:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTenantNotBound:     http.StatusUnauthorized,

	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodePaymentRequired: http.StatusForbidden,
	ErrCodePlanRestriction: http.StatusForbidden,
	"ACCOUNT_DEACTIVATED":  http.StatusForbidden,

	"NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"EMAIL_TAKEN":          http.StatusConflict,
	"PAYMENT_NOT_REQUIRED": http.StatusConflict,

	"INVALID_INPUT":       http.StatusBadRequest,
	ErrCodeInvalidTenant:  http.StatusBadRequest,
	"INVALID_TENANT_NAME": http.StatusBadRequest,
	"INVALID_PLAN":        http.StatusBadRequest,
	"INVALID_EMAIL":       http.StatusBadRequest,
	"WEAK_PASSWORD":       http.StatusBadRequest,
	"INVALID_REFERENCE":   http.StatusBadRequest,
	"INVALID_LABEL":       http.StatusBadRequest,
	"INVALID_AMOUNT":      http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code, defaulting
// to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
