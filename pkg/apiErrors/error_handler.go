package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Error codes returned to the frontend.
const (
	// Authentication errors (1000-1999)
	ErrInvalidCredentials    = "AUTH_001"
	ErrUserDisabled          = "AUTH_002"
	ErrUserNotFound          = "AUTH_003"
	ErrPasswordExpired       = "AUTH_005"
	ErrInvalidToken          = "AUTH_006"
	ErrExpiredToken          = "AUTH_007"
	ErrInsufficientPrivilege = "AUTH_008"
	ErrUserAlreadyExists     = "AUTH_009"

	// Validation errors (2000-2999)
	ErrInvalidRequest      = "VAL_001"
	ErrMissingRequiredData = "VAL_002"
	ErrInvalidFormat       = "VAL_003"

	// Server errors (5000-5999)
	ErrInternalServer    = "SRV_001"
	ErrDatabaseOperation = "SRV_002"
	ErrExternalService   = "SRV_003"
	ErrCommunication     = "SRV_004"

	// Metrics sync errors. Duplicate-hour is a distinct kind so callers
	// can tell "already posted this hour" from an upstream failure.
	ErrDuplicateHourPost  = "SYNC_001"
	ErrPostCooldownActive = "SYNC_002"
	ErrPostVerification   = "SYNC_003"

	// Upstream aggregation errors
	ErrUpstreamUnavailable = "UPS_001"
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrPasswordExpired:       http.StatusUnauthorized,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
	ErrDuplicateHourPost:     http.StatusConflict,
	ErrPostCooldownActive:    http.StatusTooManyRequests,
	ErrPostVerification:      http.StatusBadGateway,
	ErrUpstreamUnavailable:   http.StatusBadGateway,
}

// APIError is the standardized error body sent to clients.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError writes the standardized error to the HTTP response.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError wraps a Go error into an APIError.
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
