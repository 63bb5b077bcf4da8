package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hostfolio/property-dashboard-api/internal/domain"
	"github.com/hostfolio/property-dashboard-api/internal/usecases/authenticating"
	"github.com/hostfolio/property-dashboard-api/pkg/apiErrors"
	"github.com/hostfolio/property-dashboard-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GeneratePasswordResponse struct {
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		token, err := service.LoginUser(req.Email, req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"token": token,
		})
	}
}

// GetMe returns the profile of the authenticated user.
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User not authenticated", nil)
			return
		}

		user, err := service.GetUserProfile(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Failed to load user data", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(user)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Failed to send response", nil)
			return
		}
	}
}

// handleLoginError maps login failures to their API error codes.
func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), map[string]any{
			"user_id": authErr.UserID,
		})
		return
	}

	switch {
	case errors.Is(err, authenticating.ErrInvalidCredentials):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Invalid credentials", nil)

	case errors.Is(err, authenticating.ErrUserDisabled):
		apiErrors.WriteError(w, apiErrors.ErrUserDisabled, "User is disabled", nil)

	case errors.Is(err, authenticating.ErrUserNotFound):
		apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "User not found", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Internal error during login", nil)
	}
}

// ChangePassword lets an authenticated user change their own password.
func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ChangePassword")

		targetUserIDStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if targetUserIDStr == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "User ID not provided", nil)
			return
		}

		targetUserID, err := strconv.Atoi(targetUserIDStr)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid user ID", nil)
			return
		}

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Not authorized", nil)
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Failed to decode request", nil)
			return
		}

		// Users may only change their own password.
		if userClaims.UserID != targetUserID {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Not allowed to change another user's password", nil)
			return
		}

		err = service.ChangePassword(targetUserID, req.CurrentPassword, req.NewPassword)
		if err != nil {
			logrus.Error(err)

			switch {
			case errors.Is(err, authenticating.ErrUserNotFound):
				apiErrors.WriteError(w, apiErrors.ErrUserNotFound, err.Error(), nil)

			case errors.Is(err, authenticating.ErrInvalidCredentials):
				apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Current password is incorrect", nil)

			case errors.Is(err, authenticating.ErrWeakPassword), errors.Is(err, authenticating.ErrSamePassword):
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

			default:
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Failed to change password", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}

// GeneratePassword creates a new strong password for a user. The
// requesting user must be an administrator.
func GeneratePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GeneratePassword")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Not authorized", nil)
			return
		}

		targetUserIDStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if targetUserIDStr == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "User ID not provided", nil)
			return
		}

		targetUserID, err := strconv.Atoi(targetUserIDStr)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid user ID", nil)
			return
		}

		newPassword, err := service.GenerateStrongPassword(userClaims.UserID, targetUserID)
		if err != nil {
			logrus.Error(err)

			switch {
			case errors.Is(err, authenticating.ErrNoAdminPrivileges):
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, err.Error(), nil)

			case errors.Is(err, authenticating.ErrUserNotFound):
				apiErrors.WriteError(w, apiErrors.ErrUserNotFound, err.Error(), nil)

			default:
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Failed to generate password", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GeneratePasswordResponse{
			Password: newPassword,
		})
	}
}
