package middleware

import (
	"net/http"

	"github.com/hostfolio/property-dashboard-api/internal/domain"
	"github.com/hostfolio/property-dashboard-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// RoleMiddleware restricts access to the given role IDs.
func RoleMiddleware(allowedRoles []int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
			if !ok {
				logrus.Warning("access attempted without authentication")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
				return
			}

			isAllowed := false
			for _, role := range allowedRoles {
				if userClaims.UserRoleID == role {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				logrus.Warningf("access denied for user ID=%d, Role=%d", userClaims.UserID, userClaims.UserRoleID)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "You do not have permission to access this resource", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly allows administrators only.
func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.RoleAdmin})
}

// AdminOrManager allows administrators and managers.
func AdminOrManager() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.RoleAdmin, domain.RoleManager})
}

// AllRoles allows any authenticated user.
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.RoleAdmin, domain.RoleManager, domain.RoleViewer})
}
