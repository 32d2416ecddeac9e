package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Capability gates. Each is a pure predicate over the flags carried in
// the token claims; denial is a 403, not an error condition.

func forbidden() error {
	return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
}

func requireClaims(pred func(*Claims) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := AuthClaims(c)
			if claims == nil || !pred(claims) {
				return forbidden()
			}
			return next(c)
		}
	}
}

// RequireAdmin passes junior admins and the superuser.
func RequireAdmin() echo.MiddlewareFunc {
	return requireClaims(func(cl *Claims) bool {
		return cl.IsJuniorAdmin || cl.IsSuperuser
	})
}

// RequireTeacher passes accounts with teacher rights.
func RequireTeacher() echo.MiddlewareFunc {
	return requireClaims(func(cl *Claims) bool {
		return cl.IsTeacher
	})
}

// RequireStudent passes accounts linked to a student profile.
func RequireStudent() echo.MiddlewareFunc {
	return requireClaims(func(cl *Claims) bool {
		return cl.StudentID != 0
	})
}

// RequireStaff passes any staff role.
func RequireStaff() echo.MiddlewareFunc {
	return requireClaims(func(cl *Claims) bool {
		return cl.IsSuperuser || cl.IsJuniorAdmin || cl.IsTeacher
	})
}
