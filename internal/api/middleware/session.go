package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnstonks-git/klimata/internal/core/domain"
)

// SessionReader is the slice of the session machine the gates need.
type SessionReader interface {
	Snapshot() domain.Session
}

// RequireAuthenticated redirects anonymous callers to the login view instead
// of letting them reach dashboard pages.
func RequireAuthenticated(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessions.Snapshot().State != domain.StateAuthenticated {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// RequireAnonymous redirects authenticated callers away from the login and
// sign-up forms, back to the dashboard.
func RequireAnonymous(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessions.Snapshot().State == domain.StateAuthenticated {
				return c.Redirect(http.StatusSeeOther, "/dashboard")
			}
			return next(c)
		}
	}
}
