package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnstonks-git/klimata/internal/api/metrics"
	"github.com/johnstonks-git/klimata/internal/api/render"
	"github.com/johnstonks-git/klimata/internal/core/domain"
	"github.com/johnstonks-git/klimata/internal/core/ports"
)

// SessionDriver is the interface the handlers use to deliver events to the
// session state machine.
type SessionDriver interface {
	Snapshot() domain.Session
	SubmitLogin(ctx context.Context, username, password string) error
	SubmitSignUp(ctx context.Context, username, password string) error
	SubmitPasswordChange(ctx context.Context, newPassword string) error
	LogOut() error
	SelectView(view domain.View) error
	SelectLayer(layer domain.MetricLayer) error
	SelectBarangay(name string) error
}

// AuthHandler serves the login, sign-up, password-change, and log-out forms.
type AuthHandler struct {
	sessions SessionDriver
}

func NewAuthHandler(sessions SessionDriver) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type credentialsRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type passwordChangeRequest struct {
	NewPassword string `form:"new_password" validate:"required"`
}

// ShowLogin handles GET /login.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, string(domain.ViewLogin), render.Page{
		RenderRequest: &ports.RenderRequest{View: domain.ViewLogin},
	})
}

// ShowSignUp handles GET /signup.
func (h *AuthHandler) ShowSignUp(c echo.Context) error {
	return c.Render(http.StatusOK, string(domain.ViewSignUp), render.Page{
		RenderRequest: &ports.RenderRequest{View: domain.ViewSignUp},
	})
}

// Login handles POST /login. On success the session moves to the city
// overview; on failure the form is re-rendered with the rejection message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&req); err != nil {
		return h.loginRejected(c, http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.SubmitLogin(c.Request().Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return h.loginRejected(c, http.StatusUnauthorized, "user not known or password incorrect")
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return h.loginRejected(c, http.StatusTooManyRequests, "too many failed attempts, try again later")
		default:
			return err
		}
	}

	metrics.LoginsTotal.WithLabelValues("accepted").Inc()
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// SignUp handles POST /signup. A successful registration authenticates the
// new account immediately.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&req); err != nil {
		return h.signUpRejected(c, http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.SubmitSignUp(c.Request().Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			metrics.SignupsTotal.WithLabelValues("rejected").Inc()
			return h.signUpRejected(c, http.StatusConflict, "that username is already taken")
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.SignupsTotal.WithLabelValues("rejected").Inc()
			return h.signUpRejected(c, http.StatusBadRequest, "username must be non-empty and the password long enough")
		default:
			return err
		}
	}

	metrics.SignupsTotal.WithLabelValues("accepted").Inc()
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// ChangePassword handles POST /account/password. The session stays on the
// manage-account view whatever the outcome.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req passwordChangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&req); err != nil {
		return h.accountPage(c, http.StatusBadRequest, err.Error(), "")
	}

	if err := h.sessions.SubmitPasswordChange(c.Request().Context(), req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.PasswordChangesTotal.WithLabelValues("rejected").Inc()
			return h.accountPage(c, http.StatusBadRequest, "new password is too short", "")
		}
		return err
	}

	metrics.PasswordChangesTotal.WithLabelValues("accepted").Inc()
	return h.accountPage(c, http.StatusOK, "", "password updated")
}

// LogOut handles POST /logout.
func (h *AuthHandler) LogOut(c echo.Context) error {
	if err := h.sessions.LogOut(); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) loginRejected(c echo.Context, status int, msg string) error {
	return c.Render(status, string(domain.ViewLogin), render.Page{
		RenderRequest: &ports.RenderRequest{View: domain.ViewLogin},
		Error:         msg,
	})
}

func (h *AuthHandler) signUpRejected(c echo.Context, status int, msg string) error {
	return c.Render(status, string(domain.ViewSignUp), render.Page{
		RenderRequest: &ports.RenderRequest{View: domain.ViewSignUp},
		Error:         msg,
	})
}

func (h *AuthHandler) accountPage(c echo.Context, status int, errMsg, notice string) error {
	return c.Render(status, string(domain.ViewManageAccount), render.Page{
		RenderRequest: &ports.RenderRequest{
			View:     domain.ViewManageAccount,
			Username: h.sessions.Snapshot().Username,
		},
		Error:  errMsg,
		Notice: notice,
	})
}
