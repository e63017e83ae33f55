package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnstonks-git/klimata/internal/api/metrics"
	"github.com/johnstonks-git/klimata/internal/api/render"
	"github.com/johnstonks-git/klimata/internal/core/domain"
	"github.com/johnstonks-git/klimata/internal/core/ports"
)

// ViewRouter resolves a session snapshot into rendering inputs.
type ViewRouter interface {
	Route(ctx context.Context, session domain.Session) (*ports.RenderRequest, error)
}

// DashboardHandler renders the active view and applies the selection events.
type DashboardHandler struct {
	sessions SessionDriver
	router   ViewRouter
}

func NewDashboardHandler(sessions SessionDriver, router ViewRouter) *DashboardHandler {
	return &DashboardHandler{sessions: sessions, router: router}
}

type selectViewRequest struct {
	View string `form:"view" validate:"required"`
}

type selectLayerRequest struct {
	Layer string `form:"layer" validate:"required"`
}

type selectBarangayRequest struct {
	Barangay string `form:"barangay"` // empty clears the selection
}

// Show handles GET /dashboard — renders whatever view is active.
func (h *DashboardHandler) Show(c echo.Context) error {
	req, err := h.router.Route(c.Request().Context(), h.sessions.Snapshot())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, string(req.View), render.Page{RenderRequest: req})
}

// SelectView handles POST /dashboard/view.
func (h *DashboardHandler) SelectView(c echo.Context) error {
	var req selectViewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.SelectView(domain.View(req.View)); err != nil {
		return err
	}

	metrics.ViewSelectionsTotal.WithLabelValues(req.View).Inc()
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// SelectLayer handles POST /dashboard/layer.
func (h *DashboardHandler) SelectLayer(c echo.Context) error {
	var req selectLayerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.SelectLayer(domain.MetricLayer(req.Layer)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// SelectBarangay handles POST /dashboard/barangay.
func (h *DashboardHandler) SelectBarangay(c echo.Context) error {
	var req selectBarangayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if err := h.sessions.SelectBarangay(req.Barangay); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Home handles GET / — sends the caller to wherever their state belongs.
func (h *DashboardHandler) Home(c echo.Context) error {
	if h.sessions.Snapshot().State == domain.StateAuthenticated {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}
