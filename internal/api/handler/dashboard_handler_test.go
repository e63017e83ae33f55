package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/johnstonks-git/klimata/internal/core/domain"
	"github.com/johnstonks-git/klimata/internal/core/ports"
)

type stubViewRouter struct {
	request *ports.RenderRequest
	err     error
	routed  domain.Session
}

func (r *stubViewRouter) Route(_ context.Context, session domain.Session) (*ports.RenderRequest, error) {
	r.routed = session
	return r.request, r.err
}

func authedDriver(view domain.View) *stubSessionDriver {
	return &stubSessionDriver{session: domain.Session{
		State:      domain.StateAuthenticated,
		Username:   "alice",
		ActiveView: view,
		Layer:      domain.LayerUrbanRisk,
	}}
}

func TestDashboardHandler_Show(t *testing.T) {
	e := newTestEcho(t)
	router := &stubViewRouter{request: &ports.RenderRequest{
		View:     domain.ViewCityOverview,
		Username: "alice",
		Layer:    domain.LayerUrbanRisk,
		Stats:    &ports.CityStats{MeanUrbanRisk: 0.5},
		TopAtRisk: []ports.RankedBarangay{
			{Name: "Molo", UrbanRisk: 0.9},
		},
	}}
	h := NewDashboardHandler(authedDriver(domain.ViewCityOverview), router)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()

	if err := h.Show(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if router.routed.Username != "alice" {
		t.Errorf("router should route the current session, got %+v", router.routed)
	}
	if !strings.Contains(rec.Body.String(), "Molo") {
		t.Errorf("ranked barangay not rendered: %s", rec.Body.String())
	}
}

func TestDashboardHandler_Show_RouterError(t *testing.T) {
	e := newTestEcho(t)
	routerErr := errors.New("dataset unavailable")
	h := NewDashboardHandler(authedDriver(domain.ViewCityOverview), &stubViewRouter{err: routerErr})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()

	if err := h.Show(e.NewContext(req, rec)); !errors.Is(err, routerErr) {
		t.Fatalf("expected the router error to propagate, got %v", err)
	}
}

func TestDashboardHandler_SelectView(t *testing.T) {
	e := newTestEcho(t)
	driver := authedDriver(domain.ViewCityOverview)
	h := NewDashboardHandler(driver, &stubViewRouter{})

	c, rec := postForm(e, "/dashboard/view", url.Values{"view": {"barangay_deep_dive"}})
	if err := h.SelectView(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.selectedView != domain.ViewBarangayDeepDive {
		t.Errorf("expected deep dive selection, got %q", driver.selectedView)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Errorf("expected redirect to /dashboard, got %q", loc)
	}
}

func TestDashboardHandler_SelectView_Rejected(t *testing.T) {
	e := newTestEcho(t)
	driver := &stubSessionDriver{viewErr: domain.ErrInvalidTransition}
	h := NewDashboardHandler(driver, &stubViewRouter{})

	c, _ := postForm(e, "/dashboard/view", url.Values{"view": {"login"}})
	if err := h.SelectView(c); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestDashboardHandler_SelectLayer(t *testing.T) {
	e := newTestEcho(t)
	driver := authedDriver(domain.ViewCityOverview)
	h := NewDashboardHandler(driver, &stubViewRouter{})

	c, rec := postForm(e, "/dashboard/layer", url.Values{"layer": {"population"}})
	if err := h.SelectLayer(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.layer != domain.LayerPopulation {
		t.Errorf("expected population layer, got %q", driver.layer)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
}

func TestDashboardHandler_SelectLayer_Missing(t *testing.T) {
	e := newTestEcho(t)
	h := NewDashboardHandler(authedDriver(domain.ViewCityOverview), &stubViewRouter{})

	c, _ := postForm(e, "/dashboard/layer", url.Values{})
	err := h.SelectLayer(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected a 400 error, got %v", err)
	}
}

func TestDashboardHandler_SelectBarangay(t *testing.T) {
	e := newTestEcho(t)
	driver := authedDriver(domain.ViewBarangayDeepDive)
	h := NewDashboardHandler(driver, &stubViewRouter{})

	c, rec := postForm(e, "/dashboard/barangay", url.Values{"barangay": {"Molo"}})
	if err := h.SelectBarangay(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.barangay != "Molo" {
		t.Errorf("expected Molo selection, got %q", driver.barangay)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
}

func TestDashboardHandler_SelectBarangay_Clear(t *testing.T) {
	e := newTestEcho(t)
	driver := authedDriver(domain.ViewBarangayDeepDive)
	driver.barangay = "Molo"
	h := NewDashboardHandler(driver, &stubViewRouter{})

	c, _ := postForm(e, "/dashboard/barangay", url.Values{"barangay": {""}})
	if err := h.SelectBarangay(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.barangay != "" {
		t.Errorf("expected the selection cleared, got %q", driver.barangay)
	}
}

func TestDashboardHandler_Home(t *testing.T) {
	e := newTestEcho(t)

	tests := []struct {
		name    string
		session domain.Session
		want    string
	}{
		{"anonymous", domain.NewSession(), "/login"},
		{"authenticated", domain.Session{State: domain.StateAuthenticated, Username: "alice"}, "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewDashboardHandler(&stubSessionDriver{session: tt.session}, &stubViewRouter{})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()

			if err := h.Home(e.NewContext(req, rec)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if loc := rec.Header().Get(echo.HeaderLocation); loc != tt.want {
				t.Errorf("expected redirect to %s, got %q", tt.want, loc)
			}
		})
	}
}
