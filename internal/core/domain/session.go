package domain

import "errors"

// AuthState represents whether the interactive session is authenticated.
type AuthState string

const (
	StateAnonymous     AuthState = "anonymous"
	StateAuthenticated AuthState = "authenticated"
)

// View identifies one of the fixed set of presentation views.
type View string

const (
	ViewLogin            View = "login"
	ViewSignUp           View = "signup"
	ViewCityOverview     View = "city_overview"
	ViewBarangayDeepDive View = "barangay_deep_dive"
	ViewManageAccount    View = "manage_account"
)

// allowedViews defines which views each auth state may activate.
var allowedViews = map[AuthState][]View{
	StateAnonymous:     {ViewLogin, ViewSignUp},
	StateAuthenticated: {ViewCityOverview, ViewBarangayDeepDive, ViewManageAccount},
}

var ErrInvalidTransition = errors.New("invalid session transition")

// AllowsView reports whether a view may be active in this auth state.
func (s AuthState) AllowsView(v View) bool {
	for _, allowed := range allowedViews[s] {
		if allowed == v {
			return true
		}
	}
	return false
}

// Session is the in-memory state of the one interactive user: auth status,
// active view, and the dashboard selections the views depend on. It is owned
// by the running process and never persisted.
type Session struct {
	State            AuthState
	Username         string // set only when State == StateAuthenticated
	ActiveView       View
	Layer            MetricLayer // choropleth layer for the city overview
	SelectedBarangay string      // deep-dive selection, empty = none
}

// NewSession returns the initial session: anonymous, on the login view.
func NewSession() Session {
	return Session{
		State:      StateAnonymous,
		ActiveView: ViewLogin,
		Layer:      LayerUrbanRisk,
	}
}
