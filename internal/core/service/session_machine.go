package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/johnstonks-git/klimata/internal/core/domain"
	"github.com/johnstonks-git/klimata/internal/core/ports"
)

// LoginThrottle limits consecutive failed logins per username. Implementations
// must treat registered and unregistered usernames identically so the limiter
// leaks no enumeration signal.
type LoginThrottle interface {
	// Allow reports whether a login attempt for the username may proceed.
	Allow(ctx context.Context, username string) (bool, error)
	// RecordFailure counts one failed attempt.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, username string) error
}

// SessionMachine owns the one interactive Session and gates every transition.
// Events are processed one at a time to completion; a rejected event leaves
// the session untouched and surfaces a domain error.
type SessionMachine struct {
	mu       sync.Mutex
	auth     ports.AuthService
	throttle LoginThrottle // nil disables throttling
	logger   zerolog.Logger
	session  domain.Session
}

func NewSessionMachine(auth ports.AuthService, throttle LoginThrottle, logger zerolog.Logger) *SessionMachine {
	return &SessionMachine{
		auth:     auth,
		throttle: throttle,
		logger:   logger,
		session:  domain.NewSession(),
	}
}

// Snapshot returns a copy of the current session state.
func (m *SessionMachine) Snapshot() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// SubmitLogin authenticates the credentials and, on success, activates the
// city overview. Only valid while anonymous.
func (m *SessionMachine) SubmitLogin(ctx context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.State != domain.StateAnonymous {
		return m.rejected("submit_login")
	}

	if m.throttle != nil {
		allowed, err := m.throttle.Allow(ctx, username)
		if err != nil {
			m.logger.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		} else if !allowed {
			m.logger.Warn().Str("username", username).Msg("login throttled")
			return domain.ErrTooManyAttempts
		}
	}

	if err := m.auth.Verify(ctx, username, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) && m.throttle != nil {
			if terr := m.throttle.RecordFailure(ctx, username); terr != nil {
				m.logger.Warn().Err(terr).Msg("failed to record login failure")
			}
		}
		m.logger.Info().Str("username", username).Msg("login rejected")
		return err
	}

	if m.throttle != nil {
		if err := m.throttle.Reset(ctx, username); err != nil {
			m.logger.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	m.session = domain.NewSession()
	m.session.State = domain.StateAuthenticated
	m.session.Username = username
	m.session.ActiveView = domain.ViewCityOverview

	m.logger.Info().Str("username", username).Msg("login accepted")
	return nil
}

// SubmitSignUp registers a new account and, on success, authenticates it
// immediately. Only valid while anonymous.
func (m *SessionMachine) SubmitSignUp(ctx context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.State != domain.StateAnonymous {
		return m.rejected("submit_signup")
	}

	if err := m.auth.Register(ctx, username, password); err != nil {
		return err
	}

	m.session = domain.NewSession()
	m.session.State = domain.StateAuthenticated
	m.session.Username = username
	m.session.ActiveView = domain.ViewCityOverview

	m.logger.Info().Str("username", username).Msg("signup accepted")
	return nil
}

// SelectView activates one of the authenticated views. Rejected while
// anonymous and for views the current state does not allow.
func (m *SessionMachine) SelectView(view domain.View) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.State != domain.StateAuthenticated || !m.session.State.AllowsView(view) {
		return m.rejected("select_view")
	}

	m.session.ActiveView = view
	return nil
}

// SelectLayer changes the overview choropleth layer. Authenticated only.
func (m *SessionMachine) SelectLayer(layer domain.MetricLayer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.State != domain.StateAuthenticated {
		return m.rejected("select_layer")
	}
	if !layer.IsValid() {
		return domain.ErrInvalidInput
	}

	m.session.Layer = layer
	return nil
}

// SelectBarangay records the deep-dive selection. An empty name clears it;
// whether the name exists in the dataset is the View Router's concern.
func (m *SessionMachine) SelectBarangay(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.State != domain.StateAuthenticated {
		return m.rejected("select_barangay")
	}

	m.session.SelectedBarangay = name
	return nil
}

// SubmitPasswordChange updates the authenticated user's password. The view
// does not change; the caller stays on manage-account.
func (m *SessionMachine) SubmitPasswordChange(ctx context.Context, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.State != domain.StateAuthenticated {
		return m.rejected("submit_password_change")
	}

	return m.auth.ChangePassword(ctx, m.session.Username, newPassword)
}

// LogOut returns the session to its initial anonymous state.
func (m *SessionMachine) LogOut() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.State != domain.StateAuthenticated {
		return m.rejected("log_out")
	}

	username := m.session.Username
	m.session = domain.NewSession()
	m.logger.Info().Str("username", username).Msg("logged out")
	return nil
}

func (m *SessionMachine) rejected(event string) error {
	m.logger.Warn().
		Str("event", event).
		Str("state", string(m.session.State)).
		Str("view", string(m.session.ActiveView)).
		Msg("event rejected in current state")
	return domain.ErrInvalidTransition
}
