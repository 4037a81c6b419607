package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/logger"
)

// AuthAPI is the slice of the gateway the manager needs for login.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*model.LoginData, error)
}

// Manager owns the active session. At most one session exists per store;
// it survives restarts because the token and user profile are persisted.
type Manager struct {
	store Store
	auth  AuthAPI
	log   *logger.Logger
}

func NewManager(store Store, log *logger.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// BindAuth attaches the gateway auth client. Wired once at startup; the
// manager and the gateway reference each other (the gateway sources its
// bearer token here), so one side has to be bound late.
func (m *Manager) BindAuth(auth AuthAPI) {
	m.auth = auth
}

// Teardown releases the backing store if it holds external resources.
func (m *Manager) Teardown() {
	if c, ok := m.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			m.log.Error(err, "failed to close session store")
		}
	}
}

// Login exchanges credentials for a session and persists it.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.LoginData, error) {
	if m.auth == nil {
		return nil, errors.NewInternal(fmt.Errorf("auth client not bound"))
	}

	data, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	userJSON, err := json.Marshal(data.User)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to encode user profile: %w", err))
	}

	if err := m.store.Set(KeyToken, data.Token); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to persist token: %w", err))
	}
	if err := m.store.Set(KeyUser, string(userJSON)); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to persist user profile: %w", err))
	}

	m.log.Info("session established", "user_id", data.User.ID, "role", data.User.Role)
	return data, nil
}

// Logout clears the persisted session. Idempotent; storage failures are
// logged and swallowed so logout can never fail from the caller's view.
func (m *Manager) Logout() {
	if err := m.store.Delete(KeyToken); err != nil {
		m.log.Error(err, "failed to clear token")
	}
	if err := m.store.Delete(KeyUser); err != nil {
		m.log.Error(err, "failed to clear user profile")
	}
}

// Token returns the persisted bearer token, if any.
func (m *Manager) Token() (string, bool) {
	v, ok, err := m.store.Get(KeyToken)
	if err != nil {
		m.log.Error(err, "failed to read token")
		return "", false
	}
	return v, ok
}

// IsLoggedIn reports token presence only. It deliberately does not
// validate the token upstream: a stale or revoked token still counts as
// logged-in until the next API call fails with 401.
func (m *Manager) IsLoggedIn() bool {
	_, ok := m.Token()
	return ok
}

// CurrentUser returns the persisted user profile. A profile that fails
// to parse is cleared and reported as logged-out with a corrupt-state
// error, rather than poisoning every later read.
func (m *Manager) CurrentUser() (*model.SessionUser, error) {
	raw, ok, err := m.store.Get(KeyUser)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if !ok {
		return nil, errors.NewAuth("not logged in", nil)
	}

	var user model.SessionUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		m.log.Error(err, "persisted user profile unreadable, clearing session")
		m.Logout()
		return nil, errors.NewCorruptState(KeyUser, err)
	}
	return &user, nil
}

// TokenClaims parses the bearer token without verifying its signature,
// for display purposes only (issue and expiry on the profile screen).
// Guard decisions never consult this.
func (m *Manager) TokenClaims() (issuedAt, expiresAt *time.Time, err error) {
	raw, ok := m.Token()
	if !ok {
		return nil, nil, errors.NewAuth("not logged in", nil)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, nil, nil
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		issuedAt = &iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = &exp.Time
	}
	return issuedAt, expiresAt, nil
}

// Settings loads the persisted preferences merged over defaults.
func (m *Manager) Settings() model.Settings {
	settings := model.DefaultSettings()

	raw, ok, err := m.store.Get(KeySettings)
	if err != nil || !ok {
		return settings
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		m.log.Error(err, "persisted settings unreadable, using defaults")
		return model.DefaultSettings()
	}
	return settings
}

// SaveSettings persists preferences as a single JSON blob.
func (m *Manager) SaveSettings(settings model.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to encode settings: %w", err))
	}
	if err := m.store.Set(KeySettings, string(raw)); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to persist settings: %w", err))
	}
	return nil
}
