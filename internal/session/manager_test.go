package session

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/logger"
)

type fakeAuth struct {
	data *model.LoginData
	err  error

	gotEmail    string
	gotPassword string
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*model.LoginData, error) {
	f.gotEmail = email
	f.gotPassword = password
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func newTestManager(t *testing.T, auth AuthAPI) *Manager {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	m := NewManager(store, testLogger())
	if auth != nil {
		m.BindAuth(auth)
	}
	return m
}

func TestManagerLoginPersistsSession(t *testing.T) {
	auth := &fakeAuth{data: &model.LoginData{
		Token: "tok-1",
		User:  model.SessionUser{ID: 42, FullName: "Dana Vega", Role: model.RoleClinician},
	}}
	m := newTestManager(t, auth)

	data, err := m.Login(context.Background(), "dana@clinic.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", data.Token)
	assert.Equal(t, "dana@clinic.test", auth.gotEmail)
	assert.Equal(t, "secret123", auth.gotPassword)

	token, ok := m.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
	assert.True(t, m.IsLoggedIn())

	user, err := m.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "Dana Vega", user.FullName)
}

func TestManagerLoginFailureLeavesNoSession(t *testing.T) {
	auth := &fakeAuth{err: errors.NewAuth("invalid credentials", nil)}
	m := newTestManager(t, auth)

	_, err := m.Login(context.Background(), "dana@clinic.test", "wrong")
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err))
	assert.False(t, m.IsLoggedIn())
}

func TestManagerLoginWithoutBoundAuth(t *testing.T) {
	m := newTestManager(t, nil)
	_, err := m.Login(context.Background(), "a@b.c", "pw")
	assert.Error(t, err)
}

func TestManagerIsLoggedInIsTokenPresenceOnly(t *testing.T) {
	m := newTestManager(t, nil)
	assert.False(t, m.IsLoggedIn())

	// Any persisted token counts, even one no server would accept.
	require.NoError(t, m.store.Set(KeyToken, "expired-or-garbage"))
	assert.True(t, m.IsLoggedIn())
}

func TestManagerLogoutIsIdempotent(t *testing.T) {
	auth := &fakeAuth{data: &model.LoginData{Token: "tok", User: model.SessionUser{ID: 1}}}
	m := newTestManager(t, auth)

	_, err := m.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	m.Logout()
	assert.False(t, m.IsLoggedIn())

	m.Logout()
	assert.False(t, m.IsLoggedIn())
}

func TestManagerCurrentUserCorruptProfileClearsSession(t *testing.T) {
	m := newTestManager(t, nil)
	require.NoError(t, m.store.Set(KeyToken, "tok"))
	require.NoError(t, m.store.Set(KeyUser, "{{{not json"))

	_, err := m.CurrentUser()
	require.Error(t, err)
	assert.True(t, errors.IsCorruptState(err))

	// The corrupt entry and the token are gone; the next read reports
	// logged-out instead of failing again.
	assert.False(t, m.IsLoggedIn())
	_, err = m.CurrentUser()
	assert.True(t, errors.IsAuth(err))
}

func TestManagerCurrentUserWhenLoggedOut(t *testing.T) {
	m := newTestManager(t, nil)
	_, err := m.CurrentUser()
	assert.True(t, errors.IsAuth(err))
}

func TestManagerSettingsDefaultsWhenUnset(t *testing.T) {
	m := newTestManager(t, nil)
	assert.Equal(t, model.DefaultSettings(), m.Settings())
}

func TestManagerSettingsRoundTrip(t *testing.T) {
	m := newTestManager(t, nil)

	settings := model.DefaultSettings()
	settings.Appearance.Theme = "dark"
	settings.Notifications.Push = true
	require.NoError(t, m.SaveSettings(settings))

	assert.Equal(t, settings, m.Settings())
}

func TestManagerSettingsCorruptFallsBackToDefaults(t *testing.T) {
	m := newTestManager(t, nil)
	require.NoError(t, m.store.Set(KeySettings, "}}"))
	assert.Equal(t, model.DefaultSettings(), m.Settings())
}

func TestManagerTokenClaimsRequiresLogin(t *testing.T) {
	m := newTestManager(t, nil)
	_, _, err := m.TokenClaims()
	assert.True(t, errors.IsAuth(err))
}

func TestManagerTokenClaimsUnparseableTokenIsNotAnError(t *testing.T) {
	m := newTestManager(t, nil)
	require.NoError(t, m.store.Set(KeyToken, "opaque-token"))

	iat, exp, err := m.TokenClaims()
	require.NoError(t, err)
	assert.Nil(t, iat)
	assert.Nil(t, exp)
}
