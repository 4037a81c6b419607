package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/logger"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

func testClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return New(Config{BaseURL: srv.URL}, &staticTokens{token: token}, nil, log)
}

func envelopeOK(t *testing.T, w http.ResponseWriter, data interface{}) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":` + string(raw) + `}`))
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		envelopeOK(t, w, []model.Prescription{})
	}, "tok-9")

	_, err := c.ListPrescriptions(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-9", gotAuth)
}

func TestClientOmitsAuthorizationWithoutSession(t *testing.T) {
	var gotAuth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		envelopeOK(t, w, model.LoginData{Token: "t", User: model.SessionUser{ID: 1}})
	}, "")

	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientUnwrapsEnvelopeAndSendsQuery(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/patients", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("size"))
		assert.Equal(t, "smith", r.URL.Query().Get("search"))

		envelopeOK(t, w, model.Page[model.Patient]{
			Content:       []model.Patient{{ID: 7, FirstName: "Bob", LastName: "Smith"}},
			TotalElements: 1,
			TotalPages:    1,
			Number:        2,
			Size:          10,
		})
	}, "tok")

	page, err := c.ListPatients(context.Background(), 2, 10, "smith")
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(7), page.Content[0].ID)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestClientPropagatesServerMessageOnLogicalFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"email already in use"}`))
	}, "tok")

	_, err := c.CreatePatient(context.Background(), &model.Patient{FirstName: "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already in use")
}

func TestClientSuccessFalseWithOKStatusIsStillAnError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"nope"}`))
	}, "tok")

	_, err := c.ListPrescriptions(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestClientUnauthorizedBecomesAuthError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"token expired"}`))
	}, "stale")

	_, err := c.GetPatient(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err))
}

func TestClientNotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"patient not found"}`))
	}, "tok")

	_, err := c.GetPatient(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestClientNonJSONErrorPageClassifiedByStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>502 Bad Gateway</html>"))
	}, "tok")

	_, err := c.ListPrescriptions(context.Background(), nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
	assert.Contains(t, err.Error(), "502")
}

func TestClientConnectionRefusedIsNetworkError(t *testing.T) {
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	c := New(Config{BaseURL: "http://127.0.0.1:1"}, &staticTokens{}, nil, log)

	_, err := c.ListPrescriptions(context.Background(), nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
}

func TestClientDownloadReturnsRawBytes(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prescriptions/12/download", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}, "tok")

	raw, err := c.DownloadPrescription(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, pdf, raw)
}

func TestClientDownloadUnauthorized(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "tok")

	_, err := c.DownloadPrescription(context.Background(), 12)
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err))
}

func TestClientLoginSendsCredentials(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dana@clinic.test", req.Email)
		assert.Equal(t, "secret123", req.Password)

		envelopeOK(t, w, model.LoginData{
			Token: "issued-token",
			User:  model.SessionUser{ID: 4, FullName: "Dana Vega", Role: model.RoleClinician},
		})
	}, "")

	data, err := c.Login(context.Background(), "dana@clinic.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", data.Token)
	assert.Equal(t, int64(4), data.User.ID)
}
