package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/pkg/errors"
)

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return w
}

func TestRespondWithSuccess(t *testing.T) {
	w := record(func(c *gin.Context) {
		RespondWithSuccess(c, gin.H{"id": 1})
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestRespondWithErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"auth", errors.NewAuth("session expired", nil), http.StatusUnauthorized},
		{"network", errors.NewNetwork("upstream down", nil), http.StatusBadGateway},
		{"validation", errors.NewValidation("bad input", nil), http.StatusBadRequest},
		{"not found", errors.NewNotFound("patient not found", nil), http.StatusNotFound},
		{"forbidden", errors.NewForbidden(""), http.StatusForbidden},
		{"plain error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := record(func(c *gin.Context) {
				RespondWithError(c, tt.err)
			})
			assert.Equal(t, tt.code, w.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestRespondWithErrorCarriesFieldErrors(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
	}
	vErr := validator.New().Struct(payload{Email: "not-an-email"})
	require.Error(t, vErr)

	w := record(func(c *gin.Context) {
		RespondWithError(c, errors.NewValidation("invalid payload", vErr))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email format")
	assert.Contains(t, w.Body.String(), `"field":"Email"`)
}
