package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubSession struct {
	loggedIn bool
}

func (s *stubSession) IsLoggedIn() bool {
	return s.loggedIn
}

func guardedRouter(session SessionChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Guard(session))
	r.GET("/dashboard", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestGuardAllowsWithToken(t *testing.T) {
	r := guardedRouter(&stubSession{loggedIn: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestGuardRejectsWithoutToken(t *testing.T) {
	r := guardedRouter(&stubSession{loggedIn: false})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/auth/login"`)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
