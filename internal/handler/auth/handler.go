package auth

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/session"
	"github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"
)

type Handler struct {
	session *session.Manager
	metrics *metrics.Metrics
}

func NewHandler(session *session.Manager, m *metrics.Metrics) *Handler {
	return &Handler{session: session, metrics: m}
}

// RegisterPublicRoutes wires the endpoints reachable without a session.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

// RegisterRoutes wires the endpoints behind the guard.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/logout", h.Logout)
	r.GET("/profile", h.Profile)
	r.GET("/settings", h.GetSettings)
	r.PUT("/settings", h.SaveSettings)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("email and password are required", err))
		return
	}

	data, err := h.session.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.Logins.Inc()
	}
	httputil.RespondWithSuccess(c, data)
}

func (h *Handler) Logout(c *gin.Context) {
	h.session.Logout()
	if h.metrics != nil {
		h.metrics.Logouts.Inc()
	}
	httputil.RespondWithMessage(c, "logged out", nil)
}

type profileResponse struct {
	User           *model.SessionUser `json:"user"`
	TokenIssuedAt  *time.Time         `json:"tokenIssuedAt,omitempty"`
	TokenExpiresAt *time.Time         `json:"tokenExpiresAt,omitempty"`
}

func (h *Handler) Profile(c *gin.Context) {
	user, err := h.session.CurrentUser()
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	// Claim parse failures are non-fatal; the profile simply omits the
	// token timestamps.
	issued, expires, _ := h.session.TokenClaims()
	httputil.RespondWithSuccess(c, profileResponse{
		User:           user,
		TokenIssuedAt:  issued,
		TokenExpiresAt: expires,
	})
}

func (h *Handler) GetSettings(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.session.Settings())
}

func (h *Handler) SaveSettings(c *gin.Context) {
	var settings model.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid settings payload", err))
		return
	}
	if err := h.session.SaveSettings(settings); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "settings saved", settings)
}
