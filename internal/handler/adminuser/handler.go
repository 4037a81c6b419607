package adminuser

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/engine"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/notify"
	"github.com/jwalitptl/clinic-portal/internal/session"
	"github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
)

// Gateway is the slice of the API client user administration needs.
// The upstream API only supports listing and creating accounts.
type Gateway interface {
	ListUsers(ctx context.Context) ([]model.AdminUser, error)
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.AdminUser, error)
}

type Handler struct {
	gw      Gateway
	session *session.Manager
	queue   *notify.Queue
}

func NewHandler(gw Gateway, session *session.Manager, queue *notify.Queue) *Handler {
	return &Handler{gw: gw, session: session, queue: queue}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/admin/users", h.requireAdmin)
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

// requireAdmin restricts user administration to the ADMIN role.
func (h *Handler) requireAdmin(c *gin.Context) {
	user, err := h.session.CurrentUser()
	if err != nil {
		httputil.RespondWithError(c, err)
		c.Abort()
		return
	}
	if user.Role != model.RoleAdmin {
		httputil.RespondWithError(c, errors.NewForbidden("Only administrators can access this page."))
		c.Abort()
		return
	}
	c.Next()
}

type listViewModel struct {
	Users []model.AdminUser     `json:"users"`
	Stats engine.UserRoleCounts `json:"stats"`
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.gw.ListUsers(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	filtered := engine.FilterUsers(users, engine.UserFilter{
		Role:   c.DefaultQuery("role", engine.FilterAll),
		Search: c.Query("search"),
	})

	httputil.RespondWithSuccess(c, listViewModel{
		Users: filtered,
		Stats: engine.CountUserRoles(users),
	})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("name, email, password and role are required", err))
		return
	}

	user, err := h.gw.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.queue.PushError("Failed to create user")
		httputil.RespondWithError(c, err)
		return
	}

	h.queue.PushSuccess("User created successfully")
	httputil.RespondWithSuccess(c, user)
}

type stubbedUpdate struct {
	ID        int64 `json:"id"`
	Persisted bool  `json:"persisted"`
}

// UpdateUser acknowledges the edit without forwarding it: the upstream
// API has no update endpoint yet. The response carries persisted=false
// so callers can tell the change is local-only.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondWithError(c, errors.NewValidation("invalid id", err))
		return
	}

	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid user payload", err))
		return
	}

	h.queue.PushSuccess("User updated")
	httputil.RespondWithMessage(c, "update accepted but not persisted upstream", stubbedUpdate{ID: id})
}

// DeleteUser acknowledges the removal without forwarding it, for the
// same reason as UpdateUser.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondWithError(c, errors.NewValidation("invalid id", err))
		return
	}

	h.queue.PushSuccess("User removed")
	httputil.RespondWithMessage(c, "delete accepted but not persisted upstream", stubbedUpdate{ID: id})
}
