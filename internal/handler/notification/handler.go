package notification

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/notify"
	"github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
)

// Handler exposes the transient message queue to the presentation
// layer: the toast strip polls the snapshot and dismisses by position.
type Handler struct {
	queue *notify.Queue
}

func NewHandler(queue *notify.Queue) *Handler {
	return &Handler{queue: queue}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/notifications", h.List)
	r.DELETE("/notifications/:index", h.Dismiss)
}

func (h *Handler) List(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.queue.Messages())
}

func (h *Handler) Dismiss(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid index", err))
		return
	}

	// Dismissing an entry that already expired is a no-op.
	h.queue.Dismiss(index)
	httputil.RespondWithMessage(c, "dismissed", nil)
}
