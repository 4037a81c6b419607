package visit

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/engine"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/notify"
	"github.com/jwalitptl/clinic-portal/internal/session"
	"github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
)

// Gateway is the slice of the API client the visit screens need.
type Gateway interface {
	ListVisits(ctx context.Context) ([]model.Visit, error)
	CreateVisit(ctx context.Context, payload *model.CreateVisitPayload) (*model.Visit, error)
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
	visits := r.Group("/visits")
	{
		visits.GET("", h.ListVisits)
		visits.POST("", h.CreateVisit)
	}
}

type listViewModel struct {
	Visits []model.Visit     `json:"visits"`
	Stats  engine.VisitStats `json:"stats"`
}

// ListVisits fetches all visits and applies the requested filter and
// sort locally. Stats always reflect the unfiltered list, matching the
// headline tiles on the screen.
func (h *Handler) ListVisits(c *gin.Context) {
	visits, err := h.gw.ListVisits(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	now := time.Now()
	filtered := engine.FilterVisits(visits, engine.VisitFilter{
		Status:    c.DefaultQuery("status", engine.FilterAll),
		DateRange: c.DefaultQuery("range", engine.RangeAll),
		Search:    c.Query("search"),
	}, now)

	httputil.RespondWithSuccess(c, listViewModel{
		Visits: filtered,
		Stats:  engine.ComputeVisitStats(visits, now),
	})
}

// CreateVisit schedules a visit for the current user acting as the
// clinician.
func (h *Handler) CreateVisit(c *gin.Context) {
	var req model.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("patient and schedule time are required", err))
		return
	}

	user, err := h.session.CurrentUser()
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	visit, err := h.gw.CreateVisit(c.Request.Context(), &model.CreateVisitPayload{
		PatientID:   req.PatientID,
		ClinicianID: user.ID,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		h.queue.PushError("Failed to create visit")
		httputil.RespondWithError(c, err)
		return
	}

	h.queue.PushSuccess("Visit scheduled successfully!")
	httputil.RespondWithSuccess(c, visit)
}
