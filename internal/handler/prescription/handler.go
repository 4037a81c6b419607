package prescription

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/engine"
	"github.com/jwalitptl/clinic-portal/internal/export"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/notify"
	"github.com/jwalitptl/clinic-portal/internal/session"
	"github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
)

// Gateway is the slice of the API client the prescription screens need.
type Gateway interface {
	ListPrescriptions(ctx context.Context, from, to *time.Time) ([]model.Prescription, error)
	ListPrescriptionsForPatient(ctx context.Context, patientID int64) ([]model.Prescription, error)
	CreatePrescription(ctx context.Context, payload *model.CreatePrescriptionPayload) (*model.Prescription, error)
	DownloadPrescription(ctx context.Context, id int64) ([]byte, error)
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
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.GET("", h.ListPrescriptions)
		prescriptions.GET("/patient/:id", h.ListForPatient)
		prescriptions.POST("", h.CreatePrescription)
		prescriptions.GET("/export", h.ExportCSV)
		prescriptions.GET("/:id/download", h.DownloadPDF)
	}
}

type listViewModel struct {
	Prescriptions []model.Prescription     `json:"prescriptions"`
	Stats         engine.PrescriptionStats `json:"stats"`
}

// ListPrescriptions fetches prescriptions in the requested date range
// and applies search and sort locally. Stats reflect the fetched range,
// not the local filter, matching the headline tiles.
func (h *Handler) ListPrescriptions(c *gin.Context) {
	prescriptions, err := h.fetch(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	filtered := engine.FilterPrescriptions(prescriptions, filterFromQuery(c))
	httputil.RespondWithSuccess(c, listViewModel{
		Prescriptions: filtered,
		Stats:         engine.ComputePrescriptionStats(prescriptions, time.Now()),
	})
}

func (h *Handler) ListForPatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondWithError(c, errors.NewValidation("invalid patient id", err))
		return
	}

	prescriptions, err := h.gw.ListPrescriptionsForPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, prescriptions)
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("patient, medication and dosage are required", err))
		return
	}

	user, err := h.session.CurrentUser()
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	prescription, err := h.gw.CreatePrescription(c.Request.Context(), &model.CreatePrescriptionPayload{
		PatientID:    req.PatientID,
		ClinicianID:  user.ID,
		Medication:   req.Medication,
		Dosage:       req.Dosage,
		Instructions: req.Instructions,
	})
	if err != nil {
		h.queue.PushError("Failed to create prescription")
		httputil.RespondWithError(c, err)
		return
	}

	h.queue.PushSuccess("Prescription created successfully")
	httputil.RespondWithSuccess(c, prescription)
}

// ExportCSV streams the currently filtered list as a CSV download.
func (h *Handler) ExportCSV(c *gin.Context) {
	prescriptions, err := h.fetch(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	filtered := engine.FilterPrescriptions(prescriptions, filterFromQuery(c))

	var buf bytes.Buffer
	if err := export.PrescriptionsCSV(&buf, filtered); err != nil {
		httputil.RespondWithError(c, errors.NewInternal(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CSVFilename(time.Now())))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// DownloadPDF passes the upstream binary through as a file download.
func (h *Handler) DownloadPDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondWithError(c, errors.NewValidation("invalid id", err))
		return
	}

	raw, err := h.gw.DownloadPrescription(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.PDFFilename(id)))
	c.Data(http.StatusOK, "application/pdf", raw)
}

func (h *Handler) fetch(c *gin.Context) ([]model.Prescription, error) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		return nil, err
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return nil, err
	}
	return h.gw.ListPrescriptions(c.Request.Context(), from, to)
}

func filterFromQuery(c *gin.Context) engine.PrescriptionFilter {
	return engine.PrescriptionFilter{
		Search: c.Query("search"),
		SortBy: c.DefaultQuery("sort", engine.SortByIssuedAt),
		Order:  model.SortDirection(c.DefaultQuery("dir", string(model.SortDesc))),
	}
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, errors.NewValidation("dates must use YYYY-MM-DD", err)
	}
	return &t, nil
}
