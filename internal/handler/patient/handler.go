package patient

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/clinic-portal/internal/engine"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/notify"
	"github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
)

const (
	defaultPageSize  = 10
	maxPageSize      = 100
	optionsCacheKey  = "patient_options"
	optionsCacheTTL  = 30 * time.Second
	optionsFetchSize = 100
)

// Gateway is the slice of the API client the patient screens need.
type Gateway interface {
	ListPatients(ctx context.Context, page, size int, search string) (*model.Page[model.Patient], error)
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	CreatePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id int64, patient *model.Patient) (*model.Patient, error)
	DeletePatient(ctx context.Context, id int64) error
}

type Handler struct {
	gw    Gateway
	queue *notify.Queue
	cache *gocache.Cache
}

func NewHandler(gw Gateway, queue *notify.Queue) *Handler {
	return &Handler{
		gw:    gw,
		queue: queue,
		cache: gocache.New(optionsCacheTTL, time.Minute),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.GET("/options", h.ListOptions)
		patients.GET("/:id", h.GetPatient)
		patients.POST("", h.CreatePatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
	}
}

type listViewModel struct {
	Page       *model.Page[model.Patient] `json:"page"`
	PageWindow []int                      `json:"pageWindow"`
}

func (h *Handler) ListPatients(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if page < 0 {
		httputil.RespondWithError(c, errors.NewValidation("page must not be negative", nil))
		return
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}

	result, err := h.gw.ListPatients(c.Request.Context(), page, size, c.Query("search"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	// A page beyond the last one is a navigation error, not an empty
	// result: reject it so the caller keeps its current page.
	if result.TotalElements > 0 && !engine.CanGoTo(page, result.TotalPages) {
		httputil.RespondWithError(c, errors.NewValidation("page index out of range", nil))
		return
	}

	if field := c.Query("sort"); field != "" {
		result.Content = engine.SortPatients(result.Content, field, model.SortDirection(c.DefaultQuery("dir", "asc")))
	}

	httputil.RespondWithSuccess(c, listViewModel{
		Page:       result,
		PageWindow: engine.PageWindow(result.Number, result.TotalPages),
	})
}

type patientOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListOptions serves the patient dropdown used by the visit and
// prescription forms, cached briefly so opening a form does not refetch
// the whole list every time.
func (h *Handler) ListOptions(c *gin.Context) {
	if cached, ok := h.cache.Get(optionsCacheKey); ok {
		httputil.RespondWithSuccess(c, cached)
		return
	}

	result, err := h.gw.ListPatients(c.Request.Context(), 0, optionsFetchSize, "")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	options := make([]patientOption, 0, len(result.Content))
	for _, p := range result.Content {
		options = append(options, patientOption{ID: p.ID, Name: p.FullName()})
	}

	h.cache.SetDefault(optionsCacheKey, options)
	httputil.RespondWithSuccess(c, options)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	patient, err := h.gw.GetPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patient)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid patient payload", err))
		return
	}

	created, err := h.gw.CreatePatient(c.Request.Context(), &model.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
	})
	if err != nil {
		h.queue.PushError("Failed to create patient")
		httputil.RespondWithError(c, err)
		return
	}

	h.cache.Delete(optionsCacheKey)
	h.queue.PushSuccess("Patient created successfully")
	httputil.RespondWithSuccess(c, created)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid patient payload", err))
		return
	}

	updated, err := h.gw.UpdatePatient(c.Request.Context(), id, &model.Patient{
		ID:          id,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
	})
	if err != nil {
		h.queue.PushError("Failed to update patient")
		httputil.RespondWithError(c, err)
		return
	}

	h.cache.Delete(optionsCacheKey)
	h.queue.PushSuccess("Patient updated successfully")
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.gw.DeletePatient(c.Request.Context(), id); err != nil {
		h.queue.PushError("Failed to delete patient")
		httputil.RespondWithError(c, err)
		return
	}

	h.cache.Delete(optionsCacheKey)
	h.queue.PushSuccess("Patient deleted")
	httputil.RespondWithMessage(c, "patient deleted", nil)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidation("invalid id", err)
	}
	return id, nil
}
