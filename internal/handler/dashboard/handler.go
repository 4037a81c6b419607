package dashboard

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/jwalitptl/clinic-portal/internal/engine"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
)

// Gateway is the slice of the API client the dashboard needs.
type Gateway interface {
	ListPatients(ctx context.Context, page, size int, search string) (*model.Page[model.Patient], error)
	ListVisits(ctx context.Context) ([]model.Visit, error)
	ListPrescriptions(ctx context.Context, from, to *time.Time) ([]model.Prescription, error)
}

type Handler struct {
	gw Gateway
}

func NewHandler(gw Gateway) *Handler {
	return &Handler{gw: gw}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.GetDashboard)
}

// StatCard is one headline tile at the top of the dashboard.
type StatCard struct {
	Title    string `json:"title"`
	Value    int    `json:"value"`
	Subtitle string `json:"subtitle"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
}

type viewModel struct {
	Greeting          string                   `json:"greeting"`
	GeneratedAt       time.Time                `json:"generatedAt"`
	StatCards         []StatCard               `json:"statCards"`
	VisitStatusCounts engine.VisitStatusCounts `json:"visitStatusCounts"`
	DonutSegments     []engine.DonutSegment    `json:"donutSegments"`
	Trend             []engine.TrendBucket     `json:"trend"`
	TrendGeometry     engine.TrendGeometry     `json:"trendGeometry"`
	RecentVisits      []model.Visit            `json:"recentVisits"`
	RecentRx          []model.Prescription     `json:"recentPrescriptions"`
	TopPatients       []engine.TopPatient      `json:"topPatients"`
	PrescriptionStats engine.PrescriptionStats `json:"prescriptionStats"`
}

// GetDashboard joins the three upstream list fetches and renders the
// derived view-model. The join is all-or-nothing: if any fetch fails,
// the dashboard fails as a whole rather than rendering partial numbers.
func (h *Handler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		patients      *model.Page[model.Patient]
		visits        []model.Visit
		prescriptions []model.Prescription
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		patients, err = h.gw.ListPatients(gctx, 0, 100, "")
		return err
	})
	g.Go(func() error {
		var err error
		visits, err = h.gw.ListVisits(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		prescriptions, err = h.gw.ListPrescriptions(gctx, nil, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	now := time.Now()
	visitStats := engine.ComputeVisitStats(visits, now)
	rxStats := engine.ComputePrescriptionStats(prescriptions, now)
	counts := engine.CountVisitStatuses(visits)
	trend := engine.PrescriptionTrend(prescriptions, now)

	vm := viewModel{
		Greeting:    engine.Greeting(now.Hour()),
		GeneratedAt: now,
		StatCards: []StatCard{
			{
				Title:    "Total Patients",
				Value:    int(patients.TotalElements),
				Subtitle: "Registered patients",
				Icon:     "users",
				Color:    "indigo",
			},
			{
				Title:    "Today's Visits",
				Value:    visitStats.Today,
				Subtitle: "Scheduled appointments",
				Icon:     "calendar",
				Color:    "emerald",
			},
			{
				Title:    "Prescriptions (24h)",
				Value:    rxStats.Last24h,
				Subtitle: "New prescriptions issued",
				Icon:     "prescription",
				Color:    "amber",
			},
			{
				Title:    "Active Clinicians",
				Value:    engine.UniqueClinicians(visits),
				Subtitle: "Medical staff",
				Icon:     "doctor",
				Color:    "sky",
			},
		},
		VisitStatusCounts: counts,
		DonutSegments:     engine.DonutSegments(counts),
		Trend:             trend,
		TrendGeometry:     engine.ComputeTrendGeometry(trend),
		RecentVisits:      engine.RecentVisits(visits, 5),
		RecentRx:          engine.RecentPrescriptions(prescriptions, 5),
		TopPatients:       engine.TopPatients(prescriptions, 5),
		PrescriptionStats: rxStats,
	}

	httputil.RespondWithSuccess(c, vm)
}
