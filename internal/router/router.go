package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-portal/internal/handler"
	"github.com/jwalitptl/clinic-portal/internal/middleware"
)

// Handler registers a resource's routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// PublicHandler additionally registers routes reachable without a
// session.
type PublicHandler interface {
	Handler
	RegisterPublicRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit rate.Limit
	RateBurst int
	CORS      middleware.CORSConfig
}

type Router struct {
	engine *gin.Engine
}

// New assembles the portal's HTTP surface: ambient middleware, the
// public entry points and the guarded section behind the session check.
func New(cfg Config, guard middleware.SessionChecker, base *handler.Handler, authH PublicHandler, guarded ...Handler) *Router {
	gin.SetMode(gin.ReleaseMode)
	middleware.RegisterValidationTagNames()
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger())
	engine.Use(middleware.CORS(cfg.CORS))
	engine.Use(middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  cfg.RateLimit,
		Burst: cfg.RateBurst,
	}).RateLimit())

	engine.GET("/health", base.LivenessCheck)
	engine.GET("/metrics", base.MetricsHandler)

	public := engine.Group("")
	authH.RegisterPublicRoutes(public)

	protected := engine.Group("", middleware.Guard(guard))
	authH.RegisterRoutes(protected)
	for _, h := range guarded {
		h.RegisterRoutes(protected)
	}

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
