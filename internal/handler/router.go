package handler

import (
	"log/slog"
	"net/http"

	"github.com/deanb221/caravan/internal/handler/api"
	"github.com/deanb221/caravan/internal/handler/middleware"
	"github.com/deanb221/caravan/internal/infra/metrics"
	"github.com/deanb221/caravan/internal/infra/tracing"
	"github.com/deanb221/caravan/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine              *gin.Engine
	Config              config.Config
	Logger              *slog.Logger
	Metrics             *metrics.Metrics
	Gatherer            prometheus.Gatherer
	CaravanHandler      *api.CaravanHandler
	AvailabilityHandler *api.AvailabilityHandler
	BookingHandler      *api.BookingHandler
}

func NewRouter(p RouterParams) {
	setupMiddleware(p.Engine, p.Config, p.Logger, p.Metrics)
	setupRoutes(p.Engine, p.Gatherer, p.CaravanHandler, p.AvailabilityHandler, p.BookingHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	// Tracing precedes logging so request logs carry the trace id
	engine.Use(tracing.Middleware())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(m.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	gatherer prometheus.Gatherer,
	caravanHandler *api.CaravanHandler,
	availabilityHandler *api.AvailabilityHandler,
	bookingHandler *api.BookingHandler,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		caravans := apiGroup.Group("/caravans")
		addRoutes(caravans, []route{
			{Method: http.MethodGet, Path: "", Handler: caravanHandler.List},
			{Method: http.MethodGet, Path: "/:slug", Handler: caravanHandler.Get},
			{Method: http.MethodGet, Path: "/:slug/calendar", Handler: availabilityHandler.Calendar},
			{Method: http.MethodGet, Path: "/:slug/checkouts", Handler: availabilityHandler.CheckOuts},
			{Method: http.MethodPost, Path: "/:slug/quote", Handler: availabilityHandler.Quote},
		})

		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: bookingHandler.Submit},
			{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
			{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
			{Method: http.MethodPost, Path: "/:id/confirm", Handler: bookingHandler.Confirm},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.Cancel},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
