package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ovenlane/bakeops-backend/api/controllers"
	"github.com/ovenlane/bakeops-backend/api/middleware"
	"github.com/ovenlane/bakeops-backend/internal/auth"
	"github.com/ovenlane/bakeops-backend/internal/scheduling"
	"github.com/ovenlane/bakeops-backend/pkg/config"
	"github.com/ovenlane/bakeops-backend/pkg/db"
	"github.com/ovenlane/bakeops-backend/pkg/logger"
	"github.com/ovenlane/bakeops-backend/pkg/metrics"
	"github.com/ovenlane/bakeops-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	metricsRegistry *prometheus.Registry,
	authService auth.Service,
	schedulingService scheduling.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if metricsRegistry != nil {
		httpMetrics := metrics.NewHTTPMetrics(metricsRegistry)
		r.Use(httpMetrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Use(middleware.Idempotency(redisClient, logg))
		r.Get("/ping", controllers.AdminPing())

		r.Route("/v1/scheduling", func(r chi.Router) {
			r.Route("/drafts", func(r chi.Router) {
				r.Get("/", controllers.SchedulingDrafts(schedulingService, logg))
				r.Get("/{draftId}", controllers.SchedulingDraftDetail(schedulingService, logg))
				r.Post("/{draftId}/approve", controllers.SchedulingApproveDraft(schedulingService, logg))
				r.Post("/{draftId}/reject", controllers.SchedulingRejectDraft(schedulingService, logg))
			})
			r.Post("/orders/{orderId}/schedule", controllers.SchedulingScheduleOrder(schedulingService, logg))
			r.Get("/stats", controllers.SchedulingStats(schedulingService, logg))
		})
	})

	return r
}
