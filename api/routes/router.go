package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/leadflow-backend/api/controllers"
	"github.com/angelmondragon/leadflow-backend/api/middleware"
	"github.com/angelmondragon/leadflow-backend/internal/analytics"
	"github.com/angelmondragon/leadflow-backend/internal/auth"
	"github.com/angelmondragon/leadflow-backend/internal/export"
	"github.com/angelmondragon/leadflow-backend/internal/leads"
	"github.com/angelmondragon/leadflow-backend/internal/records"
	"github.com/angelmondragon/leadflow-backend/internal/users"
	"github.com/angelmondragon/leadflow-backend/internal/webhook"
	"github.com/angelmondragon/leadflow-backend/pkg/config"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	"github.com/angelmondragon/leadflow-backend/pkg/logger"
	"github.com/angelmondragon/leadflow-backend/pkg/metrics"
)

// Deps carries everything the router mounts. Limiter and RedisPinger are
// nil when Redis is not configured.
type Deps struct {
	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger
	Limiter     middleware.RateLimiter
	UserLoader  middleware.UserLoader
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	Auth      auth.Service
	Users     users.Service
	Leads     leads.Service
	Webhook   webhook.Service
	Records   *records.Registry
	Analytics analytics.Service
	Export    export.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	adminOnly := middleware.RequireRole(enums.UserRoleAdmin, logg)
	staff := middleware.RequireAnyRole(logg, enums.UserRoleAdmin, enums.UserRoleAgent)
	authenticated := middleware.Auth(cfg.JWT, deps.UserLoader, logg)

	r.Get("/health", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	webhookHandler := controllers.LeadWebhook(deps.Webhook, logg)
	r.Post("/integrations/webhook", webhookHandler)
	r.Post("/doubletick/webhook", webhookHandler)

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(middleware.BootstrapRateLimitPolicy(cfg.AuthRateLimit), deps.Limiter, logg)).
			Post("/bootstrap", controllers.AuthBootstrap(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(middleware.LoginRateLimitPolicy(cfg.AuthRateLimit), deps.Limiter, logg)).
			Post("/login", controllers.AuthLogin(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/me", controllers.AuthMe(deps.Auth, logg))
			r.With(adminOnly).Post("/register", controllers.AuthRegister(deps.Auth, logg))
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticated)

		r.Route("/users", func(r chi.Router) {
			r.With(adminOnly).Get("/", controllers.UsersList(deps.Users, logg))
			r.With(staff).Get("/agents", controllers.UsersAgents(deps.Users, logg))
			r.With(adminOnly).Patch("/{id}", controllers.UsersPatch(deps.Users, logg))
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/my", controllers.LeadsMine(deps.Leads, logg))
			r.With(adminOnly).Get("/", controllers.LeadsAll(deps.Leads, logg))
			r.With(adminOnly).Post("/", controllers.LeadCreate(deps.Leads, logg))
			r.Get("/{id}", controllers.LeadGet(deps.Leads, logg))
			r.With(adminOnly).Put("/{id}/assign", controllers.LeadAssign(deps.Leads, logg))
			r.Post("/{id}/activity", controllers.LeadActivity(deps.Leads, logg))
			r.Get("/{id}/history", controllers.LeadHistory(deps.Leads, logg))
		})

		r.With(adminOnly).Get("/analytics/overview", controllers.AnalyticsOverview(deps.Analytics, logg))

		r.Route("/export", func(r chi.Router) {
			r.Get("/my-leads", controllers.ExportMyLeads(deps.Export, logg))
			r.With(adminOnly).Get("/agent/{id}", controllers.ExportAgentLeads(deps.Export, logg))
			r.With(adminOnly).Get("/all", controllers.ExportAllLeads(deps.Export, logg))
		})

		if reg := deps.Records; reg != nil {
			mountRecords(r, "/customers", reg.Customers, logg)
			mountRecords(r, "/products", reg.Products, logg)
			mountRecords(r, "/staff", reg.Staff, logg)
			mountRecords(r, "/orders", reg.Orders, logg)
			mountRecords(r, "/order-items", reg.OrderItems, logg)
			mountRecords(r, "/payments", reg.Payments, logg)
			mountRecords(r, "/complaints", reg.Complaints, logg)
			mountRecords(r, "/customer-feedback", reg.CustomerFeedback, logg)
			mountRecords(r, "/delivery-followups", reg.DeliveryFollowups, logg)
			mountRecords(r, "/em-series", reg.EmSeries, logg)
			mountRecords(r, "/vendors", reg.Vendors, logg, func(r chi.Router) {
				r.With(adminOnly).Post("/{id}/products", controllers.VendorProductCreate(reg.Vendors, logg))
				r.With(adminOnly).Patch("/products/{productId}", controllers.VendorProductPatch(reg.Vendors, logg))
			})
		}
	})

	return r
}

// mountRecords registers the uniform list/get/create/patch routes for a
// reference-data resource. Reads are open to every role; writes need ADMIN.
func mountRecords(r chi.Router, path string, res records.Resource, logg *logger.Logger, extra ...func(chi.Router)) {
	adminOnly := middleware.RequireRole(enums.UserRoleAdmin, logg)
	staff := middleware.RequireAnyRole(logg, enums.UserRoleAdmin, enums.UserRoleAgent)

	r.Route(path, func(r chi.Router) {
		r.With(staff).Get("/", controllers.RecordList(res, logg))
		r.With(staff).Get("/{id}", controllers.RecordGet(res, logg))
		r.With(adminOnly).Post("/", controllers.RecordCreate(res, logg))
		r.With(adminOnly).Patch("/{id}", controllers.RecordPatch(res, logg))
		for _, fn := range extra {
			fn(r)
		}
	})
}
