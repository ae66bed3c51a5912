package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bakecake/bakecake-backend/api/controllers"
	"github.com/bakecake/bakecake-backend/api/middleware"
	"github.com/bakecake/bakecake-backend/internal/cakes"
	"github.com/bakecake/bakecake-backend/internal/catalog"
	"github.com/bakecake/bakecake-backend/internal/orders"
	"github.com/bakecake/bakecake-backend/internal/statistics"
	"github.com/bakecake/bakecake-backend/internal/users"
	"github.com/bakecake/bakecake-backend/pkg/config"
	"github.com/bakecake/bakecake-backend/pkg/logger"
)

// RouterParams collects everything the HTTP surface depends on.
type RouterParams struct {
	Config     *config.Config
	Logger     *logger.Logger
	DB         controllers.Pinger
	Cache      controllers.Pinger
	Users      users.Service
	Catalog    catalog.Service
	Cakes      cakes.Service
	Orders     orders.Service
	Statistics statistics.Service
	Metrics    prometheus.Gatherer
}

// NewRouter assembles the chi router with the standard middleware chain.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(params.Logger),
		middleware.RequestID(params.Logger),
		middleware.Logging(params.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(params.Config))
		r.Get("/ready", controllers.HealthReady(params.Config, params.Logger, params.DB, params.Cache))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", controllers.CreateUser(params.Users, params.Logger))
			r.Get("/{id}", controllers.GetUser(params.Users, params.Logger))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.ListCatalog(params.Catalog, params.Logger))
			r.Get("/{kind}", controllers.ListCatalogKind(params.Catalog, params.Logger))
		})

		r.Route("/cakes", func(r chi.Router) {
			r.Post("/", controllers.CreateCake(params.Cakes, params.Logger))
			r.Get("/{id}", controllers.GetCake(params.Cakes, params.Logger))
			r.Put("/{id}/options", controllers.ReplaceCakeOptions(params.Cakes, params.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(params.Orders, params.Logger))
			r.Get("/", controllers.ListOrders(params.Orders, params.Logger))
			r.Get("/{id}", controllers.GetOrder(params.Orders, params.Logger))
		})

		r.Route("/statistics", func(r chi.Router) {
			r.Get("/", controllers.GetStatistics(params.Statistics, params.Logger))
			r.Post("/refresh", controllers.RefreshStatistics(params.Statistics, params.Logger))
		})
	})

	return r
}
