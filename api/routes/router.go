package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shasthoai/store-backend/api/controllers"
	"github.com/shasthoai/store-backend/api/middleware"
	"github.com/shasthoai/store-backend/pkg/config"
	"github.com/shasthoai/store-backend/pkg/kv"
	"github.com/shasthoai/store-backend/pkg/logger"
	"github.com/shasthoai/store-backend/pkg/metrics"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Sessions    controllers.SessionProvider
	Pingers     map[string]kv.Pinger
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.Categories())

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Get("/store", controllers.StoreSnapshot(deps.Sessions, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ProductsList(deps.Sessions, logg))
				r.Patch("/filters", controllers.ProductsFilters(deps.Sessions, logg))
				r.Get("/{productId}", controllers.ProductDetail(deps.Sessions, logg))
				r.Get("/{productId}/related", controllers.ProductRelated(deps.Sessions, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(deps.Sessions, logg))
				r.Get("/summary", controllers.CartSummary(deps.Sessions, logg))
				r.Post("/items", controllers.CartAddItem(deps.Sessions, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Sessions, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Sessions, logg))
			})
		})
	})

	return r
}
