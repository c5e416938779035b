package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ssamu04/groceria/api/controllers"
	"github.com/ssamu04/groceria/api/middleware"
	"github.com/ssamu04/groceria/internal/catalog"
	"github.com/ssamu04/groceria/internal/groceries"
	"github.com/ssamu04/groceria/pkg/config"
	"github.com/ssamu04/groceria/pkg/logger"
	"github.com/ssamu04/groceria/pkg/metrics"
	"github.com/ssamu04/groceria/pkg/mongodb"
	"github.com/ssamu04/groceria/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	mongoP mongodb.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	groceryService groceries.Service,
	catalogService catalog.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, mongoP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	apiPolicy := middleware.NewRateLimitPolicy(cfg.RateLimit.Window, cfg.RateLimit.Limit)
	if !cfg.RateLimit.Enabled {
		apiPolicy = middleware.RateLimitPolicy{}
	}

	r.Route("/api/groceria", func(r chi.Router) {
		r.Use(middleware.RateLimit(apiPolicy, redisClient, logg))

		r.Route("/lists", func(r chi.Router) {
			r.Get("/", controllers.ListGroceryLists(groceryService, logg))
			r.Post("/", controllers.CreateGroceryList(groceryService, logg))
			r.Get("/search", controllers.SearchCatalog(catalogService, logg))

			r.Route("/{listId}", func(r chi.Router) {
				r.Get("/", controllers.GetGroceryList(groceryService, logg))
				r.Put("/", controllers.UpdateGroceryList(groceryService, logg))
				r.Delete("/", controllers.DeleteGroceryList(groceryService, logg))

				r.Route("/products", func(r chi.Router) {
					r.Get("/", controllers.ListProducts(groceryService, logg))
					r.Post("/", controllers.AddProduct(groceryService, logg))
					r.Put("/{productId}", controllers.UpdateProduct(groceryService, logg))
					r.Delete("/{productId}", controllers.RemoveProduct(groceryService, logg))
				})
			})
		})
	})

	return r
}
