package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/customercore-backend/api/controllers"
	"github.com/angelmondragon/customercore-backend/api/middleware"
	customer "github.com/angelmondragon/customercore-backend/internal/customers"
	product "github.com/angelmondragon/customercore-backend/internal/products"
	"github.com/angelmondragon/customercore-backend/pkg/config"
	"github.com/angelmondragon/customercore-backend/pkg/db"
	"github.com/angelmondragon/customercore-backend/pkg/logger"
	"github.com/angelmondragon/customercore-backend/pkg/metrics"
	"github.com/angelmondragon/customercore-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	customerService customer.Service,
	productService product.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
	)

	// A nil *redis.Client must stay a nil interface for the middleware and
	// readiness checks.
	var idempotencyStore redis.IdempotencyStore
	readiness := map[string]controllers.Pinger{"database": dbP}
	if redisClient != nil {
		idempotencyStore = redisClient
		readiness["redis"] = redisClient
	}
	idempotent := middleware.Idempotency(idempotencyStore, cfg.HTTP.IdempotencyTTL, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(customerService, logg))
			r.With(idempotent).Post("/", controllers.CreateCustomer(customerService, logg))
			r.Get("/{customerId}", controllers.GetCustomer(customerService, logg))
			r.Put("/{customerId}", controllers.UpdateCustomer(customerService, logg))
			r.Delete("/{customerId}", controllers.DeleteCustomer(customerService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.With(idempotent).Post("/", controllers.CreateProduct(productService, logg))
			r.Get("/{productId}", controllers.GetProduct(productService, logg))
			r.Put("/{productId}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(productService, logg))
		})
	})

	return r
}
