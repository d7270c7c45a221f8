package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/cartview/api/controllers"
	cartcontrollers "github.com/angelmondragon/cartview/api/controllers/cart"
	"github.com/angelmondragon/cartview/api/middleware"
	"github.com/angelmondragon/cartview/pkg/config"
	"github.com/angelmondragon/cartview/pkg/logger"
	"github.com/angelmondragon/cartview/pkg/metrics"
	pkgredis "github.com/angelmondragon/cartview/pkg/redis"
)

// Deps carries everything the router wires into handlers. Optional fields may be nil.
type Deps struct {
	View        cartcontrollers.View
	Idempotency pkgredis.IdempotencyStore
	Pingers     map[string]controllers.Pinger
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg, deps.Pingers))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.App.CORSOrigins))
		r.Use(middleware.Idempotency(deps.Idempotency, cfg.Eventing.IdempotencyTTL, logg))

		r.Get("/", cartcontrollers.CartFetch(deps.View, logg))
		r.Post("/items", cartcontrollers.CartAddItem(deps.View, logg))
		r.Post("/items/{name}/increment", cartcontrollers.CartIncrement(deps.View, logg))
		r.Post("/items/{name}/decrement", cartcontrollers.CartDecrement(deps.View, logg))
		r.Delete("/items/{name}", cartcontrollers.CartRemove(deps.View, logg))
		r.Post("/continue-shopping", cartcontrollers.CartContinueShopping(deps.View, logg))
		r.Post("/checkout", cartcontrollers.CartCheckout(deps.View, logg))
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartcontrollers.CartPage(deps.View, logg))
		r.Post("/items/{name}/{action}", cartcontrollers.CartPageAction(deps.View, logg))
		r.Post("/continue", cartcontrollers.CartPageContinue(deps.View, logg))
		r.Post("/checkout", cartcontrollers.CartPageCheckout(deps.View, logg))
	})

	return r
}
