package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FItraRizky/fro/internal/catalog"
	"github.com/FItraRizky/fro/internal/checkout"
	"github.com/FItraRizky/fro/internal/store"
	"github.com/FItraRizky/fro/pkg/health"
	"github.com/FItraRizky/fro/pkg/middleware"
)

const serviceName = "fro"

// catalogMaxAge is how long browsers may cache catalog reads.
const catalogMaxAge = time.Minute

// requestTimeout bounds a request. Checkout submission waits for the
// simulated payment, so it must exceed the submit delay.
const requestTimeout = 30 * time.Second

// Deps are the services the router exposes.
type Deps struct {
	Catalog     *catalog.Engine
	Sessions    *store.Registry
	Checkout    *checkout.Service
	Health      *health.Handler
	Logger      *slog.Logger
	CORSOrigins []string
	PprofCIDRs  []string
	// RateLimit throttles session routes per shopper; zero RPS disables it.
	RateLimit   middleware.RateLimitConfig
}

// NewRouter creates a chi router with every storefront route registered.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(d.CORSOrigins...)))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(middleware.RequestLogging(d.Logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))

	r.Get("/health/live", d.Health.LivenessHandler())
	r.Get("/health/ready", d.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	if len(d.PprofCIDRs) > 0 {
		middleware.RegisterPprof(r, d.PprofCIDRs, d.Logger)
	}

	catalogHandler := NewCatalogHandler(d.Catalog, d.Checkout.Pricer(), d.Logger)
	sessionHandler := NewSessionHandler(d.Catalog, d.Logger)
	checkoutHandler := NewCheckoutHandler(d.Checkout, d.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogMaxAge))
			r.Use(middleware.RequestLogger(d.Logger))

			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/featured", catalogHandler.Featured)
			r.Get("/products/new", catalogHandler.NewArrivals)
			r.Get("/products/bestsellers", catalogHandler.Bestsellers)
			r.Get("/products/{id}", catalogHandler.GetProduct)
			r.Get("/products/{id}/reviews", catalogHandler.Reviews)
			r.Get("/categories", catalogHandler.Categories)
			r.Get("/shipping-methods", catalogHandler.ShippingMethods)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(middleware.Session(store.ValidSessionID))
			r.Use(middleware.RateLimit(d.RateLimit, d.Logger))
			r.Use(middleware.RequestLogger(d.Logger))
			r.Use(LoadSession(d.Sessions, d.Logger))

			r.Get("/state", sessionHandler.GetState)

			r.Post("/cart/items", sessionHandler.AddCartItem)
			r.Put("/cart/items/{lineId}", sessionHandler.UpdateCartItem)
			r.Delete("/cart/items/{lineId}", sessionHandler.RemoveCartItem)
			r.Delete("/cart", sessionHandler.ClearCart)

			r.Post("/wishlist", sessionHandler.AddWishlistItem)
			r.Delete("/wishlist/{productId}", sessionHandler.RemoveWishlistItem)

			r.Put("/user", sessionHandler.SetUser)
			r.Delete("/user", sessionHandler.ClearUser)

			r.Get("/notifications", sessionHandler.Notifications)
			r.Delete("/notifications/{id}", sessionHandler.DismissNotification)

			r.Post("/checkout/quote", checkoutHandler.Quote)
			r.Post("/checkout/validate", checkoutHandler.ValidateStep)
			r.Post("/checkout", checkoutHandler.Submit)
			r.Post("/newsletter", checkoutHandler.Subscribe)
		})
	})

	return r
}
