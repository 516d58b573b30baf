package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/palengkeph/palengke-backend/api/controllers"
	"github.com/palengkeph/palengke-backend/api/middleware"
	"github.com/palengkeph/palengke-backend/internal/address"
	cartsvc "github.com/palengkeph/palengke-backend/internal/cart"
	checkoutsvc "github.com/palengkeph/palengke-backend/internal/checkout"
	paymentsvc "github.com/palengkeph/palengke-backend/internal/payments"
	quotesvc "github.com/palengkeph/palengke-backend/internal/quote"
	"github.com/palengkeph/palengke-backend/pkg/config"
	"github.com/palengkeph/palengke-backend/pkg/db"
	"github.com/palengkeph/palengke-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient pinger,
	pubsubClient pinger,
	addressService address.Service,
	cartService cartsvc.Service,
	quoteService quotesvc.Service,
	paymentService paymentsvc.Service,
	checkoutService checkoutsvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient, pubsubClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/address", func(r chi.Router) {
			r.Get("/suggest", controllers.AddressSuggest(addressService, logg))
			r.Post("/resolve", controllers.AddressResolve(addressService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CustomerContext(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(cartService, logg))
				r.Put("/items", controllers.CartReplaceItems(cartService, logg))
				r.Post("/destination", controllers.CartSetDestination(cartService, addressService, logg))
				r.Post("/customer", controllers.CartSetCustomer(cartService, logg))
				r.Post("/quote", controllers.CartQuote(cartService, quoteService, logg))
			})

			r.Get("/payment-methods", controllers.PaymentMethods(cartService, paymentService, logg))

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/summary", controllers.CheckoutSummary(checkoutService, logg))
				r.Post("/place", controllers.CheckoutPlace(checkoutService, logg))
			})
		})
	})

	return r
}
