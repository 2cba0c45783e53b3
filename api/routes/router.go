package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/web-visions/energy-solar-backend/api/controllers"
	"github.com/web-visions/energy-solar-backend/api/middleware"
	authsvc "github.com/web-visions/energy-solar-backend/internal/auth"
	"github.com/web-visions/energy-solar-backend/internal/cart"
	"github.com/web-visions/energy-solar-backend/internal/catalog"
	"github.com/web-visions/energy-solar-backend/internal/cities"
	"github.com/web-visions/energy-solar-backend/internal/leads"
	"github.com/web-visions/energy-solar-backend/internal/orders"
	"github.com/web-visions/energy-solar-backend/internal/payments"
	"github.com/web-visions/energy-solar-backend/internal/reviews"
	"github.com/web-visions/energy-solar-backend/internal/users"
	"github.com/web-visions/energy-solar-backend/pkg/config"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/razorpay"
	pkgredis "github.com/web-visions/energy-solar-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisStore pkgredis.IdempotencyStore,
	gatewayClient *razorpay.Client,
	authService authsvc.Service,
	usersService *users.Service,
	catalogService *catalog.Service,
	cartService *cart.Service,
	ordersService *orders.Service,
	paymentsService *payments.Service,
	citiesService *cities.Service,
	reviewsService *reviews.Service,
	leadsService *leads.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Recoverer(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.Idempotency(redisStore, logg))
			r.Post("/register", controllers.Register(authService, logg))
			r.Post("/login", controllers.Login(authService, logg))
		})

		r.Get("/cities", controllers.CitiesList(citiesService, logg))
		r.Get("/brands", controllers.BrandsList(catalogService, logg))
		r.Get("/categories", controllers.CategoriesList(catalogService, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/{productType}", controllers.ProductsList(catalogService, logg))
			r.Get("/{productType}/{productId}", controllers.ProductFetch(catalogService, logg))
			r.With(middleware.Auth(cfg.JWT, logg), middleware.RequireAdmin(logg)).
				Delete("/{productType}/{productId}", controllers.ProductDelete(catalogService, logg))
		})

		r.With(middleware.Idempotency(redisStore, logg)).
			Post("/leads", controllers.LeadCreate(leadsService, logg))
		r.Get("/reviews/{productType}/{productId}", controllers.ReviewsForProduct(reviewsService, logg))
		r.Get("/payment/key", controllers.PaymentKey(gatewayClient, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(redisStore, logg))

			r.Get("/users/me", controllers.Me(usersService, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Post("/add", controllers.CartAdd(cartService, logg))
				r.Put("/{productType}/{productId}", controllers.CartItemUpdate(cartService, logg))
				r.Delete("/{productType}/{productId}", controllers.CartItemRemove(cartService, logg))
			})

			r.Post("/orders", controllers.OrderPlace(ordersService, logg))
			r.Get("/orders/user", controllers.MyOrders(ordersService, logg))
			r.Get("/orders/{orderId}", controllers.OrderFetch(ordersService, logg))
			r.Get("/orders/details/{orderId}", controllers.OrderFetch(ordersService, logg))

			r.Post("/payment/order", controllers.PaymentOrderCreate(paymentsService, logg))
			r.Post("/payment/verify", controllers.PaymentVerify(paymentsService, logg))

			r.Post("/reviews", controllers.ReviewCreate(reviewsService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))
				r.Get("/orders", controllers.AdminOrdersList(ordersService, logg))
				r.Put("/orders/{orderId}/status", controllers.OrderStatusUpdate(ordersService, logg))
				r.Get("/leads", controllers.AdminLeadsList(leadsService, logg))
				r.Put("/leads/{leadId}/status", controllers.LeadStatusUpdate(leadsService, logg))
				r.Get("/reviews", controllers.AdminReviewsList(reviewsService, logg))
				r.Put("/reviews/{reviewId}/approve", controllers.ReviewApprove(reviewsService, logg))
				r.Delete("/reviews/{reviewId}", controllers.ReviewDelete(reviewsService, logg))
			})
		})
	})

	return r
}
