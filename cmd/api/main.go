package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/web-visions/energy-solar-backend/api/routes"
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
	"github.com/web-visions/energy-solar-backend/pkg/db"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/migrate"
	"github.com/web-visions/energy-solar-backend/pkg/razorpay"
	"github.com/web-visions/energy-solar-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gatewayClient, err := razorpay.NewClient(cfg.Razorpay)
	if err != nil {
		logg.Error(context.Background(), "failed to create razorpay client", err)
		os.Exit(1)
	}

	conn := dbClient.DB()

	registry, err := catalog.NewRegistry(conn)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog registry", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Repo:     cart.NewRepository(conn),
		Registry: registry,
		Tx:       dbClient,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Repo:    catalog.NewRepository(conn),
		Sweeper: cartService,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(conn)

	usersService, err := users.NewService(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       usersRepo,
		PasswordConfig: cfg.Password,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	citiesService, err := cities.NewService(cities.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create cities service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:     orders.NewRepository(conn),
		Registry: registry,
		Cart:     cartService,
		Cities:   citiesService,
		Tx:       dbClient,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(payments.ServiceParams{
		Repo:    payments.NewRepository(conn),
		Gateway: gatewayClient,
		Cart:    cartService,
		Cities:  citiesService,
		Orders:  ordersService,
		Tx:      dbClient,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		Repo:     reviews.NewRepository(conn),
		Registry: registry,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	leadsService, err := leads.NewService(leads.ServiceParams{
		Repo:   leads.NewRepository(conn),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create leads service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			gatewayClient,
			authService,
			usersService,
			catalogService,
			cartService,
			ordersService,
			paymentsService,
			citiesService,
			reviewsService,
			leadsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
