package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"railbook/internal/config"
	"railbook/internal/database"
	"railbook/internal/gateway/xendit"
	"railbook/internal/jobs"
	"railbook/internal/middleware"
	"railbook/internal/modules/auth"
	"railbook/internal/modules/booking"
	"railbook/internal/modules/catalog"
	"railbook/internal/modules/dashboard"
	"railbook/internal/modules/payment"
	"railbook/internal/modules/schedule"
	jwtsvc "railbook/internal/pkg/jwt"
	"railbook/internal/repository"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	stationRepo := repository.NewStationRepository(db)
	trainRepo := repository.NewTrainRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	bookingStore := repository.NewBookingStore(db)
	paymentStore := repository.NewPaymentStore(db)
	userRepo := repository.NewUserRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	j := jwtsvc.New(cfg.JWT.Secret, cfg.JWT.TTL)
	gateway := xendit.New(cfg.Xendit.BaseURL, cfg.Xendit.SecretKey, cfg.Xendit.Timeout)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(stationRepo, trainRepo, routeRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	scheduleService := schedule.NewService(scheduleRepo, trainRepo, routeRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	bookingService := booking.NewService(
		bookingStore,
		userRepo,
		gateway,
		logger,
		cfg.Server.BaseURL,
		cfg.Xendit.InvoiceDuration,
	)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(paymentStore, gateway, logger)
	paymentHandler := payment.NewHandler(paymentService, cfg.Xendit.CallbackToken)

	dashboardService := dashboard.NewService(dashboardRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	reconcileJob := jobs.NewReconcileJob(paymentService, logger, cfg.Reconcile.Interval)
	reconcileJob.Start()
	defer reconcileJob.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Payment redirect pages sit outside the API prefix; the gateway sends
	// the customer's browser here after checkout.
	paymentHandler.RegisterWebRoutes(r.Group("/"))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		scheduleHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				catalogHandler.RegisterAdminRoutes(admin)
				scheduleHandler.RegisterAdminRoutes(admin)
				bookingHandler.RegisterAdminRoutes(admin)
				paymentHandler.RegisterAdminRoutes(admin)
				dashboardHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	go func() {
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			logger.WithError(err).Fatal("Server stopped")
		}
	}()
	logger.WithField("port", cfg.Server.Port).Info("API server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")
}
