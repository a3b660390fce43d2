// File: glowbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glowbook/config"
	"glowbook/database"
	availabilityRepoPkg "glowbook/database/repository/availability"
	bookingRepoPkg "glowbook/database/repository/booking"
	userRepoPkg "glowbook/database/repository/user"
	"glowbook/handlers"
	"glowbook/middleware"
	"glowbook/routes"
	"glowbook/services/admin"
	"glowbook/services/availability"
	"glowbook/services/booking"
	"glowbook/services/notification"
	"glowbook/services/session"
	"glowbook/services/user"
	"glowbook/utils"
	"glowbook/workers"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()

	// notification queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisNotifyQueueDB,
	})
	defer asynqClient.Close()
	dispatcher := &notification.AsynqDispatcher{Client: asynqClient, Logger: logger}

	notificationHandler := &notification.Handler{
		Mailer: notification.NewMailer(config.AppConfig),
		Pusher: &notification.Pusher{Client: utils.FCMClient},
		Logger: logger,
	}
	workers.InitNotificationWorker(notificationHandler)

	// services.
	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Bookings: bookingRepo,
		Sessions: utils.GetAuthCacheClient(),
		Logger:   logger,
	}

	sessionStore := session.NewRedisStore(utils.GetAuthCacheClient())
	sessionManager := session.NewManager(userService, userService, sessionStore, logger)

	availabilityService := &availability.DefaultService{
		Repo:  availabilityRepo,
		Cache: availability.NewRedisDayCache(utils.GetCacheClient()),
	}

	wizardService := &booking.DefaultWizardService{
		Store:        &booking.RedisWizardStore{Client: utils.GetWizardCacheClient()},
		Bookings:     bookingRepo,
		Availability: availabilityService,
		Logger:       logger,
	}

	adminService := &admin.DefaultService{
		Bookings: bookingRepo,
		Users:    userRepo,
		Notify:   dispatcher,
		Logger:   logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		SessionStore: sessionStore,

		// Auth and session endpoints.
		RegisterHandler:   handlers.RegisterHandler(sessionManager, dispatcher),
		LoginHandler:      handlers.LoginHandler(sessionManager),
		AdminLoginHandler: handlers.AdminLoginHandler(sessionManager),
		LogoutHandler:     handlers.LogoutHandler(sessionManager),
		SessionHandler:    handlers.SessionHandler(sessionManager),
		ResumeHandler:     handlers.ResumeHandler(sessionManager),

		// Booking endpoints.
		TreatmentsHandler:      handlers.TreatmentsHandler,
		SlotsHandler:           handlers.SlotsHandler(availabilityService),
		StartWizardHandler:     handlers.StartWizardHandler(wizardService, userService),
		GetWizardHandler:       handlers.GetWizardHandler(wizardService),
		SelectTreatmentHandler: handlers.SelectTreatmentHandler(wizardService),
		SelectDateTimeHandler:  handlers.SelectDateTimeHandler(wizardService),
		SetDetailsHandler:      handlers.SetDetailsHandler(wizardService),
		NextStepHandler:        handlers.NextStepHandler(wizardService),
		PrevStepHandler:        handlers.PrevStepHandler(wizardService),
		ConfirmWizardHandler:   handlers.ConfirmWizardHandler(wizardService),
		CancelWizardHandler:    handlers.CancelWizardHandler(wizardService),
		MyBookingsHandler:      handlers.MyBookingsHandler(userService),
		CancelMyBookingHandler: handlers.CancelMyBookingHandler(userService, dispatcher),
		UpdateFCMTokenHandler:  handlers.UpdateFCMTokenHandler(userService),

		// Admin endpoints.
		AdminBookingsHandler:        handlers.AdminBookingsHandler(adminService),
		UpdateBookingStatusHandler:  handlers.UpdateBookingStatusHandler(adminService),
		RescheduleBookingHandler:    handlers.RescheduleBookingHandler(adminService),
		TreatmentStatsHandler:       handlers.TreatmentStatsHandler(adminService),
		AdminUsersHandler:           handlers.AdminUsersHandler(adminService),
		ListAvailabilityHandler:     handlers.ListAvailabilityHandler(availabilityService),
		SetDayAvailabilityHandler:   handlers.SetDayAvailabilityHandler(availabilityService),
		ClearDayAvailabilityHandler: handlers.ClearDayAvailabilityHandler(availabilityService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
