// File: campuscare/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campuscare/config"
	"campuscare/cron"
	"campuscare/database"
	bookingRepoPkg "campuscare/database/repository/booking"
	statsRepoPkg "campuscare/database/repository/stats"
	userRepoPkg "campuscare/database/repository/user"
	"campuscare/handlers"
	"campuscare/middleware"
	"campuscare/routes"
	"campuscare/services/booking"
	"campuscare/services/chat"
	"campuscare/services/faq"
	"campuscare/services/user"
	"campuscare/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	faqStore, err := faq.NewStore(config.AppConfig.FAQFilePath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load FAQ knowledge base: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	statsRepo := statsRepoPkg.NewMongoStatsRepo()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}
	bookingService := booking.NewDefaultBookingService(bookingRepo, userRepo)

	ctxStore := chat.NewRedisContextStore(utils.GetCacheClient(), 30*time.Minute)
	chatService := chat.NewDefaultChatService(faqStore, statsRepo, ctxStore)

	revoker := &user.RedisTokenRevoker{Client: utils.GetAuthCacheClient()}

	// Background sweep of past bookings.
	cron.InitBookingWorker(bookingService)

	// handlers.
	hb := &routes.HandlerBundle{
		Auth:    handlers.NewAuthHandler(userService, revoker, logger),
		Booking: handlers.NewBookingHandler(bookingService, logger),
		Chat:    handlers.NewChatHandler(chatService, faqStore, logger),
		FAQ:     handlers.NewFAQHandler(faqStore, logger),
		Revoker: revoker,
	}

	routes.RegisterRoutes(router, hb)

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
