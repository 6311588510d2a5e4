package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"estate-notifier-backend/internal/common/config"
	"estate-notifier-backend/internal/common/logger"
	"estate-notifier-backend/internal/common/metrics"
	"estate-notifier-backend/internal/common/middleware"
	digestHTTP "estate-notifier-backend/internal/features/digest/delivery/http"
	digestRepo "estate-notifier-backend/internal/features/digest/repository/supabase"
	digestService "estate-notifier-backend/internal/features/digest/service"
	healthHTTP "estate-notifier-backend/internal/features/health/delivery/http"
	healthService "estate-notifier-backend/internal/features/health/service"
	userHTTP "estate-notifier-backend/internal/features/user/delivery/http"
	userRepo "estate-notifier-backend/internal/features/user/repository/supabase"
	userService "estate-notifier-backend/internal/features/user/service"
	"estate-notifier-backend/internal/platform/supabase"
	"estate-notifier-backend/internal/platform/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("estate-notifier-backend", cfg.Debug)

	if !cfg.HasSupabase() {
		logger.Warn().Msg("Supabase credentials not configured, store-backed handlers will refuse requests")
	}
	if !cfg.HasTelegram() {
		logger.Warn().Msg("Telegram credentials not configured, bot-backed handlers will refuse requests")
	}

	metrics.MustRegister()

	// The clients are constructed unconditionally; handlers gate on config
	// presence before any call reaches them.
	store := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.Key)
	bot := telegram.NewClient(cfg.Telegram.BotToken)

	users := userRepo.NewUserRepository(store)
	listings := digestRepo.NewListingRepository(store)

	userSvc := userService.NewUserService(users, bot, cfg.Telegram.AdminChatID)
	digestSvc := digestService.NewDigestService(listings, bot, cfg.Telegram.AdminChatID, cfg.Notify.IntervalHours, cfg.Notify.AppURL)
	healthSvc := healthService.NewHealthService(cfg, listings, bot)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.Server.Origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "init_data"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	userHTTP.NewUserHandler(userSvc, cfg).RegisterRoutes(api)
	digestHTTP.NewDigestHandler(digestSvc, cfg).RegisterRoutes(api)
	healthHTTP.NewHealthHandler(healthSvc).RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
