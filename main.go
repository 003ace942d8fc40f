package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"planejaplus/config"
	"planejaplus/controllers"
	"planejaplus/logger"
	"planejaplus/routes"
	"planejaplus/scheduler"
	"planejaplus/services"
	"planejaplus/storage"
	"planejaplus/utils"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.LogFile != "" {
		l, err := logger.NewWithFileRotation(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			logger.Fatal("failed to open log file: %v", err)
		}
		logger.SetDefaultLogger(l)
	} else if l, err := logger.New(cfg.LogLevel); err == nil {
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		logger.Fatal("failed to open storage: %v", err)
	}
	defer store.Close()

	authService := services.NewAuthService(store, cfg)
	authService.Hydrate()

	registry := services.NewRegistry(store, cfg.Namespace, authService)

	hub := utils.NewHub()
	go hub.Start()

	jobs, err := scheduler.Start(authService, registry, hub, cfg)
	if err != nil {
		logger.Fatal("failed to start job manager: %v", err)
	}
	defer jobs.Stop()

	router := gin.Default()
	authMiddleware := utils.JWTMiddleware(cfg.JWTSecret)

	authController := controllers.NewAuthController(authService)
	projectController := controllers.NewProjectController(registry)
	taskController := controllers.NewTaskController(registry)
	teamController := controllers.NewTeamController(registry)
	calendarController := controllers.NewCalendarController(registry)

	routes.SetupAuthRoutes(router, authController, authMiddleware)
	routes.SetupProjectRoutes(router, projectController, authMiddleware)
	routes.SetupTaskRoutes(router, taskController, authMiddleware)
	routes.SetupTeamRoutes(router, teamController, authMiddleware)
	routes.SetupCalendarRoutes(router, calendarController, authMiddleware)
	routes.SetupNotificationRoutes(router, hub, authMiddleware)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown: %v", err)
	}
}
