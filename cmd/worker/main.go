package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"courseware-backend/pkg/container"
	"courseware-backend/pkg/logger"
)

func main() {
	envFileErr := godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	if envFileErr != nil {
		logger.Warn("[Worker] No .env file found, using system environment variables", nil)
	}

	// Initialize container
	c, err := container.NewContainer()
	if err != nil {
		logger.Error("[Container] Failed to initialize", err)
		os.Exit(1)
	}
	defer c.Cleanup()

	// Initialize handlers
	handlers := initializeHandlers(c)

	// Setup Asynq server
	srv := setupAsynqServer(c.Config, handlers)

	// Setup scheduler
	scheduler, err := setupScheduler(c.Config)
	if err != nil {
		logger.Error("[Scheduler] Failed to register jobs", err)
		srv.Shutdown()
		return
	}

	// Health checks
	if err := startServices(c); err != nil {
		logger.Error("[Startup] Health check failed", err)
		scheduler.Shutdown()
		srv.Shutdown()
		return
	}

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("[Shutdown] Gracefully stopping...", nil)
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("[Shutdown] Stopped", nil)
}
