package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"

	"courseware-backend/pkg/container"
	"courseware-backend/pkg/logger"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	redisClient *redis.Client
	container   *container.Container
}

// startServices chạy health check rồi mở health endpoint
func startServices(c *container.Container) error {
	logger.Info("[Worker] Courseware worker starting", map[string]interface{}{
		"redis":   c.Config.Redis.Host,
		"storage": c.Config.Storage.Driver,
	})

	checker := &HealthChecker{
		redisClient: redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
			MaintNotificationsConfig: &maintnotifications.Config{
				Mode: maintnotifications.ModeDisabled,
			},
		}),
		container: c,
	}
	defer checker.redisClient.Close()

	if err := checker.checkAll(); err != nil {
		return err
	}

	go startHealthCheckServer(c)
	return nil
}

// checkAll runs all health checks
func (h *HealthChecker) checkAll() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"Redis Connection", h.checkRedis},
		{"Course Store", h.checkStore},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		logger.Info("[Health] "+check.name+": OK", nil)
	}

	return nil
}

func (h *HealthChecker) checkRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return h.redisClient.Ping(ctx).Err()
}

func (h *HealthChecker) checkStore() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if status := h.container.HealthCheck(ctx); status["database"] != "healthy" {
		return errors.New(fmt.Sprint(status["database"]))
	}
	return nil
}

// startHealthCheckServer mở /health và /ready cho orchestrator
func startHealthCheckServer(c *container.Container) {
	router := gin.New()
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "courseware-worker"})
	})
	router.GET("/ready", func(ctx *gin.Context) {
		status := c.HealthCheck(ctx.Request.Context())
		code := http.StatusOK
		if status["database"] != "healthy" {
			code = http.StatusServiceUnavailable
		}
		ctx.JSON(code, status)
	})

	addr := ":" + c.Config.Queue.HealthPort
	logger.Info("[Health] Starting health check server", map[string]interface{}{"addr": addr})
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("[Health] Failed to start", err)
	}
}
