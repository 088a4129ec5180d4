package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"courseware-backend/internal/config"
	"courseware-backend/internal/shared"
	"courseware-backend/pkg/logger"
)

// asynqServer wraps asynq.Server with additional functionality
type asynqServer struct {
	*asynq.Server
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

// setupAsynqServer creates and starts the Asynq server
func setupAsynqServer(cfg *config.Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Queues: map[string]int{
				shared.QueueDefault: 10,
				shared.QueueLow:     2,
			},
			Concurrency:     cfg.Queue.Concurrency,
			ShutdownTimeout: 30 * time.Second,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error(fmt.Sprintf("[Asynq] Task failed - Type: %s", task.Type()), err)
			}),
		},
	)

	go func() {
		logger.Info("[Worker] Starting...", map[string]interface{}{"concurrency": cfg.Queue.Concurrency})
		if err := srv.Run(mux); err != nil {
			logger.Error("[Worker] Failed", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown chờ task đang chạy xong (tối đa ShutdownTimeout)
func (s *asynqServer) Shutdown() {
	logger.Info("[Worker] Shutting down...", nil)
	s.Server.Shutdown()
	logger.Info("[Worker] Gracefully stopped", nil)
}
