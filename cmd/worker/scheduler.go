package main

import (
	"courseware-backend/internal/config"
	"courseware-backend/internal/infrastructure/queue"
	"courseware-backend/pkg/logger"
)

// asynqScheduler wraps queue.Scheduler with additional functionality
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler đăng ký periodic jobs, SUMMARY_SWEEP_SCHEDULE rỗng thì không chạy scheduler
func setupScheduler(cfg *config.Config) (*asynqScheduler, error) {
	if cfg.Queue.SummarySweepSchedule == "" {
		return &asynqScheduler{}, nil
	}

	scheduler := queue.NewScheduler(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := scheduler.RegisterSummarySweep(cfg.Queue.SummarySweepSchedule); err != nil {
		return nil, err
	}

	go func() {
		logger.Info("[Scheduler] Starting...", nil)
		if err := scheduler.Start(); err != nil {
			logger.Error("[Scheduler] Failed", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}, nil
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	if s == nil || s.Scheduler == nil {
		return
	}
	logger.Info("[Scheduler] Shutting down...", nil)
	s.Scheduler.Shutdown()
}
