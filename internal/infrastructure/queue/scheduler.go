package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"courseware-backend/internal/shared"
	"courseware-backend/pkg/logger"
)

// Scheduler đăng ký các periodic task lên asynq
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, password string, db int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// ================================================
// Summary sweep: dọn summary cache theo cron spec
// ================================================
func (s *Scheduler) RegisterSummarySweep(cronspec string) error {
	task, err := newTask(shared.TypeCourseSummarySweep, struct{}{})
	if err != nil {
		return err
	}

	_, err = s.scheduler.Register(
		cronspec,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(2*time.Minute),
		// Một lần sweep đang chờ là đủ
		asynq.Unique(time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CourseSummarySweep job", err)
		return err
	}

	logger.Info("Registered CourseSummarySweep", map[string]interface{}{"schedule": cronspec})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
