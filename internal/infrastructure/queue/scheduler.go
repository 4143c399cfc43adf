package queue

import (
	"time"

	"storefront-backend/internal/shared"
	"storefront-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	location  *time.Location
}

func NewScheduler(redisOpt asynq.RedisClientOpt, location *time.Location) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: location,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler, location: location}
}

// RegisterJobs registers the periodic tasks
func (s *Scheduler) RegisterJobs(salesSummaryCron string) error {
	if salesSummaryCron == "" {
		return nil
	}

	task := asynq.NewTask(shared.TypeDailySalesSummary, nil)
	entryID, err := s.scheduler.Register(
		salesSummaryCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register DailySalesSummary job", err)
		return err
	}

	logger.Info("Registered DailySalesSummary job", map[string]interface{}{
		"entry_id": entryID,
		"cron":     salesSummaryCron,
		"location": s.location.String(),
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
