package scheduler

import (
	"context"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the nightly retention sweep that removes tasks past their
// expiry horizon together with their entries.
type Scheduler struct {
	taskService task.Service
	schedule    string
	cron        *cron.Cron
	logger      *zap.Logger
}

func NewScheduler(taskService task.Service, schedule string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		taskService: taskService,
		schedule:    schedule,
		cron:        cron.New(),
		logger:      logger,
	}
}

// Start registers the sweep and begins the cron loop. The sweep also runs
// once at startup so a long-stopped instance catches up immediately.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runExpirySweep); err != nil {
		return err
	}

	go s.runExpirySweep()

	s.cron.Start()
	s.logger.Info("retention scheduler started", zap.String("schedule", s.schedule))
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("retention scheduler stopped")
}

func (s *Scheduler) runExpirySweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	purged, err := s.taskService.PurgeExpired(ctx)
	if err != nil {
		s.logger.Error("expiry sweep failed", zap.Error(err))
		return
	}

	s.logger.Info("expiry sweep completed",
		zap.Int64("tasks_purged", purged),
		zap.Duration("duration", time.Since(start)))
}
