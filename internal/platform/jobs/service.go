package jobs

import (
	"context"
	"log/slog"
	"time"

	"paghe/internal/domain/leave"
)

const JobLeaveAccrual = "leave_accrual"

// Service runs background work on a single worker goroutine. The only
// scheduled job today is the monthly leave accrual; the accrual run itself
// is idempotent, so ticking more often than monthly is harmless.
type Service struct {
	leave    *leave.Service
	interval time.Duration
	queue    chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(leaveSvc *leave.Service, accrualInterval time.Duration) *Service {
	return &Service{
		leave:    leaveSvc,
		interval: accrualInterval,
		queue:    make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.interval > 0 {
		go s.scheduleAccruals(ctx, s.interval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			started := time.Now()
			details, err := j.Run(ctx)
			if err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
				continue
			}
			slog.Info("job run completed", "jobType", j.Type, "durationMs", time.Since(started).Milliseconds(), "details", details)
		}
	}
}

func (s *Service) scheduleAccruals(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			s.Enqueue(JobLeaveAccrual, func(ctx context.Context) (any, error) {
				return s.leave.RunMonthlyAccrual(ctx, now.Year(), int(now.Month()))
			})
		}
	}
}
