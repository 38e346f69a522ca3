package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"takt/internal/schedule"
)

// SchedulerService wraps cron for the recurring jobs the app itself needs,
// currently just the morning report.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// ScheduleDaily registers a daily job at the given "HH:MM" local time.
func (s *SchedulerService) ScheduleDaily(clock string, job func()) (cron.EntryID, error) {
	minutes, ok := schedule.MinutesOfDay(clock)
	if !ok {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	// cron format: second minute hour dom month dow
	spec := fmt.Sprintf("0 %d %d * * *", minutes%60, minutes/60)
	return s.cron.AddFunc(spec, job)
}

// ScheduleInterval registers a periodic job every given duration.
func (s *SchedulerService) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	return s.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), job)
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
