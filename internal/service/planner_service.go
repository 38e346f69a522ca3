package service

import (
	"context"
	"fmt"
	"time"

	"takt/internal/model"
	"takt/internal/repository"
	"takt/internal/schedule"
)

// expandWindowDays bounds recurrence expansion to a year around the view
// date; anything further out is invisible anyway and gets re-derived on the
// next call.
const expandWindowDays = 365

// DayPlan is one day's computed schedule: a snapshot, rebuilt from scratch
// per request. If tasks change, ask for a new plan.
type DayPlan struct {
	Date        string
	Holiday     *model.Holiday
	Scheduled   []model.Task
	Unscheduled []model.Task
	Someday     []model.Task
	Timeline    []schedule.TimelineEntry
	Conflicts   map[string]struct{}
}

// UnapprovedConflicts returns the scheduled tasks that overlap something and
// have not been acknowledged by the user.
func (p *DayPlan) UnapprovedConflicts() []model.Task {
	var out []model.Task
	for _, t := range p.Scheduled {
		if _, ok := p.Conflicts[t.ID]; ok && !t.BookingApproved {
			out = append(out, t)
		}
	}
	return out
}

// PlannerService runs the scheduling engine over stored tasks.
type PlannerService struct {
	taskRepo     *repository.TaskRepository
	settingsRepo *repository.SettingsRepository
	holidayRepo  *repository.HolidayRepository
}

func NewPlannerService(taskRepo *repository.TaskRepository, settingsRepo *repository.SettingsRepository, holidayRepo *repository.HolidayRepository) *PlannerService {
	return &PlannerService{taskRepo: taskRepo, settingsRepo: settingsRepo, holidayRepo: holidayRepo}
}

// PlanForDate fetches all tasks, expands recurring templates over a
// ±365-day window around the date, and derives the day's subsets, conflicts
// and timeline.
func (s *PlannerService) PlanForDate(ctx context.Context, date string, now time.Time) (*DayPlan, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parse plan date %q: %w", date, err)
	}

	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	windowStart := schedule.FormatDate(day.AddDate(0, 0, -expandWindowDays))
	windowEnd := schedule.FormatDate(day.AddDate(0, 0, expandWindowDays))
	expanded := schedule.Expand(tasks, windowStart, windowEnd)

	scheduled := schedule.ScheduledForDate(expanded, date)
	plan := &DayPlan{
		Date:        date,
		Scheduled:   scheduled,
		Unscheduled: schedule.UnscheduledForDate(expanded, date),
		Someday:     schedule.SortSomeday(schedule.SomedayTasks(expanded), now, settings.N1, settings.N2),
		Timeline:    schedule.BuildTimeline(scheduled),
		Conflicts:   schedule.DetectBookings(scheduled),
	}

	holiday, err := s.holidayRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	plan.Holiday = holiday

	return plan, nil
}
