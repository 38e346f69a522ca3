package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"takt/internal/model"
	"takt/internal/repository"
	"takt/internal/schedule"
)

// TaskInput carries the data needed to create a task.
type TaskInput struct {
	Name            string
	Memo            string
	DurationMinutes int
	TargetDate      *string
	Importance      model.Importance
	Pinned          bool
	IsSomeday       bool
	ScheduledDate   *string
	ScheduledTime   *string
	Recurrence      *model.RecurrenceRule
}

// TaskService wraps task mutations. Edits addressed at a single occurrence
// of a recurring task become exceptions on the template; edits to the rule
// itself rewrite the whole series.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) Create(ctx context.Context, input TaskInput) (*model.Task, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if input.DurationMinutes <= 0 {
		input.DurationMinutes = 30
	}
	if input.Importance == "" {
		input.Importance = model.ImportanceMid
	}
	if input.TargetDate != nil {
		if _, err := schedule.ParseDate(*input.TargetDate); err != nil {
			return nil, fmt.Errorf("bad target date %q", *input.TargetDate)
		}
	}
	if input.ScheduledDate != nil {
		if _, err := schedule.ParseDate(*input.ScheduledDate); err != nil {
			return nil, fmt.Errorf("bad scheduled date %q", *input.ScheduledDate)
		}
	}
	if input.ScheduledTime != nil {
		if _, ok := schedule.MinutesOfDay(*input.ScheduledTime); !ok {
			return nil, fmt.Errorf("bad time %q, expected HH:MM", *input.ScheduledTime)
		}
	}

	task := model.Task{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Memo:            input.Memo,
		DurationMinutes: input.DurationMinutes,
		TargetDate:      input.TargetDate,
		Importance:      input.Importance,
		Pinned:          input.Pinned,
		IsSomeday:       input.IsSomeday,
		ScheduledDate:   input.ScheduledDate,
		ScheduledTime:   input.ScheduledTime,
		Recurrence:      input.Recurrence,
	}
	// A recurring template is never itself placed on the calendar; its
	// expanded instances are.
	if task.IsRecurring() {
		task.ScheduledDate = nil
		task.ScheduledTime = nil
		task.IsSomeday = false
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"task":      task.ID,
		"recurring": task.IsRecurring(),
		"someday":   task.IsSomeday,
	}).Info("task created")

	return &task, nil
}

// Get resolves a task by id; instance ids resolve to their template.
func (s *TaskService) Get(ctx context.Context, id string) (*model.Task, error) {
	if templateID, _, ok := splitInstanceID(id); ok {
		return s.taskRepo.FindByID(ctx, templateID)
	}
	return s.taskRepo.FindByID(ctx, id)
}

// Complete marks a task done. Completing one occurrence of a recurring task
// writes a per-date override instead of touching the template.
func (s *TaskService) Complete(ctx context.Context, id string) error {
	if templateID, date, ok := splitInstanceID(id); ok {
		done := true
		return s.taskRepo.WriteException(ctx, templateID, date,
			model.OverrideException(model.TaskOverride{Completed: &done}))
	}
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	task.Completed = true
	return s.taskRepo.Save(ctx, task)
}

// Delete removes a task. Deleting one occurrence of a recurring task writes
// a deletion exception; the rest of the series survives.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if templateID, date, ok := splitInstanceID(id); ok {
		return s.taskRepo.WriteException(ctx, templateID, date, model.DeleteException())
	}
	return s.taskRepo.Delete(ctx, id)
}

// SkipOccurrence drops a single occurrence of a recurring task by date.
func (s *TaskService) SkipOccurrence(ctx context.Context, templateID, date string) error {
	if _, err := schedule.ParseDate(date); err != nil {
		return fmt.Errorf("bad date %q", date)
	}
	return s.taskRepo.WriteException(ctx, templateID, date, model.DeleteException())
}

// OverrideOccurrence replaces fields of one occurrence of a recurring task.
func (s *TaskService) OverrideOccurrence(ctx context.Context, id string, override model.TaskOverride) error {
	templateID, date, ok := splitInstanceID(id)
	if !ok {
		return fmt.Errorf("%q is not an instance id", id)
	}
	return s.taskRepo.WriteException(ctx, templateID, date, model.OverrideException(override))
}

// UpdateSeries rewrites a recurring template's rule. This is the
// series-wide edit; occurrence-level edits go through exceptions.
func (s *TaskService) UpdateSeries(ctx context.Context, templateID string, rule *model.RecurrenceRule) error {
	task, err := s.taskRepo.FindByID(ctx, templateID)
	if err != nil {
		return err
	}
	task.Recurrence = rule
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return err
	}
	logrus.WithField("task", templateID).Info("recurrence rule rewritten series-wide")
	return nil
}

// ApproveBooking acknowledges a scheduling conflict so it stops being
// flagged.
func (s *TaskService) ApproveBooking(ctx context.Context, id string) error {
	if templateID, date, ok := splitInstanceID(id); ok {
		approved := true
		return s.taskRepo.WriteException(ctx, templateID, date,
			model.OverrideException(model.TaskOverride{BookingApproved: &approved}))
	}
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	task.BookingApproved = true
	return s.taskRepo.Save(ctx, task)
}

// splitInstanceID decomposes an expanded-instance id ("<template>_<date>")
// into its parts. Plain task ids report ok=false.
func splitInstanceID(id string) (templateID, date string, ok bool) {
	idx := strings.LastIndex(id, "_")
	if idx <= 0 || idx == len(id)-1 {
		return "", "", false
	}
	templateID, date = id[:idx], id[idx+1:]
	if _, err := schedule.ParseDate(date); err != nil {
		return "", "", false
	}
	return templateID, date, true
}
