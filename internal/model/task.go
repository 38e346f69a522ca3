package model

import "time"

// Importance weights a task when ranking the someday backlog.
type Importance string

const (
	ImportanceLow  Importance = "low"
	ImportanceMid  Importance = "mid"
	ImportanceHigh Importance = "high"
)

// Task is a single planner item. It lives either in the someday backlog
// (IsSomeday) or on the calendar (ScheduledDate set); a recurring template is
// never placed itself, only its expanded instances are.
//
// Calendar dates are stored as "YYYY-MM-DD" strings and times of day as
// zero-padded "HH:MM"; both are local wall-clock values with no time zone.
type Task struct {
	ID              string `gorm:"primaryKey"`
	Name            string
	Memo            string
	DurationMinutes int             `gorm:"default:30"`
	TargetDate      *string         // goal/deadline date, independent of scheduling
	Importance      Importance      `gorm:"default:mid"`
	Pinned          bool            `gorm:"default:false"`
	IsSomeday       bool            `gorm:"index;default:false"`
	Recurrence      *RecurrenceRule `gorm:"type:text"`
	ScheduledDate   *string         `gorm:"index"`
	ScheduledTime   *string         // nil with ScheduledDate set means "unscheduled for that day"
	BookingApproved bool            `gorm:"default:false"`
	Completed       bool            `gorm:"default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Instance identity, set only on expanded occurrences. Instances are
	// recomputed per window and never persisted.
	OriginalTaskID string `gorm:"-"`
	IsInstance     bool   `gorm:"-"`
}

// IsRecurring reports whether the task is a recurring template.
func (t *Task) IsRecurring() bool {
	return t.Recurrence != nil && t.Recurrence.Type != RecurNone
}
