package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RecurrenceType selects the expansion strategy for a recurring template.
type RecurrenceType string

const (
	RecurNone    RecurrenceType = "none"
	RecurDaily   RecurrenceType = "daily"
	RecurWeekly  RecurrenceType = "weekly"
	RecurMonthly RecurrenceType = "monthly"
	RecurYearly  RecurrenceType = "yearly"
)

// AvoidDirection tells the expander which way to shift a candidate date off
// an avoided weekday.
type AvoidDirection string

const (
	AvoidBefore AvoidDirection = "before"
	AvoidAfter  AvoidDirection = "after"
)

// deletedMarker is the literal exception value meaning "this occurrence was
// removed". The storage layer and the expander must agree on it bit-for-bit.
const deletedMarker = "deleted"

// RecurrenceRule describes how a template expands into dated instances.
// Weekday numbers follow time.Weekday: 0 is Sunday through 6 is Saturday.
//
// The rule is persisted as a JSON column on the tasks table.
type RecurrenceRule struct {
	Type RecurrenceType `json:"type"`
	// Until is an inclusive "YYYY-MM-DD" end date for the whole series.
	Until *string `json:"until,omitempty"`
	// ExcludeDays lists weekdays a daily rule skips.
	ExcludeDays []int `json:"excludeDays,omitempty"`
	// DaysOfWeek lists the only weekdays a weekly rule emits on.
	DaysOfWeek []int `json:"daysOfWeek,omitempty"`
	// DayOfMonth (1-31) anchors monthly and yearly rules; it is clamped to
	// the last day of short months.
	DayOfMonth int `json:"dayOfMonth,omitempty"`
	// Month (1-12) anchors yearly rules.
	Month int `json:"month,omitempty"`
	// AvoidDays lists weekdays monthly/yearly occurrences are shifted off of,
	// one day at a time in AvoidDirection.
	AvoidDays      []int          `json:"avoidDays,omitempty"`
	AvoidDirection AvoidDirection `json:"avoidDirection,omitempty"`
	// Exceptions maps "YYYY-MM-DD" occurrence dates to a per-date deletion or
	// partial override.
	Exceptions map[string]Exception `json:"exceptions,omitempty"`
}

// Scan implements sql.Scanner so GORM can read the JSON column.
func (r *RecurrenceRule) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("scan recurrence rule: unsupported type %T", value)
	}
}

// Value implements driver.Valuer so GORM can write the JSON column.
func (r RecurrenceRule) Value() (driver.Value, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal recurrence rule: %w", err)
	}
	return string(data), nil
}

// Exception is one entry of RecurrenceRule.Exceptions: either a deletion of
// the occurrence or a partial override of its fields. On the wire it is the
// string "deleted" or a TaskOverride object.
type Exception struct {
	Deleted  bool
	Override *TaskOverride
}

// DeleteException marks one occurrence as removed.
func DeleteException() Exception {
	return Exception{Deleted: true}
}

// OverrideException replaces fields of one occurrence.
func OverrideException(o TaskOverride) Exception {
	return Exception{Override: &o}
}

func (e Exception) MarshalJSON() ([]byte, error) {
	if e.Deleted {
		return json.Marshal(deletedMarker)
	}
	if e.Override == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(e.Override)
}

func (e *Exception) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if s != deletedMarker {
			return fmt.Errorf("unknown exception marker %q", s)
		}
		*e = Exception{Deleted: true}
		return nil
	}
	var o TaskOverride
	if err := json.Unmarshal(trimmed, &o); err != nil {
		return err
	}
	*e = Exception{Override: &o}
	return nil
}

// TaskOverride is a partial task: nil fields keep the template's value,
// non-nil fields win when an exception is applied to an occurrence.
type TaskOverride struct {
	Name            *string     `json:"name,omitempty"`
	Memo            *string     `json:"memo,omitempty"`
	DurationMinutes *int        `json:"durationMinutes,omitempty"`
	TargetDate      *string     `json:"targetDate,omitempty"`
	Importance      *Importance `json:"importance,omitempty"`
	Pinned          *bool       `json:"pinned,omitempty"`
	ScheduledTime   *string     `json:"scheduledTime,omitempty"`
	BookingApproved *bool       `json:"bookingApproved,omitempty"`
	Completed       *bool       `json:"completed,omitempty"`
}

// Apply copies every non-nil override field onto the task.
func (o *TaskOverride) Apply(t *Task) {
	if o == nil {
		return
	}
	if o.Name != nil {
		t.Name = *o.Name
	}
	if o.Memo != nil {
		t.Memo = *o.Memo
	}
	if o.DurationMinutes != nil {
		t.DurationMinutes = *o.DurationMinutes
	}
	if o.TargetDate != nil {
		t.TargetDate = o.TargetDate
	}
	if o.Importance != nil {
		t.Importance = *o.Importance
	}
	if o.Pinned != nil {
		t.Pinned = *o.Pinned
	}
	if o.ScheduledTime != nil {
		t.ScheduledTime = o.ScheduledTime
	}
	if o.BookingApproved != nil {
		t.BookingApproved = *o.BookingApproved
	}
	if o.Completed != nil {
		t.Completed = *o.Completed
	}
}
