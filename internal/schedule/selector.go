package schedule

import (
	"sort"

	"takt/internal/model"
)

// SomedayTasks filters the backlog out of a flat task collection.
func SomedayTasks(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.IsSomeday {
			out = append(out, t)
		}
	}
	return out
}

// UnscheduledForDate returns tasks placed on the date but without a time of
// day yet.
func UnscheduledForDate(tasks []model.Task, date string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.IsSomeday || t.ScheduledDate == nil || *t.ScheduledDate != date {
			continue
		}
		if t.ScheduledTime == nil {
			out = append(out, t)
		}
	}
	return out
}

// ScheduledForDate returns the date's timed tasks in time order. "HH:MM" is
// fixed-width zero-padded, so the lexicographic comparison is the time
// comparison.
func ScheduledForDate(tasks []model.Task, date string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.IsSomeday || t.ScheduledDate == nil || *t.ScheduledDate != date {
			continue
		}
		if t.ScheduledTime != nil {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].ScheduledTime < *out[j].ScheduledTime
	})
	return out
}
