package schedule

import "takt/internal/model"

// EntryKind tags a timeline entry.
type EntryKind int

const (
	// EntryTask wraps a scheduled task or instance.
	EntryTask EntryKind = iota
	// EntryGap is free time between two consecutive tasks.
	EntryGap
)

// TimelineEntry is one row of a day's rendered schedule.
type TimelineEntry struct {
	Kind EntryKind
	// Task is set for EntryTask.
	Task *model.Task
	// Start ("HH:MM") and GapMinutes are set for EntryGap.
	Start      string
	GapMinutes int
}

// interval returns a task's [start, end) slot in minutes since midnight.
// Tasks without a parseable scheduled time have no slot.
func interval(t model.Task) (start, end int, ok bool) {
	if t.ScheduledTime == nil {
		return 0, 0, false
	}
	start, ok = MinutesOfDay(*t.ScheduledTime)
	if !ok {
		return 0, 0, false
	}
	return start, start + t.DurationMinutes, true
}

// Overlaps reports whether two tasks' time slots intersect. Slots are
// half-open, so a task ending exactly when the next starts does not count.
// A task without a scheduled time never overlaps anything.
func Overlaps(a, b model.Task) bool {
	startA, endA, ok := interval(a)
	if !ok {
		return false
	}
	startB, endB, ok := interval(b)
	if !ok {
		return false
	}
	return startA < endB && startB < endA
}

// DetectBookings finds every task participating in at least one overlap
// among a day's scheduled tasks and returns their IDs. The all-pairs scan is
// quadratic, which is fine at the size of a single person's day.
func DetectBookings(tasks []model.Task) map[string]struct{} {
	booked := make(map[string]struct{})
	for i := range tasks {
		for j := i + 1; j < len(tasks); j++ {
			if Overlaps(tasks[i], tasks[j]) {
				booked[tasks[i].ID] = struct{}{}
				booked[tasks[j].ID] = struct{}{}
			}
		}
	}
	return booked
}

// BuildTimeline walks a time-sorted task list and interleaves gap entries
// wherever one task's end leaves free minutes before the next one's start.
// No gap is emitted before the first or after the last task; an empty input
// yields an empty timeline.
func BuildTimeline(tasks []model.Task) []TimelineEntry {
	var entries []TimelineEntry
	prevEnd := -1
	for i := range tasks {
		start, end, ok := interval(tasks[i])
		if !ok {
			continue
		}
		if prevEnd >= 0 && start > prevEnd {
			entries = append(entries, TimelineEntry{
				Kind:       EntryGap,
				Start:      FormatMinutes(prevEnd),
				GapMinutes: start - prevEnd,
			})
		}
		entries = append(entries, TimelineEntry{Kind: EntryTask, Task: &tasks[i]})
		prevEnd = end
	}
	return entries
}
