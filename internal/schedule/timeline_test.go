package schedule

import (
	"testing"

	"takt/internal/model"
)

func timed(id, start string, duration int) model.Task {
	return model.Task{ID: id, ScheduledTime: &start, DurationMinutes: duration}
}

func TestOverlaps(t *testing.T) {
	t.Run("back-to-back does not overlap", func(t *testing.T) {
		a := timed("a", "09:00", 60) // ends 10:00
		b := timed("b", "10:00", 30)
		if Overlaps(a, b) {
			t.Error("tasks touching at the boundary must not overlap")
		}
	})

	t.Run("intersecting slots overlap", func(t *testing.T) {
		a := timed("a", "09:00", 60)
		b := timed("b", "09:30", 30)
		if !Overlaps(a, b) || !Overlaps(b, a) {
			t.Error("expected overlap in both argument orders")
		}
	})

	t.Run("missing scheduled time never overlaps", func(t *testing.T) {
		a := timed("a", "09:00", 60)
		b := model.Task{ID: "b", DurationMinutes: 30}
		if Overlaps(a, b) || Overlaps(b, a) {
			t.Error("nil scheduled time should mean no overlap")
		}
	})

	t.Run("malformed time never overlaps", func(t *testing.T) {
		a := timed("a", "09:00", 60)
		b := timed("b", "morning", 30)
		if Overlaps(a, b) {
			t.Error("unparseable time should mean no overlap")
		}
	})
}

func TestDetectBookings(t *testing.T) {
	tasks := []model.Task{
		timed("a", "09:00", 60),
		timed("b", "09:30", 60), // overlaps a and c
		timed("c", "10:00", 30),
		timed("d", "12:00", 30), // clear
	}
	booked := DetectBookings(tasks)
	for _, id := range []string{"a", "b", "c"} {
		if _, ok := booked[id]; !ok {
			t.Errorf("expected %s in the booking set", id)
		}
	}
	if _, ok := booked["d"]; ok {
		t.Error("d has no conflict and should not be flagged")
	}
	if len(booked) != 3 {
		t.Errorf("booking set size = %d, want 3", len(booked))
	}
}

func TestBuildTimeline(t *testing.T) {
	t.Run("gap between consecutive tasks", func(t *testing.T) {
		tasks := []model.Task{
			timed("a", "09:00", 30),
			timed("b", "10:00", 30),
		}
		entries := BuildTimeline(tasks)
		if len(entries) != 3 {
			t.Fatalf("got %d entries, want 3", len(entries))
		}
		if entries[0].Kind != EntryTask || entries[0].Task.ID != "a" {
			t.Errorf("entry 0 should be task a")
		}
		gap := entries[1]
		if gap.Kind != EntryGap || gap.Start != "09:30" || gap.GapMinutes != 30 {
			t.Errorf("entry 1 should be a 30-minute gap at 09:30, got %+v", gap)
		}
		if entries[2].Kind != EntryTask || entries[2].Task.ID != "b" {
			t.Errorf("entry 2 should be task b")
		}
	})

	t.Run("no gap when tasks touch", func(t *testing.T) {
		tasks := []model.Task{
			timed("a", "09:00", 60),
			timed("b", "10:00", 30),
		}
		entries := BuildTimeline(tasks)
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2 task entries only", len(entries))
		}
	})

	t.Run("no gap for overlapping tasks", func(t *testing.T) {
		tasks := []model.Task{
			timed("a", "09:00", 60),
			timed("b", "09:30", 30),
		}
		for _, e := range BuildTimeline(tasks) {
			if e.Kind == EntryGap {
				t.Errorf("unexpected gap entry %+v", e)
			}
		}
	})

	t.Run("empty input yields empty timeline", func(t *testing.T) {
		if entries := BuildTimeline(nil); len(entries) != 0 {
			t.Errorf("got %d entries, want none", len(entries))
		}
	})
}
