package schedule

import (
	"testing"
	"time"

	"takt/internal/model"
)

var scoreToday = time.Date(2024, 5, 15, 10, 30, 0, 0, time.Local)

func taskDueIn(days int) model.Task {
	date := FormatDate(scoreToday.AddDate(0, 0, days))
	return model.Task{TargetDate: &date, Importance: model.ImportanceMid}
}

func TestDeadlineScore(t *testing.T) {
	cases := []struct {
		name string
		task model.Task
		want int
	}{
		{"no target date", model.Task{}, 1},
		{"overdue", taskDueIn(-1), 6},
		{"due today", taskDueIn(0), 5},
		{"due tomorrow", taskDueIn(1), 4},
		{"within n1", taskDueIn(5), 3},
		{"just inside n1", taskDueIn(7), 3},
		{"at n1", taskDueIn(8), 2},
		{"far future", taskDueIn(10), 2},
		{"malformed target date", model.Task{TargetDate: strPtr("soonish")}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeadlineScore(tc.task, scoreToday, DefaultN1, DefaultN2); got != tc.want {
				t.Errorf("DeadlineScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDeadlineScore_IgnoresTimeOfDay(t *testing.T) {
	// The diff is a calendar-day subtraction, so a late-evening "today"
	// still scores a same-date target as due today.
	lateToday := time.Date(2024, 5, 15, 23, 55, 0, 0, time.Local)
	task := taskDueIn(0)
	if got := DeadlineScore(task, lateToday, DefaultN1, DefaultN2); got != 5 {
		t.Errorf("DeadlineScore = %d, want 5", got)
	}
}

func TestImportanceScore(t *testing.T) {
	cases := []struct {
		importance model.Importance
		want       int
	}{
		{model.ImportanceLow, 1},
		{model.ImportanceMid, 2},
		{model.ImportanceHigh, 3},
		{model.Importance("critical"), 2}, // unknown falls back to mid
		{model.Importance(""), 2},
	}
	for _, tc := range cases {
		if got := ImportanceScore(model.Task{Importance: tc.importance}); got != tc.want {
			t.Errorf("ImportanceScore(%q) = %d, want %d", tc.importance, got, tc.want)
		}
	}
}

func TestTotalScore(t *testing.T) {
	task := taskDueIn(0)
	task.Importance = model.ImportanceHigh
	if got := TotalScore(task, scoreToday, DefaultN1, DefaultN2); got != 15 {
		t.Errorf("TotalScore = %d, want 15 (due today x high)", got)
	}
}

func TestSortSomeday(t *testing.T) {
	t.Run("pinned beats any score", func(t *testing.T) {
		pinnedLow := model.Task{ID: "pinned", Pinned: true, Importance: model.ImportanceLow}
		urgent := taskDueIn(-3)
		urgent.ID = "urgent"
		urgent.Importance = model.ImportanceHigh

		sorted := SortSomeday([]model.Task{urgent, pinnedLow}, scoreToday, DefaultN1, DefaultN2)
		if sorted[0].ID != "pinned" {
			t.Errorf("pinned task should sort first, got %s", sorted[0].ID)
		}
	})

	t.Run("descending score within a partition", func(t *testing.T) {
		far := taskDueIn(30)
		far.ID = "far"
		soon := taskDueIn(0)
		soon.ID = "soon"

		sorted := SortSomeday([]model.Task{far, soon}, scoreToday, DefaultN1, DefaultN2)
		if sorted[0].ID != "soon" || sorted[1].ID != "far" {
			t.Errorf("got order %s, %s", sorted[0].ID, sorted[1].ID)
		}
	})

	t.Run("stable on ties and leaves input untouched", func(t *testing.T) {
		a := model.Task{ID: "a", Importance: model.ImportanceMid}
		b := model.Task{ID: "b", Importance: model.ImportanceMid}
		input := []model.Task{a, b}

		sorted := SortSomeday(input, scoreToday, DefaultN1, DefaultN2)
		if sorted[0].ID != "a" || sorted[1].ID != "b" {
			t.Errorf("tie order changed: %s, %s", sorted[0].ID, sorted[1].ID)
		}
		if input[0].ID != "a" || input[1].ID != "b" {
			t.Error("input slice was reordered")
		}
	})
}
