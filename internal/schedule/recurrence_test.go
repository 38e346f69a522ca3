package schedule

import (
	"reflect"
	"testing"
	"time"

	"takt/internal/model"
)

func strPtr(s string) *string { return &s }

func template(id string, rule *model.RecurrenceRule) model.Task {
	return model.Task{
		ID:              id,
		Name:            "task " + id,
		DurationMinutes: 30,
		Importance:      model.ImportanceMid,
		Recurrence:      rule,
	}
}

func datesOf(t *testing.T, tasks []model.Task) []string {
	t.Helper()
	var dates []string
	for _, task := range tasks {
		if task.ScheduledDate == nil {
			t.Fatalf("instance %s has no scheduled date", task.ID)
		}
		dates = append(dates, *task.ScheduledDate)
	}
	return dates
}

func TestExpand_PassesThroughNonRecurring(t *testing.T) {
	plain := model.Task{ID: "a", Name: "one-off", ScheduledDate: strPtr("2024-06-01")}
	noneRule := template("b", &model.RecurrenceRule{Type: model.RecurNone})

	out := Expand([]model.Task{plain, noneRule}, "2024-01-01", "2024-12-31")

	if len(out) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(out))
	}
	if out[0].ID != "a" || out[0].IsInstance {
		t.Errorf("plain task should pass through unchanged, got %+v", out[0])
	}
	if out[1].ID != "b" || out[1].IsInstance {
		t.Errorf("type=none task should pass through unchanged, got %+v", out[1])
	}
}

func TestExpand_Daily(t *testing.T) {
	t.Run("every day", func(t *testing.T) {
		tpl := template("d", &model.RecurrenceRule{Type: model.RecurDaily})
		out := Expand([]model.Task{tpl}, "2024-01-01", "2024-01-07")
		if len(out) != 7 {
			t.Fatalf("expected 7 instances, got %d", len(out))
		}
		for i, inst := range out {
			want := FormatDate(mustDate(t, "2024-01-01").AddDate(0, 0, i))
			if *inst.ScheduledDate != want {
				t.Errorf("instance %d: got date %s, want %s", i, *inst.ScheduledDate, want)
			}
		}
	})

	t.Run("exclude weekends", func(t *testing.T) {
		tpl := template("d", &model.RecurrenceRule{
			Type:        model.RecurDaily,
			ExcludeDays: []int{0, 6},
		})
		// 2024-01-01 is a Monday; the week has one Saturday and one Sunday.
		out := Expand([]model.Task{tpl}, "2024-01-01", "2024-01-07")
		if len(out) != 5 {
			t.Fatalf("expected 5 weekday instances, got %d", len(out))
		}
	})

	t.Run("until caps the series", func(t *testing.T) {
		tpl := template("d", &model.RecurrenceRule{
			Type:  model.RecurDaily,
			Until: strPtr("2024-01-03"),
		})
		out := Expand([]model.Task{tpl}, "2024-01-01", "2024-01-07")
		want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
		if got := datesOf(t, out); !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("until before window yields nothing", func(t *testing.T) {
		tpl := template("d", &model.RecurrenceRule{
			Type:  model.RecurDaily,
			Until: strPtr("2023-12-01"),
		})
		if out := Expand([]model.Task{tpl}, "2024-01-01", "2024-01-07"); len(out) != 0 {
			t.Errorf("expected no instances, got %d", len(out))
		}
	})
}

func TestExpand_Weekly(t *testing.T) {
	t.Run("mondays and wednesdays over two weeks", func(t *testing.T) {
		tpl := template("w", &model.RecurrenceRule{
			Type:       model.RecurWeekly,
			DaysOfWeek: []int{1, 3},
		})
		out := Expand([]model.Task{tpl}, "2024-01-01", "2024-01-14")
		want := []string{"2024-01-01", "2024-01-03", "2024-01-08", "2024-01-10"}
		if got := datesOf(t, out); !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("no weekdays means no instances", func(t *testing.T) {
		tpl := template("w", &model.RecurrenceRule{Type: model.RecurWeekly})
		if out := Expand([]model.Task{tpl}, "2024-01-01", "2024-01-14"); len(out) != 0 {
			t.Errorf("expected no instances, got %d", len(out))
		}
	})
}

func TestExpand_Monthly(t *testing.T) {
	t.Run("day 31 clamps to short months", func(t *testing.T) {
		tpl := template("m", &model.RecurrenceRule{
			Type:       model.RecurMonthly,
			DayOfMonth: 31,
		})
		out := Expand([]model.Task{tpl}, "2024-01-01", "2024-04-30")
		want := []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}
		if got := datesOf(t, out); !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("avoid weekends shifting earlier", func(t *testing.T) {
		tpl := template("m", &model.RecurrenceRule{
			Type:           model.RecurMonthly,
			DayOfMonth:     31,
			AvoidDays:      []int{0, 6},
			AvoidDirection: model.AvoidBefore,
		})
		// 2024-03-31 is a Sunday; shifting earlier lands on Friday the 29th.
		out := Expand([]model.Task{tpl}, "2024-03-01", "2024-03-31")
		want := []string{"2024-03-29"}
		if got := datesOf(t, out); !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("avoid weekends shifting later", func(t *testing.T) {
		tpl := template("m", &model.RecurrenceRule{
			Type:           model.RecurMonthly,
			DayOfMonth:     31,
			AvoidDays:      []int{0, 6},
			AvoidDirection: model.AvoidAfter,
		})
		// Shifting later off Sunday the 31st crosses into April.
		out := Expand([]model.Task{tpl}, "2024-03-01", "2024-04-30")
		want := []string{"2024-04-01", "2024-04-30"}
		if got := datesOf(t, out); !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("avoid set covering every weekday terminates", func(t *testing.T) {
		tpl := template("m", &model.RecurrenceRule{
			Type:           model.RecurMonthly,
			DayOfMonth:     15,
			AvoidDays:      []int{0, 1, 2, 3, 4, 5, 6},
			AvoidDirection: model.AvoidAfter,
		})
		out := Expand([]model.Task{tpl}, "2024-01-01", "2024-01-31")
		// 30 shifts walk the candidate out of the window; the point is that
		// expansion finishes.
		if len(out) != 0 {
			t.Errorf("expected the shifted candidate to leave the window, got %v", datesOf(t, out))
		}
	})
}

func TestExpand_Yearly(t *testing.T) {
	tpl := template("y", &model.RecurrenceRule{
		Type:       model.RecurYearly,
		Month:      2,
		DayOfMonth: 29,
	})
	out := Expand([]model.Task{tpl}, "2023-01-01", "2025-12-31")
	want := []string{"2023-02-28", "2024-02-29", "2025-02-28"}
	if got := datesOf(t, out); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpand_Exceptions(t *testing.T) {
	t.Run("deleted marker removes exactly one occurrence", func(t *testing.T) {
		tpl := template("m", &model.RecurrenceRule{
			Type:       model.RecurMonthly,
			DayOfMonth: 31,
			Exceptions: map[string]model.Exception{
				"2024-01-31": model.DeleteException(),
			},
		})
		out := Expand([]model.Task{tpl}, "2024-01-01", "2024-04-30")
		want := []string{"2024-02-29", "2024-03-31", "2024-04-30"}
		if got := datesOf(t, out); !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("override wins on overlapping fields only", func(t *testing.T) {
		tpl := template("d", &model.RecurrenceRule{
			Type: model.RecurDaily,
			Exceptions: map[string]model.Exception{
				"2024-01-02": model.OverrideException(model.TaskOverride{
					Name:          strPtr("moved standup"),
					ScheduledTime: strPtr("14:00"),
				}),
			},
		})
		out := Expand([]model.Task{tpl}, "2024-01-01", "2024-01-03")
		if len(out) != 3 {
			t.Fatalf("expected 3 instances, got %d", len(out))
		}
		overridden := out[1]
		if overridden.Name != "moved standup" {
			t.Errorf("override name not applied: %q", overridden.Name)
		}
		if overridden.ScheduledTime == nil || *overridden.ScheduledTime != "14:00" {
			t.Errorf("override time not applied: %v", overridden.ScheduledTime)
		}
		if overridden.DurationMinutes != 30 {
			t.Errorf("untouched field changed: duration %d", overridden.DurationMinutes)
		}
		if out[0].Name != "task d" || out[2].Name != "task d" {
			t.Errorf("override leaked onto other instances")
		}
	})
}

func TestExpand_InstanceIdentity(t *testing.T) {
	tpl := template("tpl-1", &model.RecurrenceRule{Type: model.RecurDaily})
	out := Expand([]model.Task{tpl}, "2024-01-05", "2024-01-05")
	if len(out) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(out))
	}
	inst := out[0]
	if inst.ID != "tpl-1_2024-01-05" {
		t.Errorf("instance id = %q", inst.ID)
	}
	if inst.OriginalTaskID != "tpl-1" {
		t.Errorf("original task id = %q", inst.OriginalTaskID)
	}
	if !inst.IsInstance {
		t.Error("instance not flagged")
	}
	if inst.Recurrence != nil {
		t.Error("instance still carries a recurrence rule")
	}
}

func TestExpand_Deterministic(t *testing.T) {
	tasks := []model.Task{
		template("d", &model.RecurrenceRule{Type: model.RecurDaily, ExcludeDays: []int{0}}),
		template("m", &model.RecurrenceRule{Type: model.RecurMonthly, DayOfMonth: 31}),
		{ID: "plain", Name: "plain"},
	}
	first := Expand(tasks, "2024-01-01", "2024-03-31")
	second := Expand(tasks, "2024-01-01", "2024-03-31")
	if !reflect.DeepEqual(first, second) {
		t.Error("expansion is not deterministic for identical inputs")
	}
}

func TestExpand_MalformedWindow(t *testing.T) {
	tasks := []model.Task{
		template("d", &model.RecurrenceRule{Type: model.RecurDaily}),
		{ID: "plain", Name: "plain"},
	}
	out := Expand(tasks, "not-a-date", "2024-01-07")
	if len(out) != 1 || out[0].ID != "plain" {
		t.Errorf("malformed window should only pass through non-recurring tasks, got %d tasks", len(out))
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}
