package schedule

import (
	"sort"
	"time"

	"takt/internal/model"
)

// Default deadline-score thresholds, overridable via settings.
const (
	DefaultN1 = 8
	DefaultN2 = 3
)

// DeadlineScore rates how urgent a task's target date is on a 1..6 scale:
// 6 overdue, 5 due today, 4 due tomorrow, 3 within n1 days, 2 beyond that,
// 1 when no target date is set. today is the caller's reference date.
//
// TODO: n2 is threaded through every call site but the tiers only consult
// n1; decide whether the within-n1 band should split at n2 and either use it
// or drop the parameter.
func DeadlineScore(t model.Task, today time.Time, n1, n2 int) int {
	if t.TargetDate == nil {
		return 1
	}
	target, err := ParseDate(*t.TargetDate)
	if err != nil {
		return 1
	}
	diff := DaysBetween(today, target)
	switch {
	case diff < 0:
		return 6
	case diff == 0:
		return 5
	case diff == 1:
		return 4
	case diff < n1:
		return 3
	default:
		return 2
	}
}

// ImportanceScore weights importance: low 1, mid 2, high 3. Unknown values
// count as mid.
func ImportanceScore(t model.Task) int {
	switch t.Importance {
	case model.ImportanceLow:
		return 1
	case model.ImportanceHigh:
		return 3
	default:
		return 2
	}
}

// TotalScore is the product of deadline urgency and importance weight.
func TotalScore(t model.Task, today time.Time, n1, n2 int) int {
	return DeadlineScore(t, today, n1, n2) * ImportanceScore(t)
}

// SortSomeday returns a copy of the backlog ordered for display: pinned
// tasks first regardless of score, then descending total score. The sort is
// stable, so equal entries keep their input order.
func SortSomeday(tasks []model.Task, today time.Time, n1, n2 int) []model.Task {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pinned != sorted[j].Pinned {
			return sorted[i].Pinned
		}
		return TotalScore(sorted[i], today, n1, n2) > TotalScore(sorted[j], today, n1, n2)
	})
	return sorted
}
