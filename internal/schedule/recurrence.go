package schedule

import (
	"time"

	"takt/internal/model"
)

// maxAvoidShifts caps weekday-avoidance shifting so that an avoid set
// covering every weekday cannot loop forever; past the cap the last computed
// date is used as-is.
const maxAvoidShifts = 30

// Expand turns recurring templates into dated instances over the inclusive
// window [windowStart, windowEnd]. Non-recurring tasks pass through
// unchanged. The result is a pure function of its inputs; calling it twice
// with the same arguments yields identical output.
//
// Malformed rules (a weekly rule without weekdays, a monthly rule without a
// day of month, an unparseable window) match nothing rather than failing.
func Expand(tasks []model.Task, windowStart, windowEnd string) []model.Task {
	start, errStart := ParseDate(windowStart)
	end, errEnd := ParseDate(windowEnd)
	windowOK := errStart == nil && errEnd == nil

	out := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		t := tasks[i]
		if !t.IsRecurring() {
			out = append(out, t)
			continue
		}
		if windowOK {
			out = append(out, expandTemplate(t, startOfDay(start), endOfDay(end))...)
		}
	}
	return out
}

func expandTemplate(tpl model.Task, start, end time.Time) []model.Task {
	rule := tpl.Recurrence

	if rule.Until != nil {
		until, err := ParseDate(*rule.Until)
		if err != nil {
			return nil
		}
		if u := endOfDay(until); u.Before(end) {
			end = u
		}
	}
	if end.Before(start) {
		return nil
	}

	switch rule.Type {
	case model.RecurDaily:
		return expandDaily(tpl, start, end)
	case model.RecurWeekly:
		return expandWeekly(tpl, start, end)
	case model.RecurMonthly:
		return expandMonthly(tpl, start, end)
	case model.RecurYearly:
		return expandYearly(tpl, start, end)
	default:
		return nil
	}
}

func expandDaily(tpl model.Task, start, end time.Time) []model.Task {
	var out []model.Task
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if weekdayIn(d, tpl.Recurrence.ExcludeDays) {
			continue
		}
		if inst, ok := instantiate(tpl, d); ok {
			out = append(out, inst)
		}
	}
	return out
}

func expandWeekly(tpl model.Task, start, end time.Time) []model.Task {
	if len(tpl.Recurrence.DaysOfWeek) == 0 {
		return nil
	}
	var out []model.Task
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !weekdayIn(d, tpl.Recurrence.DaysOfWeek) {
			continue
		}
		if inst, ok := instantiate(tpl, d); ok {
			out = append(out, inst)
		}
	}
	return out
}

func expandMonthly(tpl model.Task, start, end time.Time) []model.Task {
	rule := tpl.Recurrence
	if rule.DayOfMonth < 1 || rule.DayOfMonth > 31 {
		return nil
	}
	var out []model.Task
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	for m := first; !m.After(end); m = m.AddDate(0, 1, 0) {
		day := rule.DayOfMonth
		if last := daysInMonth(m.Year(), m.Month()); day > last {
			day = last
		}
		candidate := time.Date(m.Year(), m.Month(), day, 0, 0, 0, 0, m.Location())
		candidate = shiftOffAvoidedDays(candidate, rule)
		if candidate.Before(start) || candidate.After(end) {
			continue
		}
		if inst, ok := instantiate(tpl, candidate); ok {
			out = append(out, inst)
		}
	}
	return out
}

func expandYearly(tpl model.Task, start, end time.Time) []model.Task {
	rule := tpl.Recurrence
	if rule.DayOfMonth < 1 || rule.DayOfMonth > 31 || rule.Month < 1 || rule.Month > 12 {
		return nil
	}
	var out []model.Task
	for year := start.Year(); year <= end.Year(); year++ {
		month := time.Month(rule.Month)
		day := rule.DayOfMonth
		// Feb 29 clamps to Feb 28 outside leap years, day 31 to short months.
		if last := daysInMonth(year, month); day > last {
			day = last
		}
		candidate := time.Date(year, month, day, 0, 0, 0, 0, start.Location())
		candidate = shiftOffAvoidedDays(candidate, rule)
		if candidate.Before(start) || candidate.After(end) {
			continue
		}
		if inst, ok := instantiate(tpl, candidate); ok {
			out = append(out, inst)
		}
	}
	return out
}

// shiftOffAvoidedDays moves a candidate one day at a time until its weekday
// leaves the avoid set. Direction "before" walks earlier, anything else
// walks later.
func shiftOffAvoidedDays(d time.Time, rule *model.RecurrenceRule) time.Time {
	if len(rule.AvoidDays) == 0 {
		return d
	}
	step := 1
	if rule.AvoidDirection == model.AvoidBefore {
		step = -1
	}
	for i := 0; i < maxAvoidShifts && weekdayIn(d, rule.AvoidDays); i++ {
		d = d.AddDate(0, 0, step)
	}
	return d
}

// instantiate materializes one occurrence of a template on the given date,
// applying any per-date exception. A deletion exception reports ok=false.
func instantiate(tpl model.Task, date time.Time) (model.Task, bool) {
	dateStr := FormatDate(date)

	inst := tpl
	if exc, ok := tpl.Recurrence.Exceptions[dateStr]; ok {
		if exc.Deleted {
			return model.Task{}, false
		}
		exc.Override.Apply(&inst)
	}

	inst.ID = tpl.ID + "_" + dateStr
	inst.OriginalTaskID = tpl.ID
	inst.ScheduledDate = &dateStr
	inst.IsInstance = true
	inst.Recurrence = nil
	return inst, true
}
