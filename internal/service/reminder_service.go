package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"takt/internal/model"
	"takt/internal/schedule"
)

// ReminderService renders a day plan into the report text sent each morning
// and on /report.
type ReminderService struct {
	planner *PlannerService
}

func NewReminderService(planner *PlannerService) *ReminderService {
	return &ReminderService{planner: planner}
}

// DailySummary computes today's plan and formats it.
func (s *ReminderService) DailySummary(ctx context.Context, now time.Time) (string, error) {
	plan, err := s.planner.PlanForDate(ctx, schedule.FormatDate(now), now)
	if err != nil {
		return "", err
	}
	return BuildSummary(plan, now), nil
}

// BuildSummary formats a day plan as Telegram HTML. It is pure so the
// rendering can be tested without a database.
func BuildSummary(plan *DayPlan, now time.Time) string {
	var b strings.Builder

	b.WriteString("📋 <b>Day plan</b>\n")
	b.WriteString(fmt.Sprintf("🗓 %s", plan.Date))
	if plan.Holiday != nil {
		b.WriteString(fmt.Sprintf(" · 🎌 %s", escape(plan.Holiday.Name)))
	}
	b.WriteString("\n\n")

	b.WriteString("⏱ <b>Timeline</b>\n")
	if len(plan.Timeline) == 0 {
		b.WriteString("— nothing scheduled\n")
	} else {
		for _, entry := range plan.Timeline {
			switch entry.Kind {
			case schedule.EntryTask:
				b.WriteString(formatTimelineTask(*entry.Task, plan.Conflicts))
			case schedule.EntryGap:
				b.WriteString(fmt.Sprintf("· %s free %d min\n", entry.Start, entry.GapMinutes))
			}
		}
	}

	if conflicts := plan.UnapprovedConflicts(); len(conflicts) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ <b>%d unresolved booking conflict(s)</b>\n", len(conflicts)))
	}

	if len(plan.Unscheduled) > 0 {
		b.WriteString("\n📌 <b>Today, time open</b>\n")
		for _, t := range plan.Unscheduled {
			b.WriteString(fmt.Sprintf("• %s (%d min)\n", escape(t.Name), t.DurationMinutes))
		}
	}

	b.WriteString("\n🌱 <b>Someday</b>\n")
	if len(plan.Someday) == 0 {
		b.WriteString("— backlog is empty\n")
	} else {
		for i, t := range plan.Someday {
			if i == 5 {
				b.WriteString(fmt.Sprintf("… and %d more\n", len(plan.Someday)-i))
				break
			}
			b.WriteString(formatSomedayTask(t, now))
		}
	}

	return strings.TrimSpace(b.String())
}

func formatTimelineTask(t model.Task, conflicts map[string]struct{}) string {
	icon := "🟢"
	if t.Completed {
		icon = "✅"
	}
	if _, ok := conflicts[t.ID]; ok && !t.BookingApproved {
		icon = "⚠️"
	}

	start := ""
	end := ""
	if t.ScheduledTime != nil {
		start = *t.ScheduledTime
		if m, ok := schedule.MinutesOfDay(start); ok {
			end = schedule.FormatMinutes(m + t.DurationMinutes)
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s–%s %s", icon, start, end, escape(t.Name)))
	if t.Memo != "" {
		b.WriteString(fmt.Sprintf(" <i>(%s)</i>", escape(t.Memo)))
	}
	b.WriteByte('\n')
	return b.String()
}

func formatSomedayTask(t model.Task, now time.Time) string {
	var b strings.Builder
	if t.Pinned {
		b.WriteString("📍 ")
	} else {
		b.WriteString("• ")
	}
	b.WriteString(escape(t.Name))
	if t.TargetDate != nil {
		if target, err := schedule.ParseDate(*t.TargetDate); err == nil {
			left := schedule.DaysBetween(now, target)
			switch {
			case left < 0:
				b.WriteString(fmt.Sprintf(" — <b>overdue</b> (%s)", *t.TargetDate))
			case left == 0:
				b.WriteString(" — due today")
			default:
				b.WriteString(fmt.Sprintf(" — %s, %d day(s) left", *t.TargetDate, left))
			}
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func escape(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
