package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"takt/internal/model"
	"takt/internal/repository"
	"takt/internal/schedule"
	"takt/internal/service"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageName
	stageDuration
	stageImportance
	stageTargetDate
	stagePlacement
	stageDate
	stageTime
	stageRecurType
	stageRecurWeekdays
	stageRecurMonthDay
	stageRecurYearDate
)

const (
	cbDonePrefix    = "done:"
	cbDeletePrefix  = "del:"
	cbApprovePrefix = "ok:"
)

const (
	btnSkip       = "⏭️ Skip"
	btnCancel     = "⏪ Cancel"
	btnSomeday    = "🌱 Someday"
	btnToday      = "📅 Today"
	btnPickDate   = "🗓 Pick a date"
	iconPinned    = "📍"
	iconBullet    = "•"
	iconConflict  = "⚠️"
	iconDone      = "✅"
	iconRecurring = "♻️"
)

type conversationState struct {
	stage conversationStage
	input service.TaskInput
	rule  model.RecurrenceRule
}

// Bot wires the Telegram API to the planner services.
type Bot struct {
	api           *tgbotapi.BotAPI
	taskSvc       *service.TaskService
	plannerSvc    *service.PlannerService
	reminderSvc   *service.ReminderService
	settingsRepo  *repository.SettingsRepository
	holidayRepo   *repository.HolidayRepository
	conversations map[int64]*conversationState
	mu            sync.Mutex
}

func New(token string, taskSvc *service.TaskService, plannerSvc *service.PlannerService, reminderSvc *service.ReminderService, settingsRepo *repository.SettingsRepository, holidayRepo *repository.HolidayRepository) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	logrus.WithField("account", api.Self.UserName).Info("bot authorized")

	return &Bot{
		api:           api,
		taskSvc:       taskSvc,
		plannerSvc:    plannerSvc,
		reminderSvc:   reminderSvc,
		settingsRepo:  settingsRepo,
		holidayRepo:   holidayRepo,
		conversations: make(map[int64]*conversationState),
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	logrus.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				logrus.WithError(err).Warn("handle callback")
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				logrus.WithError(err).Warn("handle message")
			}
		}
	}

	return nil
}

// SendDailyReport pushes today's plan to the chat registered via /start.
func (b *Bot) SendDailyReport(ctx context.Context) error {
	settings, err := b.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if settings.ReportChatID == 0 {
		logrus.Debug("no report chat registered yet, skipping daily report")
		return nil
	}
	text, err := b.reminderSvc.DailySummary(ctx, time.Now())
	if err != nil {
		return err
	}
	return b.sendText(settings.ReportChatID, text)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && isCancelInput(msg.Text) {
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Input cancelled.")
	}

	if msg.IsCommand() {
		logrus.WithFields(logrus.Fields{
			"user":    msg.From.ID,
			"command": msg.Command(),
		}).Info("command")
		return b.handleCommand(ctx, msg)
	}

	if b.hasConversation(msg.From.ID) {
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "I didn't catch that. /add creates a task, /help lists everything.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "today":
		return b.handleToday(ctx, msg)
	case "someday":
		return b.handleSomeday(ctx, msg)
	case "add":
		return b.startAddConversation(msg)
	case "done":
		return b.handleDone(ctx, msg)
	case "delete":
		return b.handleDelete(ctx, msg)
	case "skip":
		return b.handleSkip(ctx, msg)
	case "approve":
		return b.handleApprove(ctx, msg)
	case "holiday":
		return b.handleHoliday(ctx, msg)
	case "report":
		return b.handleReport(ctx, msg)
	case "cancel":
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Input cancelled.")
	default:
		return b.sendText(msg.Chat.ID, "Unknown command, see /help.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if err := b.settingsRepo.SetReportChat(ctx, msg.Chat.ID); err != nil {
		return err
	}
	text := "👋 Hi! I keep your day timeline and someday backlog.\n\n" +
		"• /today — the day's timeline with free slots\n" +
		"• /someday — backlog ranked by urgency\n" +
		"• /add — create a task step by step\n" +
		"• /report — today's summary (also sent every morning)\n" +
		"• /help — everything else"
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Commands</b>\n" +
		"• /today [YYYY-MM-DD] — timeline for a day\n" +
		"• /someday — backlog, pinned first, then by score\n" +
		"• /add — create a task (one-off, someday or recurring)\n" +
		"• /done &lt;id&gt; — mark done; on an occurrence this edits just that day\n" +
		"• /delete &lt;id&gt; — delete; on an occurrence the series survives\n" +
		"• /skip &lt;id&gt; &lt;YYYY-MM-DD&gt; — drop one occurrence of a series\n" +
		"• /approve &lt;id&gt; — accept a booking conflict\n" +
		"• /holiday &lt;YYYY-MM-DD&gt; &lt;name&gt; — annotate a date\n" +
		"• /report — send today's summary now\n" +
		"• /cancel — abort the current input"
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleToday(ctx context.Context, msg *tgbotapi.Message) error {
	now := time.Now()
	date := schedule.FormatDate(now)
	if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
		if _, err := schedule.ParseDate(args); err != nil {
			return b.sendText(msg.Chat.ID, "I need a date like <code>2024-06-03</code>.")
		}
		date = args
	}

	plan, err := b.plannerSvc.PlanForDate(ctx, date, now)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not build the plan: %s", escape(err.Error())))
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, service.BuildSummary(plan, now))
	out.ParseMode = tgbotapi.ModeHTML
	if kb, ok := dayKeyboard(plan); ok {
		out.ReplyMarkup = kb
	}
	_, err = b.api.Send(out)
	return err
}

func (b *Bot) handleSomeday(ctx context.Context, msg *tgbotapi.Message) error {
	now := time.Now()
	plan, err := b.plannerSvc.PlanForDate(ctx, schedule.FormatDate(now), now)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not load the backlog: %s", escape(err.Error())))
	}
	if len(plan.Someday) == 0 {
		return b.sendText(msg.Chat.ID, "🌱 The backlog is empty.")
	}

	var sb strings.Builder
	sb.WriteString("🌱 <b>Someday</b>\n")
	for _, t := range plan.Someday {
		icon := iconBullet
		if t.Pinned {
			icon = iconPinned
		}
		sb.WriteString(fmt.Sprintf("%s %s", icon, escape(t.Name)))
		if t.TargetDate != nil {
			sb.WriteString(fmt.Sprintf(" · 🎯 %s", *t.TargetDate))
		}
		sb.WriteString(fmt.Sprintf("\n   <code>%s</code>\n", t.ID))
	}
	return b.sendText(msg.Chat.ID, strings.TrimSpace(sb.String()))
}

func (b *Bot) handleDone(ctx context.Context, msg *tgbotapi.Message) error {
	id := strings.TrimSpace(msg.CommandArguments())
	if id == "" {
		return b.sendText(msg.Chat.ID, "Give me a task id: /done &lt;id&gt;")
	}
	if err := b.taskSvc.Complete(ctx, id); err != nil {
		return b.replyTaskError(msg.Chat.ID, err)
	}
	return b.sendText(msg.Chat.ID, "✅ Done.")
}

func (b *Bot) handleDelete(ctx context.Context, msg *tgbotapi.Message) error {
	id := strings.TrimSpace(msg.CommandArguments())
	if id == "" {
		return b.sendText(msg.Chat.ID, "Give me a task id: /delete &lt;id&gt;")
	}
	if err := b.taskSvc.Delete(ctx, id); err != nil {
		return b.replyTaskError(msg.Chat.ID, err)
	}
	return b.sendText(msg.Chat.ID, "🗑 Deleted.")
}

func (b *Bot) handleSkip(ctx context.Context, msg *tgbotapi.Message) error {
	parts := strings.Fields(msg.CommandArguments())
	if len(parts) != 2 {
		return b.sendText(msg.Chat.ID, "Usage: /skip &lt;id&gt; &lt;YYYY-MM-DD&gt;")
	}
	if err := b.taskSvc.SkipOccurrence(ctx, parts[0], parts[1]); err != nil {
		return b.replyTaskError(msg.Chat.ID, err)
	}
	return b.sendText(msg.Chat.ID, fmt.Sprintf("%s Skipped %s.", iconRecurring, escape(parts[1])))
}

func (b *Bot) handleApprove(ctx context.Context, msg *tgbotapi.Message) error {
	id := strings.TrimSpace(msg.CommandArguments())
	if id == "" {
		return b.sendText(msg.Chat.ID, "Give me a task id: /approve &lt;id&gt;")
	}
	if err := b.taskSvc.ApproveBooking(ctx, id); err != nil {
		return b.replyTaskError(msg.Chat.ID, err)
	}
	return b.sendText(msg.Chat.ID, "👌 Overlap accepted.")
}

func (b *Bot) handleHoliday(ctx context.Context, msg *tgbotapi.Message) error {
	parts := strings.SplitN(strings.TrimSpace(msg.CommandArguments()), " ", 2)
	if len(parts) != 2 {
		return b.sendText(msg.Chat.ID, "Usage: /holiday &lt;YYYY-MM-DD&gt; &lt;name&gt;")
	}
	if _, err := schedule.ParseDate(parts[0]); err != nil {
		return b.sendText(msg.Chat.ID, "I need a date like <code>2024-06-03</code>.")
	}
	if err := b.holidayRepo.Upsert(ctx, parts[0], strings.TrimSpace(parts[1])); err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not save: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, fmt.Sprintf("🎌 %s is now %s.", escape(parts[0]), escape(parts[1])))
}

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) error {
	text, err := b.reminderSvc.DailySummary(ctx, time.Now())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not build the report: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb.Message == nil {
		return nil
	}
	data := cb.Data
	var reply string
	var err error
	switch {
	case strings.HasPrefix(data, cbDonePrefix):
		err = b.taskSvc.Complete(ctx, strings.TrimPrefix(data, cbDonePrefix))
		reply = "✅ Done."
	case strings.HasPrefix(data, cbDeletePrefix):
		err = b.taskSvc.Delete(ctx, strings.TrimPrefix(data, cbDeletePrefix))
		reply = "🗑 Deleted."
	case strings.HasPrefix(data, cbApprovePrefix):
		err = b.taskSvc.ApproveBooking(ctx, strings.TrimPrefix(data, cbApprovePrefix))
		reply = "👌 Overlap accepted."
	default:
		return nil
	}

	if err != nil {
		reply = "Something went wrong, try the command form."
		logrus.WithError(err).Warn("callback action failed")
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		return err
	}
	return b.sendText(cb.Message.Chat.ID, reply)
}

func (b *Bot) startAddConversation(msg *tgbotapi.Message) error {
	b.setConversation(msg.From.ID, &conversationState{stage: stageName})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 New task.\n<b>Step 1:</b> what's it called?", cancelKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.From.ID)
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageName:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "A task needs a name.", cancelKeyboard())
		}
		state.input.Name = text
		state.stage = stageDuration
		return b.sendWithReplyMarkup(msg.Chat.ID, "⏳ How many minutes will it take? (or Skip for 30)", skipKeyboard())
	case stageDuration:
		if !isSkipInput(text) {
			minutes, err := strconv.Atoi(text)
			if err != nil || minutes <= 0 {
				return b.sendWithReplyMarkup(msg.Chat.ID, "Minutes must be a positive number.", skipKeyboard())
			}
			state.input.DurationMinutes = minutes
		}
		state.stage = stageImportance
		return b.sendWithReplyMarkup(msg.Chat.ID, "🎚 How important is it?", importanceKeyboard())
	case stageImportance:
		switch strings.ToLower(text) {
		case "low":
			state.input.Importance = model.ImportanceLow
		case "high":
			state.input.Importance = model.ImportanceHigh
		default:
			state.input.Importance = model.ImportanceMid
		}
		state.stage = stageTargetDate
		return b.sendWithReplyMarkup(msg.Chat.ID, "🎯 Target date, like <code>2024-06-30</code>? (or Skip)", skipKeyboard())
	case stageTargetDate:
		if !isSkipInput(text) {
			if _, err := schedule.ParseDate(text); err != nil {
				return b.sendWithReplyMarkup(msg.Chat.ID, "Use <code>YYYY-MM-DD</code> or Skip.", skipKeyboard())
			}
			state.input.TargetDate = &text
		}
		state.stage = stagePlacement
		return b.sendWithReplyMarkup(msg.Chat.ID, "📂 Where does it go?", placementKeyboard())
	case stagePlacement:
		switch text {
		case btnSomeday:
			state.input.IsSomeday = true
			state.stage = stageRecurType
			return b.sendWithReplyMarkup(msg.Chat.ID, "🔁 Does it repeat?", recurKeyboard())
		case btnToday:
			date := schedule.FormatDate(time.Now())
			state.input.ScheduledDate = &date
			state.stage = stageTime
			return b.sendWithReplyMarkup(msg.Chat.ID, "🕘 At what time, like <code>09:30</code>? (Skip leaves it unscheduled)", skipKeyboard())
		case btnPickDate:
			state.stage = stageDate
			return b.sendWithReplyMarkup(msg.Chat.ID, "🗓 Which date, like <code>2024-06-03</code>?", cancelKeyboard())
		default:
			return b.sendWithReplyMarkup(msg.Chat.ID, "Pick one of the buttons.", placementKeyboard())
		}
	case stageDate:
		if _, err := schedule.ParseDate(text); err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Use <code>YYYY-MM-DD</code>.", cancelKeyboard())
		}
		state.input.ScheduledDate = &text
		state.stage = stageTime
		return b.sendWithReplyMarkup(msg.Chat.ID, "🕘 At what time, like <code>09:30</code>? (Skip leaves it unscheduled)", skipKeyboard())
	case stageTime:
		if !isSkipInput(text) {
			if _, ok := schedule.MinutesOfDay(text); !ok {
				return b.sendWithReplyMarkup(msg.Chat.ID, "Use <code>HH:MM</code> or Skip.", skipKeyboard())
			}
			state.input.ScheduledTime = &text
		}
		state.stage = stageRecurType
		return b.sendWithReplyMarkup(msg.Chat.ID, "🔁 Does it repeat?", recurKeyboard())
	case stageRecurType:
		return b.handleRecurTypeStage(ctx, msg, state, text)
	case stageRecurWeekdays:
		days, err := parseWeekdays(text)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "List weekday numbers 0-6 (0 = Sunday), e.g. <code>1,3,5</code>.", cancelKeyboard())
		}
		state.rule.DaysOfWeek = days
		return b.finishAdd(ctx, msg, state)
	case stageRecurMonthDay:
		day, err := strconv.Atoi(text)
		if err != nil || day < 1 || day > 31 {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Day of month must be 1-31; short months clamp it.", cancelKeyboard())
		}
		state.rule.DayOfMonth = day
		return b.finishAdd(ctx, msg, state)
	case stageRecurYearDate:
		month, day, err := parseMonthDay(text)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Use <code>MM-DD</code>, e.g. <code>02-29</code>.", cancelKeyboard())
		}
		state.rule.Month = month
		state.rule.DayOfMonth = day
		return b.finishAdd(ctx, msg, state)
	default:
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "Input reset, start again with /add.")
	}
}

func (b *Bot) handleRecurTypeStage(ctx context.Context, msg *tgbotapi.Message, state *conversationState, text string) error {
	switch strings.ToLower(text) {
	case "no", "none", "-", strings.ToLower(btnSkip):
		return b.finishAdd(ctx, msg, state)
	case "daily":
		state.rule.Type = model.RecurDaily
		return b.finishAdd(ctx, msg, state)
	case "weekly":
		state.rule.Type = model.RecurWeekly
		state.stage = stageRecurWeekdays
		return b.sendWithReplyMarkup(msg.Chat.ID, "📆 Which weekdays? Numbers 0-6 (0 = Sunday), e.g. <code>1,3</code>.", cancelKeyboard())
	case "monthly":
		state.rule.Type = model.RecurMonthly
		state.stage = stageRecurMonthDay
		return b.sendWithReplyMarkup(msg.Chat.ID, "📆 Which day of month? (1-31)", cancelKeyboard())
	case "yearly":
		state.rule.Type = model.RecurYearly
		state.stage = stageRecurYearDate
		return b.sendWithReplyMarkup(msg.Chat.ID, "📆 Which date each year? <code>MM-DD</code>", cancelKeyboard())
	default:
		return b.sendWithReplyMarkup(msg.Chat.ID, "Pick one of the buttons.", recurKeyboard())
	}
}

func (b *Bot) finishAdd(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	defer b.clearConversation(msg.From.ID)

	if state.rule.Type != "" && state.rule.Type != model.RecurNone {
		rule := state.rule
		state.input.Recurrence = &rule
	}

	task, err := b.taskSvc.Create(ctx, state.input)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not save the task: %s", escape(err.Error())))
	}

	var sb strings.Builder
	sb.WriteString("✅ <b>Task saved</b>\n")
	sb.WriteString(fmt.Sprintf("• <b>Name:</b> %s\n", escape(task.Name)))
	sb.WriteString(fmt.Sprintf("• <b>Duration:</b> %d min\n", task.DurationMinutes))
	sb.WriteString(fmt.Sprintf("• <b>Importance:</b> %s\n", task.Importance))
	if task.TargetDate != nil {
		sb.WriteString(fmt.Sprintf("• <b>Target:</b> %s\n", *task.TargetDate))
	}
	switch {
	case task.IsRecurring():
		sb.WriteString(fmt.Sprintf("• <b>Repeats:</b> %s\n", task.Recurrence.Type))
	case task.IsSomeday:
		sb.WriteString("• <b>Backlog:</b> someday\n")
	case task.ScheduledDate != nil && task.ScheduledTime != nil:
		sb.WriteString(fmt.Sprintf("• <b>Scheduled:</b> %s %s\n", *task.ScheduledDate, *task.ScheduledTime))
	case task.ScheduledDate != nil:
		sb.WriteString(fmt.Sprintf("• <b>Scheduled:</b> %s, time open\n", *task.ScheduledDate))
	}
	sb.WriteString(fmt.Sprintf("• <b>ID:</b> <code>%s</code>", task.ID))

	out := tgbotapi.NewMessage(msg.Chat.ID, sb.String())
	out.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	out.ParseMode = tgbotapi.ModeHTML
	_, err = b.api.Send(out)
	return err
}

func (b *Bot) replyTaskError(chatID int64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return b.sendText(chatID, "Task not found.")
	}
	return b.sendText(chatID, fmt.Sprintf("Error: %s", escape(err.Error())))
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[userID]
	return ok
}

func (b *Bot) getConversation(userID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}

// dayKeyboard builds per-task action buttons for a day view. Conflicting
// unapproved tasks get an extra accept button.
func dayKeyboard(plan *service.DayPlan) (tgbotapi.InlineKeyboardMarkup, bool) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range plan.Scheduled {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(iconDone+" "+truncate(t.Name, 20), cbDonePrefix+t.ID),
			tgbotapi.NewInlineKeyboardButtonData("🗑", cbDeletePrefix+t.ID),
		}
		if _, ok := plan.Conflicts[t.ID]; ok && !t.BookingApproved {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(iconConflict+" accept", cbApprovePrefix+t.ID))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func importanceKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("low"),
			tgbotapi.NewKeyboardButton("mid"),
			tgbotapi.NewKeyboardButton("high"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func placementKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSomeday),
			tgbotapi.NewKeyboardButton(btnToday),
			tgbotapi.NewKeyboardButton(btnPickDate),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func recurKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("no"),
			tgbotapi.NewKeyboardButton("daily"),
			tgbotapi.NewKeyboardButton("weekly"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("monthly"),
			tgbotapi.NewKeyboardButton("yearly"),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func isSkipInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "-" || value == strings.ToLower(btnSkip) || value == "skip"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancel) || value == "cancel"
}

// parseWeekdays parses "1,3,5" into weekday numbers.
func parseWeekdays(text string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(text, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || day < 0 || day > 6 {
			return nil, fmt.Errorf("bad weekday %q", part)
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no weekdays given")
	}
	return days, nil
}

// parseMonthDay parses "MM-DD".
func parseMonthDay(text string) (month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(text), "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected MM-DD")
	}
	month, err = strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("bad month %q", parts[0])
	}
	day, err = strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("bad day %q", parts[1])
	}
	return month, day, nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= maxLen {
		return string(runes)
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func escape(s string) string {
	return html.EscapeString(s)
}
