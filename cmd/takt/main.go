package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"takt/internal/bot"
	"takt/internal/config"
	"takt/internal/repository"
	"takt/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("could not read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	config.InitLogger(cfg.LogLevel)

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	taskRepo := repository.NewTaskRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)

	taskSvc := service.NewTaskService(taskRepo)
	plannerSvc := service.NewPlannerService(taskRepo, settingsRepo, holidayRepo)
	reminderSvc := service.NewReminderService(plannerSvc)

	telegramBot, err := bot.New(cfg.TelegramToken, taskSvc, plannerSvc, reminderSvc, settingsRepo, holidayRepo)
	if err != nil {
		logrus.Fatalf("bot: %v", err)
	}

	scheduler := service.NewSchedulerService(time.Local)
	report := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := telegramBot.SendDailyReport(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			logrus.WithError(err).Error("daily report")
		}
	}
	scheduled := false
	if cfg.ReportTime != "" {
		if _, err := scheduler.ScheduleDaily(cfg.ReportTime, report); err != nil {
			logrus.Fatalf("schedule report: %v", err)
		}
		scheduled = true
	}
	if cfg.ReportInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.ReportInterval, report); err != nil {
			logrus.Fatalf("schedule report interval: %v", err)
		}
		scheduled = true
	}
	if scheduled {
		scheduler.Start()
		defer scheduler.Stop()
	}

	logrus.Info("takt started")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logrus.Fatalf("bot stopped with error: %v", err)
	}
	logrus.Info("shutdown complete")
}
