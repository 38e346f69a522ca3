package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"takt/internal/model"
)

// SettingsRepository manages the single per-install settings row.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the settings row, creating it with defaults on first use.
func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	db := r.db.WithContext(ctx)
	err := db.First(&settings).Error
	switch {
	case err == nil:
		return &settings, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		settings = model.Settings{N1: 8, N2: 3, DayStart: "06:00", DayEnd: "22:00"}
		if err := db.Create(&settings).Error; err != nil {
			return nil, fmt.Errorf("create settings: %w", err)
		}
		return &settings, nil
	default:
		return nil, fmt.Errorf("load settings: %w", err)
	}
}

func (r *SettingsRepository) Save(ctx context.Context, settings *model.Settings) error {
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// SetReportChat remembers the Telegram chat the morning report goes to.
func (r *SettingsRepository) SetReportChat(ctx context.Context, chatID int64) error {
	settings, err := r.Get(ctx)
	if err != nil {
		return err
	}
	settings.ReportChatID = chatID
	return r.Save(ctx, settings)
}
