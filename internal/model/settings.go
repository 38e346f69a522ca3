package model

import "time"

// Settings is the single per-install settings row.
type Settings struct {
	ID uint `gorm:"primaryKey"`
	// N1 and N2 are the deadline-score day thresholds (defaults 8 and 3).
	N1 int `gorm:"default:8"`
	N2 int `gorm:"default:3"`
	// DayStart/DayEnd bound the rendered day timeline.
	DayStart string `gorm:"default:'06:00'"`
	DayEnd   string `gorm:"default:'22:00'"`
	// ReportChatID is the Telegram chat the morning report goes to;
	// zero until the user runs /start.
	ReportChatID int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
