package model

import "time"

// Holiday annotates a calendar date in day views and reports.
type Holiday struct {
	ID        uint   `gorm:"primaryKey"`
	Date      string `gorm:"uniqueIndex"` // YYYY-MM-DD
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
