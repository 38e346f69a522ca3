package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"takt/internal/model"
)

// HolidayRepository stores holiday annotations for calendar dates.
type HolidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// FindByDate returns the holiday on the given date, or nil when the date is
// a plain day.
func (r *HolidayRepository) FindByDate(ctx context.Context, date string) (*model.Holiday, error) {
	var holiday model.Holiday
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&holiday).Error
	switch {
	case err == nil:
		return &holiday, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find holiday: %w", err)
	}
}

func (r *HolidayRepository) ListRange(ctx context.Context, from, to string) ([]model.Holiday, error) {
	var holidays []model.Holiday
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

// Upsert inserts or renames the holiday on a date.
func (r *HolidayRepository) Upsert(ctx context.Context, date, name string) error {
	var holiday model.Holiday
	db := r.db.WithContext(ctx)
	err := db.Where("date = ?", date).First(&holiday).Error
	switch {
	case err == nil:
		holiday.Name = name
		if err := db.Save(&holiday).Error; err != nil {
			return fmt.Errorf("update holiday: %w", err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		holiday = model.Holiday{Date: date, Name: name}
		if err := db.Create(&holiday).Error; err != nil {
			return fmt.Errorf("create holiday: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("find holiday: %w", err)
	}
}
