package repository

import (
	"context"

	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
)

type TimeSlotRepo struct {
	db *gorm.DB
}

func NewTimeSlotRepo(db *gorm.DB) *TimeSlotRepo { return &TimeSlotRepo{db: db} }

// ActiveByDay lists the active slots of a weekday (0 = Sunday) by start time.
func (r *TimeSlotRepo) ActiveByDay(ctx context.Context, dayOfWeek int) ([]models.TimeSlot, error) {
	var out []models.TimeSlot
	err := r.db.WithContext(ctx).
		Where("day_of_week = ? AND is_active = ?", dayOfWeek, true).
		Order("start_time ASC").
		Find(&out).Error
	return out, translate(err, "list time slots")
}
