package repository

import (
	"context"

	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
)

type WaitlistRepo struct {
	db *gorm.DB
}

func NewWaitlistRepo(db *gorm.DB) *WaitlistRepo { return &WaitlistRepo{db: db} }

func (r *WaitlistRepo) Add(ctx context.Context, entry *models.WaitlistEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return translate(err, "add waitlist entry")
	}
	return nil
}

func (r *WaitlistRepo) GetByID(ctx context.Context, id uint) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, translate(err, "waitlist entry")
	}
	return &entry, nil
}

// Update writes fields and reloads the entry.
func (r *WaitlistRepo) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.WaitlistEntry, error) {
	res := r.db.WithContext(ctx).Model(&models.WaitlistEntry{}).Where("id = ?", id).Updates(fields)
	if err := notFoundIfEmpty(res, "waitlist entry"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Current lists entries still waiting, first come first served.
func (r *WaitlistRepo) Current(ctx context.Context) ([]models.WaitlistEntry, error) {
	var out []models.WaitlistEntry
	err := r.db.WithContext(ctx).
		Where("status = ?", models.WaitlistWaiting).
		Order("check_in_time ASC").Order("id ASC").
		Find(&out).Error
	return out, translate(err, "current waitlist")
}
