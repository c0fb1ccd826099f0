package repository

import (
	"context"
	"time"

	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepo serves opening hours and the key/value restaurant settings.
type SettingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) OperatingHours(ctx context.Context) ([]models.OperatingHours, error) {
	var out []models.OperatingHours
	err := r.db.WithContext(ctx).
		Order("day_of_week ASC").Order("open_time ASC").
		Find(&out).Error
	return out, translate(err, "list operating hours")
}

func (r *SettingsRepo) ByCategory(ctx context.Context, category string) ([]models.RestaurantSetting, error) {
	var out []models.RestaurantSetting
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("name ASC").
		Find(&out).Error
	return out, translate(err, "list settings")
}

// Upsert creates or replaces the value of category/name.
func (r *SettingsRepo) Upsert(ctx context.Context, setting *models.RestaurantSetting) error {
	setting.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
	}).Create(setting).Error
	return translate(err, "save setting")
}
