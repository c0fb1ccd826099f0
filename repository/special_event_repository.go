package repository

import (
	"context"
	"strconv"

	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SpecialEventRepo struct {
	db *gorm.DB
}

func NewSpecialEventRepo(db *gorm.DB) *SpecialEventRepo { return &SpecialEventRepo{db: db} }

// ActivePublic lists public events that have not ended before today.
func (r *SpecialEventRepo) ActivePublic(ctx context.Context, today string) ([]models.SpecialEvent, error) {
	var out []models.SpecialEvent
	err := r.db.WithContext(ctx).
		Where("is_public = ? AND end_date >= ?", true, today).
		Order("start_date ASC").Order("id ASC").
		Find(&out).Error
	return out, translate(err, "list special events")
}

// Get resolves an event by numeric id or by slug.
func (r *SpecialEventRepo) Get(ctx context.Context, idOrSlug string) (*models.SpecialEvent, error) {
	var event models.SpecialEvent
	q := r.db.WithContext(ctx)
	if id, err := strconv.ParseUint(idOrSlug, 10, 64); err == nil {
		q = q.Where("id = ?", id)
	} else {
		q = q.Where("slug = ?", idOrSlug)
	}
	if err := q.First(&event).Error; err != nil {
		return nil, translate(err, "special event")
	}
	return &event, nil
}

// Create writes every column so an explicit isPublic=false is not replaced by the column default.
func (r *SpecialEventRepo) Create(ctx context.Context, event *models.SpecialEvent) error {
	if err := r.db.WithContext(ctx).Select("*").Omit(clause.Associations).Create(event).Error; err != nil {
		return translate(err, "create special event")
	}
	return nil
}
