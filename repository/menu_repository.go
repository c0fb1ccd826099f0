package repository

import (
	"context"

	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MenuRepo struct {
	db *gorm.DB
}

func NewMenuRepo(db *gorm.DB) *MenuRepo { return &MenuRepo{db: db} }

func (r *MenuRepo) ActiveCategories(ctx context.Context) ([]models.MenuCategory, error) {
	var out []models.MenuCategory
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").Order("name ASC").
		Find(&out).Error
	return out, translate(err, "list menu categories")
}

func (r *MenuRepo) CategoryByID(ctx context.Context, id uint) (*models.MenuCategory, error) {
	var category models.MenuCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err, "menu category")
	}
	return &category, nil
}

// ItemsByCategory lists the available items of a category.
func (r *MenuRepo) ItemsByCategory(ctx context.Context, categoryID uint) ([]models.MenuItem, error) {
	var out []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND is_available = ?", categoryID, true).
		Order("name ASC").
		Find(&out).Error
	return out, translate(err, "list menu items")
}

func (r *MenuRepo) Featured(ctx context.Context) ([]models.MenuItem, error) {
	var out []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("is_featured = ? AND is_available = ?", true, true).
		Order("name ASC").
		Find(&out).Error
	return out, translate(err, "list featured items")
}

func (r *MenuRepo) CreateItem(ctx context.Context, item *models.MenuItem) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return translate(err, "create menu item")
	}
	return nil
}
