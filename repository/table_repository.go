package repository

import (
	"context"
	"time"

	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableRepo covers dining areas and the tables they own.
type TableRepo struct {
	db *gorm.DB
}

func NewTableRepo(db *gorm.DB) *TableRepo { return &TableRepo{db: db} }

func (r *TableRepo) ActiveDiningAreas(ctx context.Context) ([]models.DiningArea, error) {
	var out []models.DiningArea
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&out).Error
	return out, translate(err, "list dining areas")
}

func (r *TableRepo) DiningAreaByID(ctx context.Context, id uint) (*models.DiningArea, error) {
	var area models.DiningArea
	if err := r.db.WithContext(ctx).First(&area, id).Error; err != nil {
		return nil, translate(err, "dining area")
	}
	return &area, nil
}

func (r *TableRepo) TablesByArea(ctx context.Context, areaID uint) ([]models.RestaurantTable, error) {
	var out []models.RestaurantTable
	err := r.db.WithContext(ctx).
		Where("dining_area_id = ? AND is_active = ?", areaID, true).
		Order("table_number ASC").
		Find(&out).Error
	return out, translate(err, "list tables")
}

// Candidates returns active, available tables seating between minCapacity and maxCapacity,
// smallest first. Tables whose id is in exclude are skipped.
func (r *TableRepo) Candidates(ctx context.Context, minCapacity, maxCapacity int, exclude []uint) ([]models.RestaurantTable, error) {
	q := r.db.WithContext(ctx).
		Where("is_active = ? AND status = ?", true, models.TableAvailable).
		Where("capacity >= ? AND capacity <= ?", minCapacity, maxCapacity)
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}

	var out []models.RestaurantTable
	err := q.Order("capacity ASC").Order("table_number ASC").Find(&out).Error
	return out, translate(err, "available tables")
}

func (r *TableRepo) GetByID(ctx context.Context, id uint) (*models.RestaurantTable, error) {
	var table models.RestaurantTable
	if err := r.db.WithContext(ctx).First(&table, id).Error; err != nil {
		return nil, translate(err, "table")
	}
	return &table, nil
}

func (r *TableRepo) Create(ctx context.Context, table *models.RestaurantTable) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(table).Error; err != nil {
		return translate(err, "create table")
	}
	return nil
}

func (r *TableRepo) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&models.RestaurantTable{}).Where("id = ?", id).Updates(fields)
	return notFoundIfEmpty(res, "table")
}

// Deactivate hides a table from availability. Tables referenced by reservations are kept.
func (r *TableRepo) Deactivate(ctx context.Context, id uint) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}
