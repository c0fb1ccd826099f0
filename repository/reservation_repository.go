package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationRepo reads and writes reservations and their history rows.
type ReservationRepo struct {
	db *gorm.DB
}

func NewReservationRepo(db *gorm.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// StatusChange is the set of columns written by a status transition.
type StatusChange struct {
	Status        models.ReservationStatus
	ArrivalTime   *time.Time
	DepartureTime *time.Time
	UpdatedAt     time.Time
}

// Transaction runs fn with a repository bound to a single database transaction.
func (r *ReservationRepo) Transaction(ctx context.Context, fn func(tx *ReservationRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReservationRepo{db: tx})
	})
}

func (r *ReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error; err != nil {
		return translate(err, "create reservation")
	}
	return nil
}

func (r *ReservationRepo) AppendHistory(ctx context.Context, h *models.ReservationHistory) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(h).Error; err != nil {
		return translate(err, "append reservation history")
	}
	return nil
}

func (r *ReservationRepo) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.WithContext(ctx).Preload("AssignedTable").First(&res, id).Error; err != nil {
		return nil, translate(err, "reservation")
	}
	return &res, nil
}

// GetByIDForUpdate loads a reservation and, on dialects that support it, holds a row lock
// until the surrounding transaction ends.
func (r *ReservationRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Reservation, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var res models.Reservation
	if err := q.First(&res, id).Error; err != nil {
		return nil, translate(err, "reservation")
	}
	return &res, nil
}

func (r *ReservationRepo) GetByConfirmationCode(ctx context.Context, code string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Preload("AssignedTable").
		Where("confirmation_code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&res).Error
	if err != nil {
		return nil, translate(err, "reservation")
	}
	return &res, nil
}

// UpdateStatus writes a status change guarded by the row version. A stale version means
// another writer got there first and yields utils.ErrConflict.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint, version uint, change StatusChange) error {
	updates := map[string]interface{}{
		"status":     change.Status,
		"version":    gorm.Expr("version + 1"),
		"updated_at": change.UpdatedAt,
	}
	if change.ArrivalTime != nil {
		updates["arrival_time"] = *change.ArrivalTime
	}
	if change.DepartureTime != nil {
		updates["departure_time"] = *change.DepartureTime
	}

	res := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if res.Error != nil {
		return translate(res.Error, "update reservation status")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reservation %d was modified concurrently: %w", id, utils.ErrConflict)
	}
	return nil
}

func (r *ReservationRepo) MarkReminderSent(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"reminder_sent": true, "updated_at": time.Now()})
	return notFoundIfEmpty(res, "reservation")
}

func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("time ASC").Order("id ASC").
		Find(&out).Error
	return out, translate(err, "list reservations by date")
}

func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").Order("time ASC").
		Find(&out).Error
	return out, translate(err, "list reservations by user")
}

// ListUpcoming returns reservations on or after fromDate whose status is not excluded.
func (r *ReservationRepo) ListUpcoming(ctx context.Context, fromDate string, excluded []models.ReservationStatus, limit int) ([]models.Reservation, error) {
	var out []models.Reservation
	q := r.db.WithContext(ctx).Where("date >= ?", fromDate)
	if len(excluded) > 0 {
		q = q.Where("status NOT IN ?", excluded)
	}
	err := q.Order("date ASC").Order("time ASC").Limit(limit).Find(&out).Error
	return out, translate(err, "list upcoming reservations")
}

// Search does a case-insensitive substring match over name, email, phone and code.
func (r *ReservationRepo) Search(ctx context.Context, query string, limit int) ([]models.Reservation, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var out []models.Reservation
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(confirmation_code) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("date DESC").Order("time DESC").
		Limit(limit).
		Find(&out).Error
	return out, translate(err, "search reservations")
}

// OccupiedTableIDs returns the tables assigned to reservations at exactly date+time whose
// status is one of statuses.
func (r *ReservationRepo) OccupiedTableIDs(ctx context.Context, date, at string, statuses []models.ReservationStatus) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("date = ? AND time = ? AND assigned_table_id IS NOT NULL", date, at).
		Where("status IN ?", statuses).
		Distinct().
		Pluck("assigned_table_id", &ids).Error
	return ids, translate(err, "occupied tables")
}

func (r *ReservationRepo) History(ctx context.Context, reservationID uint) ([]models.ReservationHistory, error) {
	var out []models.ReservationHistory
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at ASC").Order("id ASC").
		Find(&out).Error
	return out, translate(err, "reservation history")
}

// DueForReminder lists reservations on date in the given statuses that have not had a
// reminder yet.
func (r *ReservationRepo) DueForReminder(ctx context.Context, date string, statuses []models.ReservationStatus, limit int) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.db.WithContext(ctx).
		Where("date = ? AND reminder_sent = ? AND status IN ?", date, false, statuses).
		Order("time ASC").
		Limit(limit).
		Find(&out).Error
	return out, translate(err, "reservations due for reminder")
}
