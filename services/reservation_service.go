package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/realtime"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

const (
	searchLimit     = 50
	upcomingLimit   = 100
	minSearchLength = 2
	codeAttempts    = 3
	qrSize          = 256
	initialReason   = "Initial reservation creation"
	defaultSource   = "website"
)

// closedStatuses never appear in the upcoming list.
var closedStatuses = []models.ReservationStatus{
	models.ReservationCancelled,
	models.ReservationNoShow,
	models.ReservationCompleted,
}

type CreateReservationInput struct {
	UserID            *uint                   `json:"userId"`
	Name              string                  `json:"name" validate:"required,max=100"`
	Email             string                  `json:"email" validate:"required,email,max=255"`
	Phone             string                  `json:"phone" validate:"required,max=20"`
	Date              string                  `json:"date" validate:"required"`
	Time              string                  `json:"time" validate:"required"`
	Guests            int                     `json:"guests" validate:"required,gte=1"`
	SpecialRequests   *string                 `json:"specialRequests"`
	Occasion          *string                 `json:"occasion" validate:"omitempty,max=100"`
	AssignedTableID   *uint                   `json:"tableId"`
	SpecialEventID    *uint                   `json:"specialEventId"`
	EstimatedDuration int                     `json:"estimatedDuration" validate:"omitempty,gte=15,lte=480"`
	Source            string                  `json:"source" validate:"omitempty,max=50"`
	MenuPreferences   *models.MenuPreferences `json:"menuPreferences"`
}

type StatusUpdateInput struct {
	Status      string  `json:"status"`
	Reason      *string `json:"reason"`
	ActorUserID *uint   `json:"userId"`
}

// ReservationService owns the reservation lifecycle: creation, status transitions with their
// audit trail, and the read paths used by guests and staff.
type ReservationService struct {
	reservations *repository.ReservationRepo
	tables       *repository.TableRepo
	notifier     Notifier
	now          func() time.Time
}

func NewReservationService(reservations *repository.ReservationRepo, tables *repository.TableRepo, notifier Notifier) *ReservationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ReservationService{
		reservations: reservations,
		tables:       tables,
		notifier:     notifier,
		now:          time.Now,
	}
}

// WithClock replaces the time source; the clock's location decides what "today" is.
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

func (s *ReservationService) today() string {
	return s.now().Format(dateLayout)
}

func newConfirmationCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// Create validates in, stores a pending reservation together with its first history row and
// announces it. Nothing is written when validation fails.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	day, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	at, err := normalizeClock("time", in.Time)
	if err != nil {
		return nil, err
	}
	date := day.Format(dateLayout)
	if date < s.today() {
		return nil, utils.NewValidationError("date", "cannot be in the past")
	}

	res := &models.Reservation{}
	if err := copier.Copy(res, &in); err != nil {
		return nil, fmt.Errorf("copy reservation input: %w", err)
	}
	res.Name = strings.TrimSpace(in.Name)
	res.Email = strings.ToLower(strings.TrimSpace(in.Email))
	res.Phone = strings.TrimSpace(in.Phone)
	res.Date = date
	res.Time = at
	if res.EstimatedDuration == 0 {
		res.EstimatedDuration = models.DefaultReservationDuration
	}
	end := addMinutes(at, res.EstimatedDuration)
	res.EndTime = &end
	if res.Source == "" {
		res.Source = defaultSource
	}
	res.Status = models.ReservationPending
	res.Version = 1

	if res.AssignedTableID != nil {
		table, err := s.tables.GetByID(ctx, *res.AssignedTableID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.NewValidationError("tableId", "does not exist")
			}
			return nil, err
		}
		if !table.IsActive || table.Capacity < res.Guests {
			return nil, utils.NewValidationError("tableId", "cannot seat this party")
		}
	}

	for attempt := 1; ; attempt++ {
		res.ID = 0
		res.ConfirmationCode = newConfirmationCode()
		err = s.reservations.Transaction(ctx, func(tx *repository.ReservationRepo) error {
			return s.insert(ctx, tx, res)
		})
		if err == nil {
			break
		}
		if errors.Is(err, utils.ErrConstraintViolation) && attempt < codeAttempts && s.codeTaken(ctx, res.ConfirmationCode) {
			continue
		}
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"id":     res.ID,
		"code":   res.ConfirmationCode,
		"date":   res.Date,
		"time":   res.Time,
		"guests": res.Guests,
	}).Info("reservation created")
	s.notifier.Broadcast(realtime.EventNewReservation, res)
	return res, nil
}

func (s *ReservationService) insert(ctx context.Context, tx *repository.ReservationRepo, res *models.Reservation) error {
	if res.AssignedTableID != nil {
		held, err := tx.OccupiedTableIDs(ctx, res.Date, res.Time, occupyingStatuses)
		if err != nil {
			return err
		}
		for _, id := range held {
			if id == *res.AssignedTableID {
				return fmt.Errorf("table %d is already booked at %s %s: %w", id, res.Date, res.Time, utils.ErrConflict)
			}
		}
	}

	if err := tx.Create(ctx, res); err != nil {
		return err
	}
	reason := initialReason
	return tx.AppendHistory(ctx, &models.ReservationHistory{
		ReservationID:   res.ID,
		PreviousStatus:  models.ReservationPending,
		NewStatus:       models.ReservationPending,
		ChangedByUserID: res.UserID,
		Reason:          &reason,
	})
}

func (s *ReservationService) codeTaken(ctx context.Context, code string) bool {
	_, err := s.reservations.GetByConfirmationCode(ctx, code)
	return err == nil
}

// SetStatus moves a reservation to any valid status, including the one it already has, and
// records the change in its history. The read, the version-guarded write and the history
// append share one transaction, so concurrent updates either serialise or fail with
// utils.ErrConflict.
func (s *ReservationService) SetStatus(ctx context.Context, id uint, in StatusUpdateInput) (*models.Reservation, error) {
	status := models.ReservationStatus(strings.TrimSpace(in.Status))
	if !status.Valid() {
		return nil, utils.NewValidationError("status",
			"must be one of: pending, confirmed, seated, completed, cancelled, no_show")
	}

	var (
		previous models.ReservationStatus
		updated  *models.Reservation
	)
	err := s.reservations.Transaction(ctx, func(tx *repository.ReservationRepo) error {
		current, err := tx.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		previous = current.Status

		now := s.now()
		change := repository.StatusChange{Status: status, UpdatedAt: now}
		switch status {
		case models.ReservationSeated:
			change.ArrivalTime = &now
		case models.ReservationCompleted:
			change.DepartureTime = &now
		}
		if err := tx.UpdateStatus(ctx, id, current.Version, change); err != nil {
			return err
		}
		if err := tx.AppendHistory(ctx, &models.ReservationHistory{
			ReservationID:   id,
			PreviousStatus:  current.Status,
			NewStatus:       status,
			ChangedByUserID: in.ActorUserID,
			Reason:          in.Reason,
			CreatedAt:       now,
		}); err != nil {
			return err
		}

		updated, err = tx.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"id":   id,
		"from": previous,
		"to":   status,
	}).Info("reservation status updated")
	s.notifier.Broadcast(realtime.EventReservationStatusUpdated, updated)
	return updated, nil
}

// Search matches q, case-insensitively, against guest name, email, phone and confirmation code.
func (s *ReservationService) Search(ctx context.Context, q string) ([]models.Reservation, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < minSearchLength {
		return nil, utils.NewValidationError("q", fmt.Sprintf("must be at least %d characters", minSearchLength))
	}
	return nonNil(s.reservations.Search(ctx, q, searchLimit))
}

// Upcoming lists open reservations from today on, soonest first.
func (s *ReservationService) Upcoming(ctx context.Context) ([]models.Reservation, error) {
	return nonNil(s.reservations.ListUpcoming(ctx, s.today(), closedStatuses, upcomingLimit))
}

func (s *ReservationService) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

func (s *ReservationService) GetByConfirmationCode(ctx context.Context, code string) (*models.Reservation, error) {
	if strings.TrimSpace(code) == "" {
		return nil, utils.NewValidationError("code", "is required")
	}
	return s.reservations.GetByConfirmationCode(ctx, code)
}

func (s *ReservationService) ListByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	day, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}
	return nonNil(s.reservations.ListByDate(ctx, day.Format(dateLayout)))
}

func (s *ReservationService) ListByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	return nonNil(s.reservations.ListByUser(ctx, userID))
}

// History returns the audit trail of a reservation, oldest first.
func (s *ReservationService) History(ctx context.Context, id uint) ([]models.ReservationHistory, error) {
	if _, err := s.reservations.GetByID(ctx, id); err != nil {
		return nil, err
	}
	out, err := s.reservations.History(ctx, id)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.ReservationHistory{}
	}
	return out, nil
}

// ConfirmationQR renders the confirmation code of an existing reservation as a PNG.
func (s *ReservationService) ConfirmationQR(ctx context.Context, code string) ([]byte, error) {
	res, err := s.GetByConfirmationCode(ctx, code)
	if err != nil {
		return nil, err
	}
	png, err := utils.GenerateQRCode(res.ConfirmationCode, qrSize)
	if err != nil {
		return nil, fmt.Errorf("render qr code: %w", err)
	}
	return png, nil
}

func nonNil(list []models.Reservation, err error) ([]models.Reservation, error) {
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Reservation{}
	}
	return list, nil
}
