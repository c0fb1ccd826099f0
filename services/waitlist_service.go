package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/realtime"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type AddWaitlistInput struct {
	Name              string  `json:"name" validate:"required,max=100"`
	Phone             string  `json:"phone" validate:"required,max=20"`
	Email             *string `json:"email" validate:"omitempty,email"`
	PartySize         int     `json:"partySize" validate:"required,gte=1"`
	EstimatedWaitTime *int    `json:"estimatedWaitTime" validate:"omitempty,gte=0"`
	Notes             *string `json:"notes"`
}

type WaitlistStatusInput struct {
	Status string `json:"status"`
}

// WaitlistService manages walk-in guests waiting for a table.
type WaitlistService struct {
	waitlist *repository.WaitlistRepo
	notifier Notifier
	now      func() time.Time
}

func NewWaitlistService(waitlist *repository.WaitlistRepo, notifier Notifier) *WaitlistService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &WaitlistService{waitlist: waitlist, notifier: notifier, now: time.Now}
}

func (s *WaitlistService) WithClock(now func() time.Time) *WaitlistService {
	s.now = now
	return s
}

func (s *WaitlistService) Add(ctx context.Context, in AddWaitlistInput) (*models.WaitlistEntry, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	entry := &models.WaitlistEntry{}
	if err := copier.Copy(entry, &in); err != nil {
		return nil, fmt.Errorf("copy waitlist input: %w", err)
	}
	entry.Name = strings.TrimSpace(in.Name)
	entry.Phone = strings.TrimSpace(in.Phone)
	entry.Status = models.WaitlistWaiting
	entry.CheckInTime = s.now()

	if err := s.waitlist.Add(ctx, entry); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Waitlist entry %d added for party of %d", entry.ID, entry.PartySize)
	s.notifier.Broadcast(realtime.EventNewWaitlist, entry)
	return entry, nil
}

// SetStatus records a waitlist status. Seating stamps seatedTime and leaving stamps leftTime.
func (s *WaitlistService) SetStatus(ctx context.Context, id uint, in WaitlistStatusInput) (*models.WaitlistEntry, error) {
	status := models.WaitlistStatus(strings.TrimSpace(in.Status))
	if !status.Valid() {
		return nil, utils.NewValidationError("status", "must be one of: waiting, notified, seated, left, cancelled")
	}

	now := s.now()
	fields := map[string]interface{}{"status": status, "updated_at": now}
	switch status {
	case models.WaitlistSeated:
		fields["seated_time"] = now
	case models.WaitlistLeft:
		fields["left_time"] = now
	case models.WaitlistNotified:
		fields["notification_sent"] = true
	}

	entry, err := s.waitlist.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Waitlist entry %d is now %s", id, status)
	s.notifier.Broadcast(realtime.EventWaitlistStatusUpdated, entry)
	return entry, nil
}

// Current lists guests still waiting, in arrival order.
func (s *WaitlistService) Current(ctx context.Context) ([]models.WaitlistEntry, error) {
	out, err := s.waitlist.Current(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.WaitlistEntry{}
	}
	return out, nil
}
