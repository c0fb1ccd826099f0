package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

const reminderBatch = 200

var reminderTemplate = template.Must(template.New("reminder").Parse(`<p>Hello {{.Name}},</p>
<p>This is a reminder of your table for {{.Guests}} on {{.Date}} at {{.Time}}.</p>
<p>Confirmation code: <strong>{{.ConfirmationCode}}</strong></p>
<p>If your plans have changed, please let us know so we can offer the table to another guest.</p>`))

// ReminderService emails guests the day before their reservation.
type ReminderService struct {
	reservations *repository.ReservationRepo
	mailer       Mailer
	now          func() time.Time
	scheduler    gocron.Scheduler
}

func NewReminderService(reservations *repository.ReservationRepo, mailer Mailer) *ReminderService {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &ReminderService{reservations: reservations, mailer: mailer, now: time.Now}
}

func (s *ReminderService) WithClock(now func() time.Time) *ReminderService {
	s.now = now
	return s
}

// SendDue mails every open reservation dated tomorrow that has not been reminded yet and
// returns how many were sent. A failed send leaves the reservation for the next run.
func (s *ReminderService) SendDue(ctx context.Context) (int, error) {
	tomorrow := s.now().AddDate(0, 0, 1).Format(dateLayout)
	due, err := s.reservations.DueForReminder(ctx, tomorrow, occupyingStatuses, reminderBatch)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		res := &due[i]
		if err := s.remind(res); err != nil {
			utils.ErrorLogger.Warnf("reminder for reservation %d failed: %v", res.ID, err)
			continue
		}
		if err := s.reservations.MarkReminderSent(ctx, res.ID); err != nil {
			utils.ErrorLogger.Warnf("mark reminder sent for reservation %d: %v", res.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		utils.InfoLogger.Printf("Sent %d reservation reminders for %s", sent, tomorrow)
	}
	return sent, nil
}

func (s *ReminderService) remind(res *models.Reservation) error {
	var body bytes.Buffer
	if err := reminderTemplate.Execute(&body, res); err != nil {
		return fmt.Errorf("render reminder: %w", err)
	}
	return s.mailer.Send(res.Email, "Your reservation tomorrow ("+res.ConfirmationCode+")", body.String())
}

// Start runs SendDue every interval until Stop is called.
func (s *ReminderService) Start(interval time.Duration, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return fmt.Errorf("create reminder scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			if _, err := s.SendDue(ctx); err != nil {
				utils.ErrorLogger.Errorf("reminder run failed: %v", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}

	s.scheduler = scheduler
	scheduler.Start()
	utils.InfoLogger.Printf("Reminder job scheduled every %s", interval)
	return nil
}

func (s *ReminderService) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}
