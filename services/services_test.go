package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"gorm.io/gorm"
)

// 2030-01-10 is a Thursday.
var fixedNow = time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type recordedEvent struct {
	Type string
	Data interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) Broadcast(event string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Type: event, Data: data})
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	db           *gorm.DB
	notifier     *recordingNotifier
	reservations *ReservationService
	availability *AvailabilityService
	waitlist     *WaitlistService
	resRepo      *repository.ReservationRepo
	tableRepo    *repository.TableRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	notifier := &recordingNotifier{}
	resRepo := repository.NewReservationRepo(db)
	tableRepo := repository.NewTableRepo(db)

	return &testEnv{
		db:           db,
		notifier:     notifier,
		reservations: NewReservationService(resRepo, tableRepo, notifier).WithClock(fixedClock),
		availability: NewAvailabilityService(tableRepo, repository.NewTimeSlotRepo(db), resRepo),
		waitlist:     NewWaitlistService(repository.NewWaitlistRepo(db), notifier).WithClock(fixedClock),
		resRepo:      resRepo,
		tableRepo:    tableRepo,
	}
}

// seedFloor creates tables numbered by capacity: T2 (2), T4a/T4b (4), T6 (6), T8 (8), and an
// out-of-service 4-top.
func (e *testEnv) seedFloor(t *testing.T) map[string]models.RestaurantTable {
	t.Helper()
	area := models.DiningArea{Name: "Main", IsActive: true, Capacity: 40}
	require.NoError(t, e.db.Create(&area).Error)

	tables := []models.RestaurantTable{
		{DiningAreaID: area.ID, TableNumber: "T6", Capacity: 6, Status: models.TableAvailable, IsActive: true},
		{DiningAreaID: area.ID, TableNumber: "T4b", Capacity: 4, Status: models.TableAvailable, IsActive: true},
		{DiningAreaID: area.ID, TableNumber: "T2", Capacity: 2, Status: models.TableAvailable, IsActive: true},
		{DiningAreaID: area.ID, TableNumber: "T4a", Capacity: 4, Status: models.TableAvailable, IsActive: true},
		{DiningAreaID: area.ID, TableNumber: "T8", Capacity: 8, Status: models.TableAvailable, IsActive: true},
		{DiningAreaID: area.ID, TableNumber: "OOS", Capacity: 4, Status: models.TableMaintenance, IsActive: true},
	}
	require.NoError(t, e.db.Create(&tables).Error)

	byNumber := make(map[string]models.RestaurantTable, len(tables))
	for _, tbl := range tables {
		byNumber[tbl.TableNumber] = tbl
	}
	return byNumber
}

func validInput() CreateReservationInput {
	return CreateReservationInput{
		Name:   "Ada Lovelace",
		Email:  "Ada@Example.com",
		Phone:  "555-0100",
		Date:   "2030-01-12",
		Time:   "19:00",
		Guests: 4,
	}
}
