package services

import (
	"context"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
)

// capacitySlack is how many seats a table may have beyond the party size.
const capacitySlack = 2

// occupyingStatuses are the reservation statuses that hold a table.
var occupyingStatuses = []models.ReservationStatus{models.ReservationPending, models.ReservationConfirmed}

// AvailabilityService answers which tables and time slots fit a party.
type AvailabilityService struct {
	tables       *repository.TableRepo
	slots        *repository.TimeSlotRepo
	reservations *repository.ReservationRepo
}

func NewAvailabilityService(tables *repository.TableRepo, slots *repository.TimeSlotRepo, reservations *repository.ReservationRepo) *AvailabilityService {
	return &AvailabilityService{tables: tables, slots: slots, reservations: reservations}
}

// AvailableTables returns the active, available tables seating partySize to partySize+2 that
// no pending or confirmed reservation holds at exactly date and clock. Smallest tables come
// first, ties broken by table number.
func (s *AvailabilityService) AvailableTables(ctx context.Context, date, clock string, partySize int) ([]models.RestaurantTable, error) {
	day, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}
	at, err := normalizeClock("time", clock)
	if err != nil {
		return nil, err
	}
	if err := validatePartySize("partySize", partySize); err != nil {
		return nil, err
	}

	held, err := s.reservations.OccupiedTableIDs(ctx, day.Format(dateLayout), at, occupyingStatuses)
	if err != nil {
		return nil, err
	}

	tables, err := s.tables.Candidates(ctx, partySize, partySize+capacitySlack, held)
	if err != nil {
		return nil, err
	}
	if tables == nil {
		tables = []models.RestaurantTable{}
	}
	return tables, nil
}

// TimeSlots lists the active slots for the weekday of date, by start time. partySize is
// validated but slots are not filtered by it, and maxReservations is informational.
func (s *AvailabilityService) TimeSlots(ctx context.Context, date string, partySize int) ([]models.TimeSlot, error) {
	day, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}
	if err := validatePartySize("partySize", partySize); err != nil {
		return nil, err
	}

	slots, err := s.slots.ActiveByDay(ctx, int(day.Weekday()))
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	return slots, nil
}

// DiningAreas lists the active dining areas.
func (s *AvailabilityService) DiningAreas(ctx context.Context) ([]models.DiningArea, error) {
	return s.tables.ActiveDiningAreas(ctx)
}

// TablesInArea lists the active tables of a dining area.
func (s *AvailabilityService) TablesInArea(ctx context.Context, areaID uint) ([]models.RestaurantTable, error) {
	if _, err := s.tables.DiningAreaByID(ctx, areaID); err != nil {
		return nil, err
	}
	return s.tables.TablesByArea(ctx, areaID)
}
