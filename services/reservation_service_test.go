package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/realtime"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

var codePattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

func countRows(t *testing.T, env *testEnv, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(model).Count(&n).Error)
	return n
}

func TestCreateReservation_Succeeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.reservations.Create(ctx, validInput())
	require.NoError(t, err)

	assert.NotZero(t, res.ID)
	assert.Equal(t, models.ReservationPending, res.Status)
	assert.Regexp(t, codePattern, res.ConfirmationCode)
	assert.Equal(t, "ada@example.com", res.Email)
	assert.Equal(t, "website", res.Source)
	assert.Equal(t, models.DefaultReservationDuration, res.EstimatedDuration)
	require.NotNil(t, res.EndTime)
	assert.Equal(t, "20:30", *res.EndTime)

	history, err := env.reservations.History(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ReservationPending, history[0].PreviousStatus)
	assert.Equal(t, models.ReservationPending, history[0].NewStatus)
	require.NotNil(t, history[0].Reason)
	assert.Equal(t, "Initial reservation creation", *history[0].Reason)

	assert.Equal(t, []string{realtime.EventNewReservation}, env.notifier.types())
}

func TestCreateReservation_AcceptsSecondsAndToday(t *testing.T) {
	env := newTestEnv(t)
	in := validInput()
	in.Date = "2030-01-10"
	in.Time = "18:15:00"
	in.EstimatedDuration = 120

	res, err := env.reservations.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "18:15", res.Time)
	assert.Equal(t, "20:15", *res.EndTime)
}

func TestCreateReservation_TodayFollowsClockLocation(t *testing.T) {
	env := newTestEnv(t)
	// 23:30 UTC on the 10th is already the 11th two hours east.
	east := time.FixedZone("UTC+2", 2*60*60)
	late := time.Date(2030, 1, 10, 23, 30, 0, 0, time.UTC)
	env.reservations.WithClock(func() time.Time { return late.In(east) })

	in := validInput()
	in.Date = "2030-01-10"
	_, err := env.reservations.Create(context.Background(), in)
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	in.Date = "2030-01-11"
	_, err = env.reservations.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateReservation_CodesAreUnique(t *testing.T) {
	env := newTestEnv(t)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		res, err := env.reservations.Create(context.Background(), validInput())
		require.NoError(t, err)
		assert.False(t, seen[res.ConfirmationCode])
		seen[res.ConfirmationCode] = true
	}
}

func TestCreateReservation_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateReservationInput)
		field  string
	}{
		{"past date", func(in *CreateReservationInput) { in.Date = "2030-01-09" }, "date"},
		{"bad date", func(in *CreateReservationInput) { in.Date = "12/01/2030" }, "date"},
		{"bad time", func(in *CreateReservationInput) { in.Time = "7pm" }, "time"},
		{"zero guests", func(in *CreateReservationInput) { in.Guests = 0 }, "guests"},
		{"negative guests", func(in *CreateReservationInput) { in.Guests = -2 }, "guests"},
		{"bad email", func(in *CreateReservationInput) { in.Email = "not-an-email" }, "email"},
		{"missing name", func(in *CreateReservationInput) { in.Name = "" }, "name"},
		{"missing phone", func(in *CreateReservationInput) { in.Phone = "" }, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			in := validInput()
			tt.mutate(&in)

			_, err := env.reservations.Create(context.Background(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, utils.ErrInvalidArgument)

			var ve *utils.ValidationError
			require.True(t, errors.As(err, &ve))
			require.NotEmpty(t, ve.Fields)
			assert.Equal(t, tt.field, ve.Fields[0].Field)

			assert.Zero(t, countRows(t, env, &models.Reservation{}))
			assert.Zero(t, countRows(t, env, &models.ReservationHistory{}))
			assert.Empty(t, env.notifier.types())
		})
	}
}

func TestCreateReservation_TableAlreadyBooked(t *testing.T) {
	env := newTestEnv(t)
	tables := env.seedFloor(t)
	ctx := context.Background()
	tableID := tables["T4a"].ID

	in := validInput()
	in.AssignedTableID = &tableID
	_, err := env.reservations.Create(ctx, in)
	require.NoError(t, err)

	_, err = env.reservations.Create(ctx, in)
	assert.ErrorIs(t, err, utils.ErrConflict)
	assert.Equal(t, int64(1), countRows(t, env, &models.Reservation{}))

	in.Guests = 5
	_, err = env.reservations.Create(ctx, in)
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	missing := uint(9999)
	in.AssignedTableID = &missing
	_, err = env.reservations.Create(ctx, in)
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)
}

func TestSetStatus_FullLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	res, err := env.reservations.Create(ctx, validInput())
	require.NoError(t, err)

	reason := "called ahead"
	confirmed, err := env.reservations.SetStatus(ctx, res.ID, StatusUpdateInput{Status: "confirmed", Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, confirmed.Status)
	assert.Nil(t, confirmed.ArrivalTime)

	seated, err := env.reservations.SetStatus(ctx, res.ID, StatusUpdateInput{Status: "seated"})
	require.NoError(t, err)
	require.NotNil(t, seated.ArrivalTime)
	assert.True(t, seated.ArrivalTime.Equal(fixedNow))

	completed, err := env.reservations.SetStatus(ctx, res.ID, StatusUpdateInput{Status: "completed"})
	require.NoError(t, err)
	require.NotNil(t, completed.DepartureTime)
	assert.True(t, completed.DepartureTime.Equal(fixedNow))

	history, err := env.reservations.History(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	pairs := [][2]models.ReservationStatus{
		{models.ReservationPending, models.ReservationPending},
		{models.ReservationPending, models.ReservationConfirmed},
		{models.ReservationConfirmed, models.ReservationSeated},
		{models.ReservationSeated, models.ReservationCompleted},
	}
	for i, p := range pairs {
		assert.Equal(t, p[0], history[i].PreviousStatus, "history row %d", i)
		assert.Equal(t, p[1], history[i].NewStatus, "history row %d", i)
	}
	require.NotNil(t, history[1].Reason)
	assert.Equal(t, "called ahead", *history[1].Reason)

	assert.Equal(t, []string{
		realtime.EventNewReservation,
		realtime.EventReservationStatusUpdated,
		realtime.EventReservationStatusUpdated,
		realtime.EventReservationStatusUpdated,
	}, env.notifier.types())
}

func TestSetStatus_AcceptsAnyEdge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	res, err := env.reservations.Create(ctx, validInput())
	require.NoError(t, err)

	steps := []models.ReservationStatus{
		models.ReservationPending,
		models.ReservationCompleted,
		models.ReservationConfirmed,
	}
	for _, status := range steps {
		got, err := env.reservations.SetStatus(ctx, res.ID, StatusUpdateInput{Status: string(status)})
		require.NoError(t, err, status)
		assert.Equal(t, status, got.Status)
	}

	history, err := env.reservations.History(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	pairs := [][2]models.ReservationStatus{
		{models.ReservationPending, models.ReservationPending},
		{models.ReservationPending, models.ReservationPending},
		{models.ReservationPending, models.ReservationCompleted},
		{models.ReservationCompleted, models.ReservationConfirmed},
	}
	for i, p := range pairs {
		assert.Equal(t, p[0], history[i].PreviousStatus, "history row %d", i)
		assert.Equal(t, p[1], history[i].NewStatus, "history row %d", i)
	}

	got, err := env.reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, got.Status)
	assert.Equal(t, uint(4), got.Version)
}

func TestSetStatus_UnknownStatusAndMissingReservation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	res, err := env.reservations.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = env.reservations.SetStatus(ctx, res.ID, StatusUpdateInput{Status: "teleported"})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	_, err = env.reservations.SetStatus(ctx, 4242, StatusUpdateInput{Status: "confirmed"})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	assert.Equal(t, int64(1), countRows(t, env, &models.ReservationHistory{}))
}

func TestSetStatus_ReleasesTableForAvailability(t *testing.T) {
	env := newTestEnv(t)
	tables := env.seedFloor(t)
	ctx := context.Background()
	tableID := tables["T2"].ID

	in := validInput()
	in.Guests = 2
	in.AssignedTableID = &tableID
	res, err := env.reservations.Create(ctx, in)
	require.NoError(t, err)

	available, err := env.availability.AvailableTables(ctx, in.Date, in.Time, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"T4a", "T4b"}, tableNumbers(available))

	_, err = env.reservations.SetStatus(ctx, res.ID, StatusUpdateInput{Status: "cancelled"})
	require.NoError(t, err)

	available, err = env.availability.AvailableTables(ctx, in.Date, in.Time, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"T2", "T4a", "T4b"}, tableNumbers(available))
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	res, err := env.reservations.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = env.reservations.Search(ctx, " a ")
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	_, err = env.reservations.Search(ctx, "é")
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	_, err = env.reservations.Search(ctx, "éa")
	assert.NoError(t, err)

	found, err := env.reservations.Search(ctx, "LOVELACE")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = env.reservations.Search(ctx, res.ConfirmationCode[:4])
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = env.reservations.Search(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestUpcoming(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	later := validInput()
	later.Date = "2030-01-20"
	today := validInput()
	today.Date = "2030-01-10"
	today.Time = "21:00"
	gone := validInput()
	gone.Date = "2030-01-11"

	_, err := env.reservations.Create(ctx, later)
	require.NoError(t, err)
	_, err = env.reservations.Create(ctx, today)
	require.NoError(t, err)
	cancelled, err := env.reservations.Create(ctx, gone)
	require.NoError(t, err)
	_, err = env.reservations.SetStatus(ctx, cancelled.ID, StatusUpdateInput{Status: "no_show"})
	require.NoError(t, err)

	out, err := env.reservations.Upcoming(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2030-01-10", out[0].Date)
	assert.Equal(t, "2030-01-20", out[1].Date)
}

func TestConfirmationLookupAndQR(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	res, err := env.reservations.Create(ctx, validInput())
	require.NoError(t, err)

	got, err := env.reservations.GetByConfirmationCode(ctx, res.ConfirmationCode)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)

	_, err = env.reservations.GetByConfirmationCode(ctx, "NOPE0000")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	png, err := env.reservations.ConfirmationQR(ctx, res.ConfirmationCode)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestListByDateAndUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := models.User{Email: "guest@example.com", Username: "guest", Password: "x"}
	require.NoError(t, env.db.Create(&user).Error)

	mine := validInput()
	mine.UserID = &user.ID
	_, err := env.reservations.Create(ctx, mine)
	require.NoError(t, err)
	other := validInput()
	other.Date = "2030-01-13"
	_, err = env.reservations.Create(ctx, other)
	require.NoError(t, err)

	byDate, err := env.reservations.ListByDate(ctx, "2030-01-12")
	require.NoError(t, err)
	assert.Len(t, byDate, 1)

	_, err = env.reservations.ListByDate(ctx, "tomorrow")
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	byUser, err := env.reservations.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, user.ID, *byUser[0].UserID)
}

func TestHistory_MissingReservation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.reservations.History(context.Background(), 77)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
