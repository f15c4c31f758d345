package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-booking/models"
)

func TestTableAvailability_ForDay(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	tables := NewTableService(store)
	tables.SetClock(fixedClock("2024-06-01T09:00:00Z"))
	reservations := newReservationService(t, store)

	t1 := seedTable(t, store, "T1", 4, true)
	t2 := seedTable(t, store, "T2", 2, true)
	seedTable(t, store, "T3", 6, false)

	_, err := reservations.Create(ctx, dineIn(t1.ID, "2024-06-01T19:00:00Z", 2), nil)
	require.NoError(t, err)
	_, err = reservations.Create(ctx, dineIn(t2.ID, "2024-06-02T19:00:00Z", 2), nil)
	require.NoError(t, err)

	today, err := tables.Availability(ctx, "", nil)
	require.NoError(t, err)
	require.Len(t, today, 3)
	assert.False(t, today[0].AvailableToday)
	assert.Len(t, today[0].Reservations, 1)
	assert.True(t, today[1].AvailableToday)
	assert.False(t, today[2].AvailableToday)

	tomorrow, err := tables.Availability(ctx, "2024-06-02", nil)
	require.NoError(t, err)
	assert.True(t, tomorrow[0].AvailableToday)
	assert.False(t, tomorrow[1].AvailableToday)

	open, err := tables.Availability(ctx, "2024-06-01", boolPtr(true))
	require.NoError(t, err)
	assert.Len(t, open, 2)

	_, err = tables.Availability(ctx, "01/06/2024", nil)
	requireKind(t, err, KindValidation)

	first, err := tables.Availability(ctx, "2024-06-01", nil)
	require.NoError(t, err)
	second, err := tables.Availability(ctx, "2024-06-01", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTableService_CRUD(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	svc := NewTableService(store)

	_, err := svc.Create(ctx, TableInput{Name: " ", Seats: 4})
	requireKind(t, err, KindValidation)
	_, err = svc.Create(ctx, TableInput{Name: "T1", Seats: 0})
	requireKind(t, err, KindValidation)
	_, err = svc.Create(ctx, TableInput{Name: "T1", Seats: models.MaxTableSeats + 1})
	requireKind(t, err, KindValidation)

	table, err := svc.Create(ctx, TableInput{Name: " T1 ", Seats: 4})
	require.NoError(t, err)
	assert.Equal(t, "T1", table.Name)
	assert.True(t, table.Available)

	closed, err := svc.Create(ctx, TableInput{Name: "T2", Seats: 2, Available: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, closed.Available)

	table, err = svc.Update(ctx, table.ID, TableInput{Name: "Fenêtre", Seats: 6})
	require.NoError(t, err)
	assert.Equal(t, "Fenêtre", table.Name)
	assert.Equal(t, 6, table.Seats)
	assert.True(t, table.Available, "availability kept when omitted")

	_, err = svc.Update(ctx, 9999, TableInput{Name: "X", Seats: 2})
	requireKind(t, err, KindNotFound)

	table, err = svc.SetAvailability(ctx, table.ID, false)
	require.NoError(t, err)
	assert.False(t, table.Available)
	_, err = svc.SetAvailability(ctx, 9999, true)
	requireKind(t, err, KindNotFound)

	detail, err := svc.Get(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fenêtre", detail.Name)
	assert.Empty(t, detail.Reservations)

	require.NoError(t, svc.Delete(ctx, closed.ID))
	requireKind(t, svc.Delete(ctx, closed.ID), KindNotFound)
	_, err = svc.Get(ctx, closed.ID)
	requireKind(t, err, KindNotFound)
}

func TestTableService_DeleteWithActiveReservations(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	svc := NewTableService(store)
	reservations := newReservationService(t, store)
	admin := seedUser(t, store, "admin@example.com", models.RoleAdmin)
	table := seedTable(t, store, "T1", 4, true)

	r, err := reservations.Create(ctx, dineIn(table.ID, "2024-06-01T19:00:00Z", 2), nil)
	require.NoError(t, err)

	detail, err := svc.Get(ctx, table.ID)
	require.NoError(t, err)
	require.Len(t, detail.Reservations, 1)
	assert.Equal(t, time.Date(2024, time.June, 1, 19, 0, 0, 0, time.UTC), detail.Reservations[0].Date.UTC())

	requireKind(t, svc.Delete(ctx, table.ID), KindConflict)

	_, err = reservations.UpdateStatus(ctx, r.ID, "CANCELLED", admin)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, table.ID))
}
