package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-booking/models"
)

func TestStats_Overview(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	svc := NewStatsService(store)
	admin := seedUser(t, store, "admin@example.com", models.RoleAdmin)
	client := seedUser(t, store, "client@example.com", models.RoleClient)

	seedDish(t, store, "Tarte", "5.00", true)
	seedDish(t, store, "Soupe", "4.00", false)
	seedTable(t, store, "T1", 4, true)
	seedTable(t, store, "T2", 2, false)

	for _, total := range []string{"19.00", "7.15"} {
		o := &models.Order{Status: models.OrderLivree, Total: models.MustMoney(total)}
		require.NoError(t, store.CreateOrder(ctx, o))
	}
	seedOrder(t, store, client, models.OrderPending)
	old := seedOrder(t, store, client, models.OrderCancelled)
	require.NoError(t, store.DB().Model(&models.Order{}).
		Where("id = ?", old.ID).
		Update("created_at", time.Now().UTC().AddDate(0, 0, -30)).Error)

	require.NoError(t, store.CreateReservation(ctx, &models.Reservation{
		Name: "A", Date: time.Now().UTC(), Day: models.DayOf(time.Now()).String(),
		Type: models.ReservationDelivery, Status: models.ReservationConfirmed,
	}))

	st, err := svc.Overview(ctx, StatsInput{}, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Overview.TotalDishes)
	assert.Equal(t, int64(2), st.Overview.TotalTables)
	assert.Equal(t, int64(1), st.Overview.AvailableTables)
	assert.Equal(t, int64(4), st.Overview.TotalOrders)
	assert.Equal(t, int64(1), st.Overview.TotalReservations)
	assert.Equal(t, "26.15", st.Overview.TotalRevenue.StringFixed(2))
	assert.Equal(t, map[string]int64{"LIVREE": 2, "PENDING": 1, "CANCELLED": 1}, st.OrdersByStatus)
	assert.Equal(t, map[string]int64{"CONFIRMED": 1}, st.ReservationsByStatus)
	assert.Equal(t, int64(3), st.RecentOrders)

	since := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	recent, err := svc.Overview(ctx, StatsInput{StartDate: since}, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), recent.Overview.TotalOrders)

	future, err := svc.Overview(ctx, StatsInput{StartDate: "2999-01-01"}, admin)
	require.NoError(t, err)
	assert.Zero(t, future.Overview.TotalOrders)
	assert.True(t, future.Overview.TotalRevenue.IsZero())
	assert.Empty(t, future.OrdersByStatus)
}

func TestStats_Rejects(t *testing.T) {
	store := setupStore(t)
	svc := NewStatsService(store)
	ctx := context.Background()
	admin := seedUser(t, store, "admin@example.com", models.RoleAdmin)
	client := seedUser(t, store, "client@example.com", models.RoleClient)

	_, err := svc.Overview(ctx, StatsInput{}, client)
	requireKind(t, err, KindForbidden)
	_, err = svc.Overview(ctx, StatsInput{}, nil)
	requireKind(t, err, KindForbidden)

	_, err = svc.Overview(ctx, StatsInput{StartDate: "yesterday"}, admin)
	requireKind(t, err, KindValidation)
	_, err = svc.Overview(ctx, StatsInput{StartDate: "2024-06-02", EndDate: "2024-06-01"}, admin)
	requireKind(t, err, KindValidation)

	st, err := svc.Overview(ctx, StatsInput{StartDate: "2024-06-01", EndDate: "2024-06-01"}, admin)
	require.NoError(t, err)
	assert.Zero(t, st.Overview.TotalOrders)
}
