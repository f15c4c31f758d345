package services

import (
	"context"
	"time"

	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
)

const recentOrdersWindow = 7 * 24 * time.Hour

type StatsService struct {
	store *repository.Store
	now   func() time.Time
}

func NewStatsService(store *repository.Store) *StatsService {
	return &StatsService{store: store, now: time.Now}
}

type StatsOverview struct {
	TotalDishes       int64        `json:"totalDishes"`
	TotalReservations int64        `json:"totalReservations"`
	TotalOrders       int64        `json:"totalOrders"`
	TotalTables       int64        `json:"totalTables"`
	AvailableTables   int64        `json:"availableTables"`
	TotalRevenue      models.Money `json:"totalRevenue"`
}

type Stats struct {
	Overview             StatsOverview    `json:"overview"`
	OrdersByStatus       map[string]int64 `json:"ordersByStatus"`
	ReservationsByStatus map[string]int64 `json:"reservationsByStatus"`
	RecentOrders         int64            `json:"recentOrders"`
}

type StatsInput struct {
	StartDate string
	EndDate   string
}

// Overview aggregates the dashboard figures. Revenue is the sum of stored
// totals of delivered orders.
func (s *StatsService) Overview(ctx context.Context, in StatsInput, actor *models.Identity) (*Stats, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, newError(KindForbidden, "statistics are restricted to administrators")
	}
	rng, err := parseDateRange(in)
	if err != nil {
		return nil, err
	}

	var st Stats
	steps := []func() error{
		func() (err error) { st.Overview.TotalDishes, err = s.store.CountDishes(ctx); return },
		func() (err error) { st.Overview.TotalReservations, err = s.store.CountReservations(ctx, rng); return },
		func() (err error) { st.Overview.TotalOrders, err = s.store.CountOrders(ctx, rng); return },
		func() (err error) { st.Overview.TotalTables, err = s.store.CountTables(ctx, false); return },
		func() (err error) { st.Overview.AvailableTables, err = s.store.CountTables(ctx, true); return },
		func() error {
			revenue, err := s.store.DeliveredRevenue(ctx, rng)
			st.Overview.TotalRevenue = models.NewMoney(utils.RoundPrice(revenue))
			return err
		},
		func() (err error) { st.OrdersByStatus, err = s.store.OrdersByStatus(ctx, rng); return },
		func() (err error) { st.ReservationsByStatus, err = s.store.ReservationsByStatus(ctx, rng); return },
		func() (err error) {
			st.RecentOrders, err = s.store.CountOrdersSince(ctx, s.now().Add(-recentOrdersWindow))
			return
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return &st, nil
}

// parseDateRange reads inclusive day bounds; the end day is included whole.
func parseDateRange(in StatsInput) (repository.DateRange, error) {
	var rng repository.DateRange
	if in.StartDate != "" {
		d, err := models.ParseDay(in.StartDate)
		if err != nil {
			return rng, newError(KindValidation, "invalid startDate").with("field", "startDate")
		}
		from := d.Start()
		rng.From = &from
	}
	if in.EndDate != "" {
		d, err := models.ParseDay(in.EndDate)
		if err != nil {
			return rng, newError(KindValidation, "invalid endDate").with("field", "endDate")
		}
		to := d.AddDays(1).Start().Add(-time.Nanosecond)
		rng.To = &to
	}
	if rng.From != nil && rng.To != nil && rng.To.Before(*rng.From) {
		return rng, newError(KindValidation, "endDate must not be before startDate")
	}
	return rng, nil
}
