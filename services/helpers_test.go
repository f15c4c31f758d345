package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-booking/config"
	"github.com/yeremiapane/restaurant-booking/database"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *repository.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_foreign_keys=1", name)

	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return repository.NewStore(db)
}

func seedUser(t *testing.T, store *repository.Store, email string, role models.Role) *models.Identity {
	t.Helper()
	u := &models.User{Name: strings.Split(email, "@")[0], Email: email, Password: "x", Role: role}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u.Identity()
}

func seedDish(t *testing.T, store *repository.Store, name, price string, available bool) *models.Dish {
	t.Helper()
	d := &models.Dish{Name: name, Price: models.MustMoney(price), Available: available}
	require.NoError(t, store.CreateDish(context.Background(), d))
	return d
}

func seedTable(t *testing.T, store *repository.Store, name string, seats int, available bool) *models.Table {
	t.Helper()
	tb := &models.Table{Name: name, Seats: seats, Available: available}
	require.NoError(t, store.CreateTable(context.Background(), tb))
	return tb
}

func seedOrder(t *testing.T, store *repository.Store, owner *models.Identity, status models.OrderStatus) *models.Order {
	t.Helper()
	o := &models.Order{Status: status, Total: models.MustMoney("10.00")}
	if owner != nil {
		id := owner.UserID
		o.UserID = &id
	}
	require.NoError(t, store.CreateOrder(context.Background(), o))
	return o
}

func fixedClock(s string) func() time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}
