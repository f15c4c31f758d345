package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-booking/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrate_IsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:migrate_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	m := db.Migrator()
	for _, model := range Models() {
		assert.True(t, m.HasTable(model))
	}
	assert.True(t, m.HasIndex(&models.Reservation{}, "idx_reservations_table_day"))
	assert.True(t, m.HasIndex(&models.OutboxEvent{}, "idx_outbox_pending"))
	assert.True(t, m.HasColumn(&models.Reservation{}, "active_slot"))
}
