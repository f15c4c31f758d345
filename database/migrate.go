package database

import (
	"strings"

	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/utils"
	"gorm.io/gorm"
)

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Dish{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.Reservation{},
		&models.OutboxEvent{},
	}
}

type index struct {
	model   interface{}
	name    string
	columns []string
}

// composite indexes the hot read paths rely on
var indexes = []index{
	{&models.Reservation{}, "idx_reservations_table_day", []string{"table_id", "day"}},
	{&models.Reservation{}, "idx_reservations_user_date", []string{"user_id", "date"}},
	{&models.Order{}, "idx_orders_user_status", []string{"user_id", "status"}},
	{&models.OutboxEvent{}, "idx_outbox_pending", []string{"processed", "id"}},
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return err
		}
		sql := "CREATE INDEX " + idx.name + " ON " + stmt.Schema.Table + " (" + strings.Join(idx.columns, ", ") + ")"
		if err := db.Exec(sql).Error; err != nil {
			utils.ErrorLogger.Printf("Error creating index %s: %v", idx.name, err)
			return err
		}
		utils.InfoLogger.Printf("Index %s created", idx.name)
	}
	return nil
}
