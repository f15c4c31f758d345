package models

import (
	"fmt"
	"time"
)

type Reservation struct {
	ID      uint              `gorm:"primaryKey" json:"id"`
	Name    string            `gorm:"type:varchar(255);not null" json:"name"`
	Date    time.Time         `gorm:"not null" json:"date"`
	Day     string            `gorm:"type:varchar(10);not null;index" json:"day"`
	Type    ReservationType   `gorm:"type:varchar(20);not null" json:"type"`
	TableID *uint             `gorm:"index" json:"tableId"`
	Table   *Table            `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	UserID  *uint             `gorm:"index" json:"userId"`
	User    *User             `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"user,omitempty"`
	Guests  *int              `json:"guests,omitempty"`
	Status  ReservationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	// ActiveSlot is set only while the reservation holds its table for the day.
	ActiveSlot *string   `gorm:"type:varchar(40);uniqueIndex" json:"-"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SlotKey identifies one table on one calendar day.
func SlotKey(tableID uint, day Day) string {
	return fmt.Sprintf("%d:%s", tableID, day)
}
