package models

import "time"

const (
	MinTableSeats = 1
	MaxTableSeats = 20
)

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Seats     int       `gorm:"not null" json:"seats"`
	Available bool      `gorm:"not null" json:"available"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
