package models

import (
	"time"
)

type Dish struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Price       Money     `gorm:"type:decimal(10,2);not null" json:"price"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Photo       *string   `gorm:"type:varchar(255)" json:"photo,omitempty"`
	CategoryID  *uint     `gorm:"index" json:"categoryId,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Available   bool      `gorm:"not null" json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
