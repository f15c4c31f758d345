package models

import (
	"time"
)

type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    *uint       `gorm:"index" json:"userId"`
	User      *User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"user,omitempty"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Total     Money       `gorm:"type:decimal(10,2);not null" json:"total"`
	Address   *string     `gorm:"type:varchar(255)" json:"address,omitempty"`
	Phone     *string     `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Notes     *string     `gorm:"type:text" json:"notes,omitempty"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
