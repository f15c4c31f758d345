package models

type OrderItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	OrderID   uint  `gorm:"not null;index" json:"orderId"`
	DishID    uint  `gorm:"not null;index" json:"dishId"`
	Dish      Dish  `gorm:"foreignKey:DishID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"dish"`
	Qty       int   `gorm:"not null" json:"qty"`
	UnitPrice Money `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
}
