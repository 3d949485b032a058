package models

import "time"

// OrderItem is one product reference within an order. Position preserves
// the order in which products were listed at creation time.
type OrderItem struct {
	ID        uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   string `json:"-" gorm:"type:varchar(36);index"`
	Position  int    `json:"-"`
	ProductID string `json:"product_id" gorm:"type:varchar(36)"`
}

// Order is a purchase linking one user to one or more products. The user
// and product references are non-owning: deleting a referenced record does
// not cascade here, so reads must tolerate dangling ids.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Date      time.Time   `json:"date"` // Set at creation, immutable
	Delivered bool        `json:"delivered"`
	UserID    string      `json:"user_id" gorm:"type:varchar(36);index"`
	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderView is the serialized form of an order with its references
// resolved. A deleted user renders as null; deleted products are dropped.
type OrderView struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Delivered bool      `json:"delivered"`
	User      *User     `json:"user"`
	Products  []Product `json:"products"`
}
