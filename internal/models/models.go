package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string    `gorm:"not null"                  json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null;check:price>=0"   json:"price"`
	ImageURL    string    `json:"image_url"`
	Stock       uint      `gorm:"default:0"                 json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

type Order struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"index;not null"           json:"user_id"`
	TotalAmount float64   `gorm:"not null"                 json:"total_amount"`
	Status      string    `gorm:"not null;default:pending" json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem rows are written once during order placement and never
// touched again.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint    `gorm:"index;not null"              json:"order_id"`
	ProductID uint    `gorm:"index;not null"              json:"product_id"`
	Quantity  uint    `gorm:"not null;check:quantity>0"   json:"quantity"`
	Price     float64 `gorm:"not null"                    json:"price"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}
