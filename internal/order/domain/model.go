package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

var Statuses = []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

func ParseStatus(raw string) (Status, bool) {
	value := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range Statuses {
		if s == value {
			return s, true
		}
	}
	return "", false
}

type Order struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	OrderNumber string          `json:"order_number" gorm:"type:varchar(50);not null;uniqueIndex:ux_orders_order_number"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	Status      Status          `json:"status" gorm:"type:varchar(20);not null;index"`
	OrderDate   time.Time       `json:"order_date" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"not null"`

	Items []OrderItem `json:"items" gorm:"-"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	OrderID      int64           `json:"order_id" gorm:"not null;index"`
	ProductID    int64           `json:"product_id" gorm:"not null;index"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	PriceAtOrder decimal.Decimal `json:"price_at_order" gorm:"type:decimal(12,2);not null"`

	ProductName string `json:"product_name" gorm:"->;-:migration"`
}

func (OrderItem) TableName() string { return "order_items" }

// LineTotal is the frozen price multiplied by the ordered quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
