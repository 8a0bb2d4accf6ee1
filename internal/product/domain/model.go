package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	categorydomain "github.com/smallbiznis/cosmocats/internal/category/domain"
)

type Status string

const (
	StatusAvailable    Status = "AVAILABLE"
	StatusOutOfStock   Status = "OUT_OF_STOCK"
	StatusDiscontinued Status = "DISCONTINUED"
)

var Statuses = []Status{StatusAvailable, StatusOutOfStock, StatusDiscontinued}

func ParseStatus(raw string) (Status, bool) {
	value := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range Statuses {
		if s == value {
			return s, true
		}
	}
	return "", false
}

type Product struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:ux_products_name_category,priority:1"`
	Description string          `json:"description" gorm:"type:varchar(500);not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	CategoryID  int64           `json:"category_id" gorm:"not null;index;uniqueIndex:ux_products_name_category,priority:2"`
	Status      Status          `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"not null"`

	// CategoryType is read through a join and never written.
	CategoryType categorydomain.Type `json:"category_type" gorm:"->;-:migration"`
}

func (Product) TableName() string { return "products" }

type SalesReport struct {
	ProductName   string          `json:"product_name"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

type PopularProduct struct {
	Name         string              `json:"name"`
	OrderCount   int64               `json:"order_count"`
	CategoryType categorydomain.Type `json:"category_type"`
}
