package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/cosmocats/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const selectColumns = `SELECT id, order_number, total_amount, status, order_date, created_at, updated_at FROM orders`

func (r *repo) Create(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	err := db.WithContext(ctx).Exec(
		`INSERT INTO orders (id, order_number, total_amount, status, order_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.OrderNumber,
		order.TotalAmount,
		order.Status,
		order.OrderDate,
		order.CreatedAt,
		order.UpdatedAt,
	).Error
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		err := db.WithContext(ctx).Exec(
			`INSERT INTO order_items (id, order_id, product_id, quantity, price_at_order)
			 VALUES (?, ?, ?, ?, ?)`,
			item.ID,
			order.ID,
			item.ProductID,
			item.Quantity,
			item.PriceAtOrder,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Order, error) {
	return r.findOne(ctx, db, selectColumns+` WHERE id = ?`, id)
}

func (r *repo) FindByNumber(ctx context.Context, db *gorm.DB, number string) (*domain.Order, error) {
	return r.findOne(ctx, db, selectColumns+` WHERE order_number = ?`, number)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, query string, args ...any) (*domain.Order, error) {
	var o domain.Order
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&o).Error; err != nil {
		return nil, err
	}
	if o.ID == 0 {
		return nil, nil
	}
	return &o, nil
}

func (r *repo) ListByStatus(ctx context.Context, db *gorm.DB, status domain.Status) ([]domain.Order, error) {
	return r.findMany(ctx, db, selectColumns+` WHERE status = ? ORDER BY order_date DESC, id DESC`, status)
}

func (r *repo) ListBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]domain.Order, error) {
	return r.findMany(ctx, db,
		selectColumns+` WHERE order_date BETWEEN ? AND ? ORDER BY order_date DESC, id DESC`,
		from, to,
	)
}

func (r *repo) ListAboveAmount(ctx context.Context, db *gorm.DB, amount decimal.Decimal) ([]domain.Order, error) {
	return r.findMany(ctx, db, selectColumns+` WHERE total_amount > ? ORDER BY total_amount DESC, id DESC`, amount)
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Order, error) {
	return r.findMany(ctx, db, selectColumns+` ORDER BY order_date DESC, id DESC`)
}

func (r *repo) ListPage(ctx context.Context, db *gorm.DB, beforeID int64, limit int) ([]domain.Order, error) {
	if beforeID == 0 {
		return r.findMany(ctx, db, selectColumns+` ORDER BY id DESC LIMIT ?`, limit)
	}
	return r.findMany(ctx, db, selectColumns+` WHERE id < ? ORDER BY id DESC LIMIT ?`, beforeID, limit)
}

func (r *repo) findMany(ctx context.Context, db *gorm.DB, query string, args ...any) ([]domain.Order, error) {
	var items []domain.Order
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id int64, status domain.Status, updatedAt time.Time) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		status, updatedAt, id,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	if err := db.WithContext(ctx).Exec(`DELETE FROM order_items WHERE order_id = ?`, id).Error; err != nil {
		return 0, err
	}
	res := db.WithContext(ctx).Exec(`DELETE FROM orders WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *repo) LoadItems(ctx context.Context, db *gorm.DB, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	index := make(map[int64]int, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = i
		orders[i].Items = []domain.OrderItem{}
	}

	var items []domain.OrderItem
	err := db.WithContext(ctx).Raw(
		`SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price_at_order, p.name AS product_name
		 FROM order_items oi
		 LEFT JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id IN ?
		 ORDER BY oi.id ASC`,
		ids,
	).Scan(&items).Error
	if err != nil {
		return err
	}

	for _, item := range items {
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return nil
}
