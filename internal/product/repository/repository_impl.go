package repository

import (
	"context"
	"strings"

	"github.com/smallbiznis/cosmocats/internal/product/domain"
	"github.com/smallbiznis/cosmocats/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const selectColumns = `SELECT p.id, p.name, p.description, p.price, p.quantity, p.category_id,
	p.status, p.created_at, p.updated_at, c.type AS category_type
	FROM products p JOIN categories c ON c.id = p.category_id`

var sortColumns = map[string]string{
	"name":       "p.name",
	"price":      "p.price",
	"quantity":   "p.quantity",
	"created_at": "p.created_at",
	"updated_at": "p.updated_at",
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (id, name, description, price, quantity, category_id, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Quantity,
		product.CategoryID,
		product.Status,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := db.WithContext(ctx).Raw(selectColumns+` WHERE p.id = ?`, id).Scan(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []domain.Product
	err := db.WithContext(ctx).Raw(selectColumns+` WHERE p.id IN ?`, ids).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Product, error) {
	stmt := db.WithContext(ctx).
		Table("products AS p").
		Select(`p.id, p.name, p.description, p.price, p.quantity, p.category_id,
			p.status, p.created_at, p.updated_at, c.type AS category_type`).
		Joins("JOIN categories c ON c.id = p.category_id")

	if name := strings.TrimSpace(filter.Name); name != "" {
		stmt = stmt.Where("LOWER(p.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if filter.CategoryID != nil {
		stmt = stmt.Where("p.category_id = ?", *filter.CategoryID)
	}
	if filter.Status != nil {
		stmt = stmt.Where("p.status = ?", *filter.Status)
	}
	if filter.MinPrice != nil {
		stmt = stmt.Where("p.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		stmt = stmt.Where("p.price <= ?", *filter.MaxPrice)
	}

	stmt = option.ApplyAll(stmt,
		option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, sortColumns, "created_at")),
	)
	// Stable order for rows sharing the sort value.
	stmt = stmt.Order("p.id ASC")

	var items []domain.Product
	if err := stmt.Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ExistsByNameAndCategory(ctx context.Context, db *gorm.DB, name string, categoryID int64, excludeID int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM products WHERE name = ? AND category_id = ? AND id <> ?`,
		name, categoryID, excludeID,
	).Scan(&count).Error
	return count > 0, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET name = ?, description = ?, price = ?, quantity = ?, category_id = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name,
		product.Description,
		product.Price,
		product.Quantity,
		product.CategoryID,
		product.Status,
		product.UpdatedAt,
		product.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM products WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *repo) CountOrderItems(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM order_items WHERE product_id = ?`, id).Scan(&count).Error
	return count, err
}

func (r *repo) FindLowStock(ctx context.Context, db *gorm.DB, threshold int) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).Raw(
		selectColumns+` WHERE p.quantity < ? AND p.status = ? ORDER BY p.quantity ASC, p.id ASC`,
		threshold, domain.StatusAvailable,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) SalesReport(ctx context.Context, db *gorm.DB) ([]domain.SalesReport, error) {
	var rows []domain.SalesReport
	err := db.WithContext(ctx).Raw(
		`SELECT p.name AS product_name,
		        SUM(oi.quantity) AS total_quantity,
		        SUM(oi.quantity * oi.price_at_order) AS total_revenue
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 GROUP BY p.name
		 ORDER BY total_quantity DESC, p.name ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) PopularProducts(ctx context.Context, db *gorm.DB, limit int) ([]domain.PopularProduct, error) {
	stmt := db.WithContext(ctx).
		Table("products AS p").
		Select("p.name AS name, COUNT(oi.id) AS order_count, c.type AS category_type").
		Joins("JOIN categories c ON c.id = p.category_id").
		Joins("JOIN order_items oi ON oi.product_id = p.id").
		Group("p.id, p.name, c.type").
		Having("COUNT(oi.id) > 0").
		Order("order_count DESC").
		Order("p.name ASC")
	stmt = option.ApplyAll(stmt, option.WithLimit(limit))

	var rows []domain.PopularProduct
	if err := stmt.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
