package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	categorydomain "github.com/smallbiznis/cosmocats/internal/category/domain"
	productdomain "github.com/smallbiznis/cosmocats/internal/product/domain"
	"gorm.io/gorm"
)

type sampleProduct struct {
	Name        string
	Description string
	Price       string
	Quantity    int
	Category    categorydomain.Type
}

var sampleProducts = []sampleProduct{
	{
		Name:        "Galaxy Star Ball",
		Description: "Anti-gravity ball that floats among the stars",
		Price:       "29.99",
		Quantity:    50,
		Category:    categorydomain.TypeAntiGravityToys,
	},
	{
		Name:        "Cosmic Milk",
		Description: "Fresh milk from the cosmic dairy of the outer rim",
		Price:       "15.50",
		Quantity:    100,
		Category:    categorydomain.TypeCosmicFood,
	},
	{
		Name:        "Space Laser",
		Description: "Laser pointer with a range of one light minute",
		Price:       "12.75",
		Quantity:    25,
		Category:    categorydomain.TypeSpaceAccessories,
	},
}

// CategoryDescription is the description given to categories created at startup.
func CategoryDescription(t categorydomain.Type) string {
	return fmt.Sprintf("%s - Intergalactic category", t)
}

// EnsureCategories creates one category per type when it is missing.
func EnsureCategories(ctx context.Context, db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range categorydomain.Types {
			if _, err := ensureCategoryTx(ctx, tx, node, t); err != nil {
				return err
			}
		}
		return nil
	})
}

// EnsureSampleProducts inserts the demo catalog, skipping products that
// already exist in their category.
func EnsureSampleProducts(ctx context.Context, db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sample := range sampleProducts {
			category, err := ensureCategoryTx(ctx, tx, node, sample.Category)
			if err != nil {
				return err
			}

			var count int64
			err = tx.WithContext(ctx).
				Model(&productdomain.Product{}).
				Where("name = ? AND category_id = ?", sample.Name, category.ID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			now := time.Now().UTC()
			product := productdomain.Product{
				ID:          node.Generate().Int64(),
				Name:        sample.Name,
				Description: sample.Description,
				Price:       decimal.RequireFromString(sample.Price),
				Quantity:    sample.Quantity,
				CategoryID:  category.ID,
				Status:      productdomain.StatusAvailable,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.WithContext(ctx).Create(&product).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureCategoryTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, t categorydomain.Type) (*categorydomain.Category, error) {
	var category categorydomain.Category
	err := tx.WithContext(ctx).Where("type = ?", t).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	category = categorydomain.Category{
		ID:          node.Generate().Int64(),
		Type:        t,
		Description: CategoryDescription(t),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
