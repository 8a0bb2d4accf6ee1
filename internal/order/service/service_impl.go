package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/cosmocats/internal/clock"
	obslogger "github.com/smallbiznis/cosmocats/internal/observability/logger"
	"github.com/smallbiznis/cosmocats/internal/order/domain"
	productdomain "github.com/smallbiznis/cosmocats/internal/product/domain"
	"github.com/smallbiznis/cosmocats/pkg/db"
	"github.com/smallbiznis/cosmocats/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var maxTotalAmount = decimal.New(1, 10)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Products productdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	products productdomain.Repository
	genID    *snowflake.Node
	clock    clock.Clock

	newNumber func() string
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("order.service"),
		repo:      p.Repo,
		products:  p.Products,
		genID:     p.GenID,
		clock:     p.Clock,
		newNumber: generateOrderNumber,
	}
}

func generateOrderNumber() string {
	return domain.OrderNumberPrefix + strings.ToUpper(uuid.NewString()[:8])
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	if req.TotalAmount != nil && !validTotal(*req.TotalAmount) {
		return nil, domain.ErrInvalidTotalAmount
	}
	if req.TotalAmount == nil && len(req.Items) == 0 {
		return nil, domain.ErrInvalidTotalAmount
	}

	status := domain.StatusPending
	if strings.TrimSpace(req.Status) != "" {
		parsed, ok := domain.ParseStatus(req.Status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		status = parsed
	}

	number := strings.TrimSpace(req.OrderNumber)
	generated := number == ""
	if len(number) > domain.MaxOrderNumberLength {
		return nil, domain.ErrInvalidOrderNumber
	}

	productIDs := make([]int64, 0, len(req.Items))
	quantities := make([]int, 0, len(req.Items))
	for _, item := range req.Items {
		id, err := snowflake.ParseString(strings.TrimSpace(item.ProductID))
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidProduct
		}
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		productIDs = append(productIDs, id.Int64())
		quantities = append(quantities, item.Quantity)
	}

	now := s.clock.Now()
	orderDate := now
	if req.OrderDate != nil && !req.OrderDate.IsZero() {
		orderDate = req.OrderDate.UTC()
	}

	for attempt := 1; ; attempt++ {
		if generated {
			number = s.newNumber()
		}

		order := &domain.Order{
			ID:          s.genID.Generate().Int64(),
			OrderNumber: number,
			Status:      status,
			OrderDate:   orderDate,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			items, err := s.snapshotItems(ctx, tx, productIDs, quantities)
			if err != nil {
				return err
			}
			order.Items = items

			if req.TotalAmount != nil {
				order.TotalAmount = *req.TotalAmount
			} else {
				total := decimal.Zero
				for _, item := range items {
					total = total.Add(item.LineTotal())
				}
				order.TotalAmount = total
			}
			if !validTotal(order.TotalAmount) {
				return domain.ErrInvalidTotalAmount
			}

			return s.repo.Create(ctx, tx, order)
		})
		switch {
		case err == nil:
			obslogger.WithContext(ctx, s.log).Info("order created",
				zap.Int64("order_id", order.ID),
				zap.String("order_number", order.OrderNumber),
				zap.Int("items", len(order.Items)),
			)
			resp := toResponse(order)
			return &resp, nil
		case db.IsDuplicateOn(err, "order_number"):
			if !generated {
				return nil, domain.ErrDuplicate
			}
			if attempt >= domain.MaxNumberAttempts {
				return nil, domain.ErrNumberExhausted
			}
			obslogger.WithContext(ctx, s.log).Warn("order number collision, regenerating",
				zap.Int("attempt", attempt),
			)
		default:
			return nil, err
		}
	}
}

func (s *Service) snapshotItems(ctx context.Context, tx *gorm.DB, productIDs []int64, quantities []int) ([]domain.OrderItem, error) {
	if len(productIDs) == 0 {
		return []domain.OrderItem{}, nil
	}

	products, err := s.products.FindByIDs(ctx, tx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]productdomain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]domain.OrderItem, 0, len(productIDs))
	for i, productID := range productIDs {
		p, ok := byID[productID]
		if !ok {
			return nil, domain.ErrProductNotFound
		}
		items = append(items, domain.OrderItem{
			ID:           s.genID.Generate().Int64(),
			ProductID:    productID,
			Quantity:     quantities[i],
			PriceAtOrder: p.Price,
			ProductName:  p.Name,
		})
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	orderID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	return s.single(ctx, order)
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*domain.Response, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, domain.ErrInvalidOrderNumber
	}
	order, err := s.repo.FindByNumber(ctx, s.db, number)
	if err != nil {
		return nil, err
	}
	return s.single(ctx, order)
}

func (s *Service) single(ctx context.Context, order *domain.Order) (*domain.Response, error) {
	if order == nil {
		return nil, domain.ErrNotFound
	}
	orders := []domain.Order{*order}
	if err := s.repo.LoadItems(ctx, s.db, orders); err != nil {
		return nil, err
	}
	resp := toResponse(&orders[0])
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	return s.many(ctx, func() ([]domain.Order, error) {
		return s.repo.List(ctx, s.db)
	})
}

// ListPage walks all orders newest first using an id cursor.
func (s *Service) ListPage(ctx context.Context, page pagination.Pagination) ([]domain.Response, pagination.PageInfo, error) {
	size, err := page.Size()
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}
	cursor, err := pagination.DecodeCursor(page.PageToken)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}
	var beforeID int64
	if cursor != nil {
		parsed, err := snowflake.ParseString(cursor.ID)
		if err != nil || parsed <= 0 {
			return nil, pagination.PageInfo{}, pagination.ErrInvalidPageToken
		}
		beforeID = parsed.Int64()
	}

	orders, err := s.repo.ListPage(ctx, s.db, beforeID, size+1)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}
	orders, info, err := pagination.BuildCursorPageInfo(orders, size, func(o domain.Order) pagination.Cursor {
		return pagination.Cursor{ID: snowflake.ID(o.ID).String()}
	})
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}

	resp, err := s.many(ctx, func() ([]domain.Order, error) { return orders, nil })
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}
	return resp, info, nil
}

func (s *Service) ListByStatus(ctx context.Context, status string) ([]domain.Response, error) {
	parsed, ok := domain.ParseStatus(status)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}
	return s.many(ctx, func() ([]domain.Order, error) {
		return s.repo.ListByStatus(ctx, s.db, parsed)
	})
}

// ListRecent returns orders dated between since and now, newest first.
func (s *Service) ListRecent(ctx context.Context, since time.Time) ([]domain.Response, error) {
	now := s.clock.Now()
	return s.many(ctx, func() ([]domain.Order, error) {
		return s.repo.ListBetween(ctx, s.db, since.UTC(), now)
	})
}

func (s *Service) ListAboveAmount(ctx context.Context, amount decimal.Decimal) ([]domain.Response, error) {
	if amount.IsNegative() {
		return nil, domain.ErrInvalidTotalAmount
	}
	return s.many(ctx, func() ([]domain.Order, error) {
		return s.repo.ListAboveAmount(ctx, s.db, amount)
	})
}

func (s *Service) many(ctx context.Context, load func() ([]domain.Order, error)) ([]domain.Response, error) {
	orders, err := load()
	if err != nil {
		return nil, err
	}
	if err := s.repo.LoadItems(ctx, s.db, orders); err != nil {
		return nil, err
	}
	resp := make([]domain.Response, 0, len(orders))
	for i := range orders {
		resp = append(resp, toResponse(&orders[i]))
	}
	return resp, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*domain.Response, error) {
	orderID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	parsed, ok := domain.ParseStatus(status)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	now := s.clock.Now()
	affected, err := s.repo.UpdateStatus(ctx, s.db, orderID, parsed, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	obslogger.WithContext(ctx, s.log).Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(parsed)),
	)
	order.Status = parsed
	order.UpdatedAt = now
	return s.single(ctx, order)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	orderID, err := parseID(id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.Delete(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	obslogger.WithContext(ctx, s.log).Info("order deleted", zap.Int64("order_id", orderID))
	return nil
}

func validTotal(amount decimal.Decimal) bool {
	if amount.IsNegative() || amount.GreaterThanOrEqual(maxTotalAmount) {
		return false
	}
	return amount.Equal(amount.Truncate(2))
}

func parseID(id string) (int64, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return 0, domain.ErrInvalidID
	}
	return parsed.Int64(), nil
}

func toResponse(o *domain.Order) domain.Response {
	items := make([]domain.ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, domain.ItemResponse{
			ProductID:    snowflake.ID(item.ProductID).String(),
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
		})
	}
	return domain.Response{
		ID:          snowflake.ID(o.ID).String(),
		OrderNumber: o.OrderNumber,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		OrderDate:   o.OrderDate,
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

