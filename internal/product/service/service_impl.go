package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/smallbiznis/cosmocats/internal/category/domain"
	"github.com/smallbiznis/cosmocats/internal/clock"
	obslogger "github.com/smallbiznis/cosmocats/internal/observability/logger"
	"github.com/smallbiznis/cosmocats/internal/product/domain"
	"github.com/smallbiznis/cosmocats/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxPopularLimit = 100

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	Categories categorydomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       domain.Repository
	genID      *snowflake.Node
	clock      clock.Clock
	categories categorydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("product.service"),
		repo:       p.Repo,
		genID:      p.GenID,
		clock:      p.Clock,
		categories: p.Categories,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if !domain.ValidName(name) {
		return nil, domain.ErrInvalidName
	}
	description := strings.TrimSpace(req.Description)
	if !domain.ValidDescription(description) {
		return nil, domain.ErrInvalidDescription
	}
	if !domain.ValidPrice(req.Price) {
		return nil, domain.ErrInvalidPrice
	}
	if !domain.ValidQuantity(req.Quantity) {
		return nil, domain.ErrInvalidQuantity
	}
	status := domain.StatusAvailable
	if strings.TrimSpace(req.Status) != "" {
		parsed, ok := domain.ParseStatus(req.Status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		status = parsed
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByNameAndCategory(ctx, s.db, name, category.ID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	now := s.clock.Now()
	p := &domain.Product{
		ID:           s.genID.Generate().Int64(),
		Name:         name,
		Description:  description,
		Price:        req.Price,
		Quantity:     req.Quantity,
		CategoryID:   category.ID,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
		CategoryType: category.Type,
	}
	if err := s.repo.Create(ctx, s.db, p); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}

	obslogger.WithContext(ctx, s.log).Info("product created",
		zap.Int64("product_id", p.ID),
		zap.String("category", string(category.Type)),
	)
	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Response, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !domain.ValidName(name) {
			return nil, domain.ErrInvalidName
		}
		p.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if !domain.ValidDescription(description) {
			return nil, domain.ErrInvalidDescription
		}
		p.Description = description
	}
	if req.Price != nil {
		if !domain.ValidPrice(*req.Price) {
			return nil, domain.ErrInvalidPrice
		}
		p.Price = *req.Price
	}
	if req.Quantity != nil {
		if !domain.ValidQuantity(*req.Quantity) {
			return nil, domain.ErrInvalidQuantity
		}
		p.Quantity = *req.Quantity
	}
	if req.Status != nil {
		status, ok := domain.ParseStatus(*req.Status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		p.Status = status
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		p.CategoryID = category.ID
		p.CategoryType = category.Type
	}

	if req.Name != nil || req.Category != nil {
		exists, err := s.repo.ExistsByNameAndCategory(ctx, s.db, p.Name, p.CategoryID, p.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}

	p.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, p); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}

	obslogger.WithContext(ctx, s.log).Info("product updated", zap.Int64("product_id", p.ID))
	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	filter := domain.ListFilter{
		Name:     req.Name,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		SortBy:   req.SortBy,
		OrderBy:  req.OrderBy,
	}
	if strings.TrimSpace(req.Category) != "" {
		category, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			if errors.Is(err, domain.ErrCategoryNotFound) {
				return []domain.Response{}, nil
			}
			return nil, err
		}
		filter.CategoryID = &category.ID
	}
	if strings.TrimSpace(req.Status) != "" {
		status, ok := domain.ParseStatus(req.Status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		filter.Status = &status
	}
	if req.MinPrice != nil && req.MaxPrice != nil && req.MinPrice.GreaterThan(*req.MaxPrice) {
		return nil, domain.ErrInvalidPrice
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}

	ordered, err := s.repo.CountOrderItems(ctx, s.db, productID)
	if err != nil {
		return err
	}
	if ordered > 0 {
		return domain.ErrInUse
	}

	affected, err := s.repo.Delete(ctx, s.db, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	obslogger.WithContext(ctx, s.log).Info("product deleted", zap.Int64("product_id", productID))
	return nil
}

func (s *Service) LowStock(ctx context.Context, threshold int) ([]domain.Response, error) {
	if threshold <= 0 {
		return nil, domain.ErrInvalidThreshold
	}
	items, err := s.repo.FindLowStock(ctx, s.db, threshold)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func (s *Service) SalesReport(ctx context.Context) ([]domain.SalesReport, error) {
	rows, err := s.repo.SalesReport(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.SalesReport{}
	}
	return rows, nil
}

func (s *Service) Popular(ctx context.Context, limit int) ([]domain.PopularProduct, error) {
	if limit < 0 || limit > maxPopularLimit {
		return nil, domain.ErrInvalidLimit
	}
	rows, err := s.repo.PopularProducts(ctx, s.db, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.PopularProduct{}
	}
	return rows, nil
}

func (s *Service) resolveCategory(ctx context.Context, token string) (*categorydomain.Category, error) {
	category, err := s.categories.Resolve(ctx, token)
	switch {
	case errors.Is(err, categorydomain.ErrInvalidType):
		return nil, domain.ErrInvalidCategory
	case errors.Is(err, categorydomain.ErrNotFound):
		return nil, domain.ErrCategoryNotFound
	case err != nil:
		return nil, err
	}
	return category, nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Product, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func parseID(id string) (int64, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return 0, domain.ErrInvalidID
	}
	return parsed.Int64(), nil
}

func toResponse(p *domain.Product) domain.Response {
	return domain.Response{
		ID:          snowflake.ID(p.ID).String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.CategoryType,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toResponses(items []domain.Product) []domain.Response {
	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp
}
