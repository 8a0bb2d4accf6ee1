package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/snowflake"
	gocache "github.com/patrickmn/go-cache"
	"github.com/smallbiznis/cosmocats/internal/category/domain"
	"github.com/smallbiznis/cosmocats/internal/clock"
	obslogger "github.com/smallbiznis/cosmocats/internal/observability/logger"
	"github.com/smallbiznis/cosmocats/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	resolveCacheTTL     = 5 * time.Minute
	resolveCacheCleanup = 10 * time.Minute
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
	clock clock.Clock
	cache *gocache.Cache
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("category.service"),
		repo:  p.Repo,
		genID: p.GenID,
		clock: p.Clock,
		cache: gocache.New(resolveCacheTTL, resolveCacheCleanup),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	categoryType, ok := domain.ParseType(req.Type)
	if !ok {
		return nil, domain.ErrInvalidType
	}
	description, err := normalizeDescription(req.Description)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByType(ctx, s.db, categoryType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := s.clock.Now()
	c := &domain.Category{
		ID:          s.genID.Generate().Int64(),
		Type:        categoryType,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, s.db, c); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}
	s.cache.Flush()

	obslogger.WithContext(ctx, s.log).Info("category created",
		zap.Int64("category_id", c.ID),
		zap.String("type", string(c.Type)),
	)
	resp := toResponse(c)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func (s *Service) GetByType(ctx context.Context, categoryType string) (*domain.Response, error) {
	item, err := s.Resolve(ctx, categoryType)
	if err != nil {
		return nil, err
	}
	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Search(ctx context.Context, keyword string) ([]domain.Response, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.ErrInvalidKeyword
	}
	items, err := s.repo.SearchByDescription(ctx, s.db, keyword)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Response, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		categoryType, ok := domain.ParseType(*req.Type)
		if !ok {
			return nil, domain.ErrInvalidType
		}
		if categoryType != item.Type {
			other, err := s.repo.FindByType(ctx, s.db, categoryType)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != item.ID {
				return nil, domain.ErrDuplicate
			}
		}
		item.Type = categoryType
	}
	if req.Description != nil {
		description, err := normalizeDescription(*req.Description)
		if err != nil {
			return nil, err
		}
		item.Description = description
	}

	item.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}
	s.cache.Flush()

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	categoryID, err := parseID(id)
	if err != nil {
		return err
	}

	inUse, err := s.repo.CountProducts(ctx, s.db, categoryID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return domain.ErrInUse
	}

	affected, err := s.repo.Delete(ctx, s.db, categoryID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	s.cache.Flush()

	obslogger.WithContext(ctx, s.log).Info("category deleted", zap.Int64("category_id", categoryID))
	return nil
}

func (s *Service) Resolve(ctx context.Context, categoryType string) (*domain.Category, error) {
	parsed, ok := domain.ParseType(categoryType)
	if !ok {
		return nil, domain.ErrInvalidType
	}

	key := string(parsed)
	if cached, found := s.cache.Get(key); found {
		c := cached.(domain.Category)
		return &c, nil
	}

	item, err := s.repo.FindByType(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	s.cache.SetDefault(key, *item)
	return item, nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Category, error) {
	categoryID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func parseID(id string) (int64, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return 0, domain.ErrInvalidID
	}
	return parsed.Int64(), nil
}

func normalizeDescription(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return "", domain.ErrInvalidDescription
	}
	return description, nil
}

func toResponse(c *domain.Category) domain.Response {
	return domain.Response{
		ID:          snowflake.ID(c.ID).String(),
		Type:        c.Type,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toResponses(items []domain.Category) []domain.Response {
	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp
}
