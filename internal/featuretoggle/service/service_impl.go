package service

import (
	"context"

	"github.com/smallbiznis/cosmocats/internal/config"
	"github.com/smallbiznis/cosmocats/internal/featuretoggle/domain"
	obslogger "github.com/smallbiznis/cosmocats/internal/observability/logger"
	"github.com/smallbiznis/cosmocats/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Store   domain.Store
	Seed    *config.FeatureConfigHolder `optional:"true"`
	Metrics *metrics.FeatureMetrics     `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	store   domain.Store
	seed    *config.FeatureConfigHolder
	metrics *metrics.FeatureMetrics
}

func New(p Params) (domain.Service, error) {
	s := &Service{
		log:     p.Log.Named("featuretoggle.service"),
		store:   p.Store,
		seed:    p.Seed,
		metrics: p.Metrics,
	}
	if p.Seed != nil {
		if err := s.apply(context.Background(), p.Seed.Get()); err != nil {
			return nil, err
		}
		p.Seed.OnChange(func(cfg map[string]config.FeatureConfig) {
			if err := s.apply(context.Background(), cfg); err != nil {
				s.log.Error("failed to apply reloaded feature config", zap.Error(err))
			}
		})
	}
	return s, nil
}

// Enforce rejects with a *domain.DisabledError unless name is enabled. Store
// failures are treated as disabled.
func (s *Service) Enforce(ctx context.Context, name string) error {
	name = domain.NormalizeName(name)
	enabled, err := s.store.IsEnabled(ctx, name)
	if err != nil {
		obslogger.WithContext(ctx, s.log).Warn("feature store lookup failed",
			zap.String("feature", name),
			zap.Error(err),
		)
		enabled = false
	}
	if enabled {
		return nil
	}
	s.metrics.RecordRejection(name)
	obslogger.WithContext(ctx, s.log).Debug("feature disabled", zap.String("feature", name))
	return &domain.DisabledError{Feature: name}
}

func (s *Service) List(ctx context.Context) ([]domain.Feature, error) {
	return s.store.List(ctx)
}

func (s *Service) Enable(ctx context.Context, name string) (*domain.Feature, error) {
	return s.set(ctx, name, true)
}

func (s *Service) Disable(ctx context.Context, name string) (*domain.Feature, error) {
	return s.set(ctx, name, false)
}

func (s *Service) set(ctx context.Context, name string, enabled bool) (*domain.Feature, error) {
	name = domain.NormalizeName(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if !s.known(name) {
		return nil, domain.ErrUnknownFeature
	}
	if err := s.store.Set(ctx, name, enabled); err != nil {
		return nil, err
	}
	obslogger.WithContext(ctx, s.log).Info("feature toggled",
		zap.String("feature", name),
		zap.Bool("enabled", enabled),
	)
	return &domain.Feature{Name: name, Enabled: enabled}, nil
}

func (s *Service) known(name string) bool {
	for _, feature := range domain.KnownFeatures {
		if feature == name {
			return true
		}
	}
	if s.seed == nil {
		return false
	}
	_, ok := s.seed.Get()[name]
	return ok
}

func (s *Service) apply(ctx context.Context, cfg map[string]config.FeatureConfig) error {
	for name, feature := range cfg {
		if err := s.store.Set(ctx, name, feature.Enabled); err != nil {
			return err
		}
	}
	s.log.Info("feature toggles seeded", zap.Int("count", len(cfg)))
	return nil
}
