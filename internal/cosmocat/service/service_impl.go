package service

import (
	"context"

	"github.com/smallbiznis/cosmocats/internal/cosmocat/domain"
	featuredomain "github.com/smallbiznis/cosmocats/internal/featuretoggle/domain"
	featureservice "github.com/smallbiznis/cosmocats/internal/featuretoggle/service"
	obslogger "github.com/smallbiznis/cosmocats/internal/observability/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	cosmoCats     = []string{"Nebula Thing 1", "Orbit Thing 2", "Star Thing 3"}
	kittyProducts = []string{"Kitty Star Thing 1", "Kitty Cosmic Thing 2", "Kitty Space Thing 3"}
)

type Params struct {
	fx.In

	Log  *zap.Logger
	Gate featuredomain.Gate
}

type Service struct {
	log *zap.Logger

	listCosmoCats     func(context.Context) ([]string, error)
	listKittyProducts func(context.Context) ([]string, error)
}

func New(p Params) domain.Service {
	s := &Service{log: p.Log.Named("cosmocat.service")}
	s.listCosmoCats = featureservice.Guard(p.Gate, featuredomain.FeatureCosmoCats, s.cosmoCats)
	s.listKittyProducts = featureservice.Guard(p.Gate, featuredomain.FeatureKittyProducts, s.kittyProducts)
	return s
}

func (s *Service) ListCosmoCats(ctx context.Context) ([]string, error) {
	return s.listCosmoCats(ctx)
}

func (s *Service) ListKittyProducts(ctx context.Context) ([]string, error) {
	return s.listKittyProducts(ctx)
}

func (s *Service) cosmoCats(ctx context.Context) ([]string, error) {
	obslogger.WithContext(ctx, s.log).Debug("listing cosmo cats")
	return append([]string(nil), cosmoCats...), nil
}

func (s *Service) kittyProducts(ctx context.Context) ([]string, error) {
	obslogger.WithContext(ctx, s.log).Debug("listing kitty products")
	return append([]string(nil), kittyProducts...), nil
}
