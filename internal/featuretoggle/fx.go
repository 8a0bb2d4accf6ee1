package featuretoggle

import (
	"github.com/smallbiznis/cosmocats/internal/featuretoggle/domain"
	"github.com/smallbiznis/cosmocats/internal/featuretoggle/service"
	"github.com/smallbiznis/cosmocats/internal/featuretoggle/store"
	"go.uber.org/fx"
)

var Module = fx.Module("featuretoggle.service",
	fx.Provide(store.Provide),
	fx.Provide(service.New),
	fx.Provide(func(s domain.Service) domain.Gate { return s }),
)
