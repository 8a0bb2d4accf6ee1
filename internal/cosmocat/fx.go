package cosmocat

import (
	"github.com/smallbiznis/cosmocats/internal/cosmocat/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cosmocat.service",
	fx.Provide(service.New),
)
