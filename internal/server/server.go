package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/cosmocats/internal/authorization"
	"github.com/smallbiznis/cosmocats/internal/category"
	categorydomain "github.com/smallbiznis/cosmocats/internal/category/domain"
	"github.com/smallbiznis/cosmocats/internal/config"
	"github.com/smallbiznis/cosmocats/internal/cosmocat"
	cosmocatdomain "github.com/smallbiznis/cosmocats/internal/cosmocat/domain"
	"github.com/smallbiznis/cosmocats/internal/featuretoggle"
	featuredomain "github.com/smallbiznis/cosmocats/internal/featuretoggle/domain"
	"github.com/smallbiznis/cosmocats/internal/observability"
	obsmiddleware "github.com/smallbiznis/cosmocats/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/cosmocats/internal/observability/metrics"
	obstracing "github.com/smallbiznis/cosmocats/internal/observability/tracing"
	"github.com/smallbiznis/cosmocats/internal/order"
	orderdomain "github.com/smallbiznis/cosmocats/internal/order/domain"
	"github.com/smallbiznis/cosmocats/internal/product"
	productdomain "github.com/smallbiznis/cosmocats/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	featuretoggle.Module,
	category.Module,
	product.Module,
	order.Module,
	cosmocat.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

var registerValidators = RegisterValidators

// registerGin fails startup when the custom validators cannot be registered;
// binding a request that uses them would panic otherwise.
func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("register request validators: %w", err)
	}
	return NewEngine(obsCfg, httpMetrics), nil
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	log    *zap.Logger

	authenticator *Authenticator
	authzSvc      authorization.Service

	categorySvc categorydomain.Service
	productSvc  productdomain.Service
	orderSvc    orderdomain.Service
	cosmocatSvc cosmocatdomain.Service
	featureSvc  featuredomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	AuthzSvc    authorization.Service
	CategorySvc categorydomain.Service
	ProductSvc  productdomain.Service
	OrderSvc    orderdomain.Service
	CosmocatSvc cosmocatdomain.Service
	FeatureSvc  featuredomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		log:           p.Log.Named("http.server"),
		authenticator: NewAuthenticator(p.Cfg.Security),
		authzSvc:      p.AuthzSvc,
		categorySvc:   p.CategorySvc,
		productSvc:    p.ProductSvc,
		orderSvc:      p.OrderSvc,
		cosmocatSvc:   p.CosmocatSvc,
		featureSvc:    p.FeatureSvc,
	}

	svc.registerProbeRoutes()
	svc.registerAPIRoutes()
	svc.registerAdminRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerProbeRoutes() {
	s.engine.GET("/health", s.Health)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")
	api.Use(s.AuthRequired())

	// -------- Gated listings --------
	api.GET("/cosmocats", s.authorize(authorization.ObjectCatalog, authorization.ActionRead), s.ListCosmoCats)
	api.GET("/kitty-products", s.authorize(authorization.ObjectCatalog, authorization.ActionRead), s.ListKittyProducts)

	// -------- Products --------
	api.GET("/products", s.authorize(authorization.ObjectCatalog, authorization.ActionRead), s.ListProducts)
	api.POST("/products", s.authorize(authorization.ObjectCatalog, authorization.ActionWrite), s.CreateProduct)
	api.GET("/products/low-stock", s.authorize(authorization.ObjectCatalog, authorization.ActionRead), s.ListLowStockProducts)
	api.GET("/products/sales-report", s.authorize(authorization.ObjectCatalog, authorization.ActionRead), s.GetSalesReport)
	api.GET("/products/popular", s.authorize(authorization.ObjectCatalog, authorization.ActionRead), s.ListPopularProducts)
	api.GET("/products/:id", s.authorize(authorization.ObjectCatalog, authorization.ActionRead), s.GetProductByID)
	api.PUT("/products/:id", s.authorize(authorization.ObjectCatalog, authorization.ActionWrite), s.UpdateProduct)
	api.DELETE("/products/:id", s.authorize(authorization.ObjectCatalog, authorization.ActionWrite), s.DeleteProduct)

	// -------- Categories --------
	api.GET("/categories", s.authorize(authorization.ObjectCatalog, authorization.ActionRead), s.ListCategories)
	api.POST("/categories", s.authorize(authorization.ObjectCatalog, authorization.ActionWrite), s.CreateCategory)
	api.GET("/categories/search", s.authorize(authorization.ObjectCatalog, authorization.ActionRead), s.SearchCategories)
	api.GET("/categories/type/:type", s.authorize(authorization.ObjectCatalog, authorization.ActionRead), s.GetCategoryByType)
	api.GET("/categories/:id", s.authorize(authorization.ObjectCatalog, authorization.ActionRead), s.GetCategoryByID)
	api.PUT("/categories/:id", s.authorize(authorization.ObjectCatalog, authorization.ActionWrite), s.UpdateCategory)
	api.DELETE("/categories/:id", s.authorize(authorization.ObjectCatalog, authorization.ActionWrite), s.DeleteCategory)

	// -------- Orders --------
	api.GET("/orders", s.authorize(authorization.ObjectOrder, authorization.ActionRead), s.ListOrders)
	api.POST("/orders", s.authorize(authorization.ObjectOrder, authorization.ActionWrite), s.CreateOrder)
	api.GET("/orders/number/:number", s.authorize(authorization.ObjectOrder, authorization.ActionRead), s.GetOrderByNumber)
	api.GET("/orders/:id", s.authorize(authorization.ObjectOrder, authorization.ActionRead), s.GetOrderByID)
	api.PATCH("/orders/:id/status", s.authorize(authorization.ObjectOrder, authorization.ActionWrite), s.UpdateOrderStatus)
	api.DELETE("/orders/:id", s.authorize(authorization.ObjectOrder, authorization.ActionWrite), s.DeleteOrder)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/api/v1/admin")
	admin.Use(s.AuthRequired())

	// -------- Features --------
	admin.GET("/features", s.authorize(authorization.ObjectFeature, authorization.ActionRead), s.ListFeatures)
	admin.POST("/features/:name/enable", s.authorize(authorization.ObjectFeature, authorization.ActionWrite), s.EnableFeature)
	admin.POST("/features/:name/disable", s.authorize(authorization.ObjectFeature, authorization.ActionWrite), s.DisableFeature)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}

func (s *Server) Health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		s.log.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
