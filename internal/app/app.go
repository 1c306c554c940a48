package app

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/storelink/paygate/internal/adapter/gateway"
	"github.com/storelink/paygate/internal/adapter/platform"
	"github.com/storelink/paygate/internal/module/kernel"
	kernelentity "github.com/storelink/paygate/internal/module/kernel/entity"
	"github.com/storelink/paygate/internal/module/payment"
	paymententity "github.com/storelink/paygate/internal/module/payment/entity"
	"github.com/storelink/paygate/internal/module/recurrence"
	recentity "github.com/storelink/paygate/internal/module/recurrence/entity"
	rechandler "github.com/storelink/paygate/internal/module/recurrence/handler"
	"github.com/storelink/paygate/internal/module/webhook"
	webhookentity "github.com/storelink/paygate/internal/module/webhook/entity"
	sharedcache "github.com/storelink/paygate/internal/shared/cache"
	"github.com/storelink/paygate/internal/shared/config"
	"github.com/storelink/paygate/internal/shared/database"
	"github.com/storelink/paygate/internal/shared/i18n"
	"github.com/storelink/paygate/internal/shared/logger"
	"github.com/storelink/paygate/internal/shared/middleware"
	"github.com/storelink/paygate/internal/utils/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App wires configuration, storage, services and HTTP surface together.
type App struct {
	config *config.Config
	logger *zap.Logger
	db     *gorm.DB
	redis  redis.UniversalClient
	router *gin.Engine

	metrics        *metrics.Metrics
	webhookHandler *webhook.Handler
}

// New creates a fully wired application.
func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	redisClient, err := sharedcache.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	app := &App{
		config:  cfg,
		logger:  log,
		db:      db,
		redis:   redisClient,
		metrics: metrics.New("paygate"),
	}
	app.initModules()
	app.router = app.setupRouter()
	return app, nil
}

// initModules builds the service graph. Construction order follows the
// dependency direction: repositories, then services, then handlers.
func (a *App) initModules() {
	cfg := a.config

	kernelRepo := kernel.NewRepository(a.db)
	customerRepo := payment.NewCustomerRepository(a.db)
	recurrenceRepo := recurrence.NewRepository(a.db)
	webhookRepo := webhook.NewRepository(a.db)

	localizer := i18n.NewTranslator(nil)
	platformClient := platform.NewClient(cfg.Platform, a.logger)
	gatewayClient := gateway.NewClient(cfg.Gateway, a.logger, a.metrics)

	kernelFactory := kernel.NewFactory()
	orderService := kernel.NewOrderService(kernelRepo, platformClient, localizer, a.logger, a.metrics)
	kernelHandler := kernel.NewHandler(kernelRepo, orderService, a.logger)

	customerService := payment.NewCustomerService(customerRepo, a.logger)

	recurrenceFactory := recurrence.NewFactory(kernelFactory)
	subscriptionHandler := rechandler.NewSubscriptionHandler(
		kernelRepo,
		recurrenceRepo,
		customerService,
		orderService,
		kernelFactory,
		platformClient,
		localizer,
		a.logger,
	)
	invoiceHandler := rechandler.NewInvoiceHandler(recurrenceRepo, a.logger)

	dedup := sharedcache.NewDeliveryDedup(a.redis, 0)
	webhookService := webhook.NewService(
		webhook.NewFactory(),
		webhookRepo,
		dedup,
		kernelFactory,
		kernelHandler,
		recurrenceFactory,
		subscriptionHandler,
		invoiceHandler,
		gatewayClient,
		a.logger,
		a.metrics,
	)
	a.webhookHandler = webhook.NewHandler(webhookService, a.logger)
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.Metrics(a.metrics))
	r.Use(cors.Default())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/")
	a.webhookHandler.RegisterRoutes(api)

	return r
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Stop releases storage connections.
func (a *App) Stop() {
	if err := sharedcache.Close(a.redis); err != nil {
		a.logger.Warn("close redis", zap.Error(err))
	}
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&kernelentity.ChargeEntity{},
		&kernelentity.OrderEntity{},
		&kernelentity.TransactionEntity{},
		&paymententity.CustomerEntity{},
		&recentity.SubscriptionEntity{},
		&recentity.InvoiceEntity{},
		&recentity.SubProductEntity{},
		&webhookentity.WebhookEventEntity{},
	)
}
