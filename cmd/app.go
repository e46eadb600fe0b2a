package cmd

import (
	"context"
	"database/sql"
	"net/http"

	"shopcore/api"
	"shopcore/api/health"
	apiorder "shopcore/api/order"
	orderapp "shopcore/application/order"
	"shopcore/config"
	"shopcore/domain/inventory"
	orderdomain "shopcore/domain/order"
	"shopcore/domain/shared"
	"shopcore/infrastructure/notify"
	"shopcore/infrastructure/persistence/mocks"
	"shopcore/infrastructure/persistence/mysql"
	"shopcore/infrastructure/persistence/retry"
	"shopcore/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the wired application.
type App struct {
	config       *config.Config
	router       *api.Router
	server       *http.Server
	db           *gorm.DB
	outboxWorker *mysql.OutboxWorker
	workerCancel context.CancelFunc
}

// NewApp wires the full application from configuration. The database
// type selects between MySQL and in-memory persistence; everything
// above the repositories is identical in both modes.
func NewApp(cfg *config.Config) *App {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env))

	var (
		db           *gorm.DB
		orderRepo    orderdomain.Repository
		ledger       inventory.Ledger
		carts        orderapp.CartSource
		loyalty      orderapp.LoyaltyLedger
		uowFactory   shared.UnitOfWorkFactory
		outboxWorker *mysql.OutboxWorker
	)

	if cfg.Database.Type == "mysql" {
		logger.Info("Using MySQL/GORM persistence layer")

		mysqlConfig := &mysql.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			Username:        cfg.Database.Username,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Log.Level,
		}

		var err error
		db, err = mysqlConfig.Connect()
		if err != nil {
			logger.Fatal("Failed to connect to MySQL", zap.Error(err))
		}

		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
		}
		if err := sqlDB.Ping(); err != nil {
			logger.Fatal("Failed to ping MySQL", zap.Error(err))
		}
		logger.Info("Connected to MySQL successfully")

		if cfg.IsDevelopment() {
			if err := mysql.AutoMigrate(db); err != nil {
				logger.Fatal("Failed to auto migrate", zap.Error(err))
			}
		}

		orderRepo = mysql.NewOrderRepository(db)
		ledger = mysql.NewInventoryLedger(db)
		carts = mysql.NewCartSource(db)
		loyalty = mysql.NewLoyaltyLedger(db)

		uowFactory = mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg))

		outboxWorker, err = mysql.NewOutboxWorker(
			mysql.NewOutboxRepository(db),
			&mysql.LoggingOutboxPublisher{},
			cfg.Outbox.PollInterval,
			cfg.Outbox.BatchSize,
			cfg.Outbox.MaxRetries,
		)
		if err != nil {
			logger.Fatal("Failed to create outbox worker", zap.Error(err))
		}
	} else {
		logger.Info("Using in-memory persistence layer")

		orderRepo = mocks.NewMockOrderRepository()
		ledger = mocks.NewMockInventoryLedger(nil)
		carts = mocks.NewMockCartSource()
		loyalty = mocks.NewMockLoyaltyLedger()
		uowFactory = mocks.NewMockUnitOfWorkFactory()
	}

	orderService := orderapp.NewApplicationService(
		orderRepo,
		ledger,
		orderdomain.CheckoutConfig{
			Currency:     cfg.Checkout.Currency,
			TaxRateBps:   cfg.Checkout.TaxRateBps,
			ShippingFees: cfg.Checkout.ShippingFees,
		},
		carts,
		notify.NewLoggingNotifier(),
		loyalty,
		uowFactory,
	)

	var healthDB *sql.DB
	if db != nil {
		healthDB, _ = db.DB()
	}
	healthController := health.NewController(cfg, healthDB)
	orderController := apiorder.NewController(orderService)

	router := api.NewRouter(cfg, healthController, orderController)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config:       cfg,
		router:       router,
		server:       server,
		db:           db,
		outboxWorker: outboxWorker,
	}
}

// Start runs the HTTP server and, when configured, the outbox worker.
// Blocks until the server stops.
func (a *App) Start() error {
	if a.outboxWorker != nil {
		workerCtx, cancel := context.WithCancel(context.Background())
		a.workerCancel = cancel
		go func() {
			if err := a.outboxWorker.Run(workerCtx); err != nil && workerCtx.Err() == nil {
				logger.Error("Outbox worker stopped", zap.Error(err))
			}
		}()
	}

	logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the outbox worker, drains in-flight requests and
// closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down application")

	if a.workerCancel != nil {
		a.workerCancel()
	}

	if err := a.server.Shutdown(ctx); err != nil {
		return err
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database", zap.Error(err))
			}
		}
	}

	return logger.Sync()
}

// GetEngine exposes the Gin engine for tests.
func (a *App) GetEngine() http.Handler {
	return a.server.Handler
}
