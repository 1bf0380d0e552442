package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/account"
	accountPostgres "github.com/heitorcapra/contas-backend/internal/account/postgres"
	"github.com/heitorcapra/contas-backend/internal/category"
	categoryPostgres "github.com/heitorcapra/contas-backend/internal/category/postgres"
	"github.com/heitorcapra/contas-backend/internal/contact"
	contactPostgres "github.com/heitorcapra/contas-backend/internal/contact/postgres"
	"github.com/heitorcapra/contas-backend/internal/core/events"
	"github.com/heitorcapra/contas-backend/internal/expense"
	expensePostgres "github.com/heitorcapra/contas-backend/internal/expense/postgres"
	"github.com/heitorcapra/contas-backend/internal/transport"
	"github.com/heitorcapra/contas-backend/internal/transport/rest"
	"github.com/heitorcapra/contas-backend/internal/vendors"
	vendorPostgres "github.com/heitorcapra/contas-backend/internal/vendors/postgres"
	"github.com/heitorcapra/contas-backend/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	lg := deps.Logger
	base := transport.NewBaseHandler(lg)

	bus := events.NewEventBus(lg)
	registerAuditSubscriber(bus, lg)

	vendorRepo := vendorPostgres.NewVendorRepository(deps.GormDB)
	vendorService := vendor.NewService(vendorRepo, lg)

	categoryRepo := categoryPostgres.NewCategoryRepository(deps.GormDB)
	categoryService := category.NewService(categoryRepo, lg)

	accountRepo := accountPostgres.NewAccountRepository(deps.GormDB)
	accountService := account.NewService(accountRepo, lg)

	contactRepo := contactPostgres.NewContactRepository(deps.GormDB)
	contactService := contact.NewService(contactRepo, lg)

	expenseRepo := expensePostgres.NewExpenseRepository(deps.GormDB)
	expenseService := expense.NewService(expenseRepo, vendorService, categoryService, accountService, bus, lg)

	handlers := rest.Handlers{
		Expense:  expense.NewHandler(expenseService),
		Vendor:   vendor.NewHandler(base, vendorService),
		Category: category.NewHandler(base, categoryService),
		Account:  account.NewHandler(base, accountService),
		Contact:  contact.NewHandler(base, contactService),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, lg)
}

// registerAuditSubscriber logs domain events as they happen. Subscribers
// observe; status derivation already ran inside the request.
func registerAuditSubscriber(bus *events.EventBus, lg *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		lg.Info("domain event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt(),
		)
		return nil
	}
	bus.Subscribe(events.EventTypeExpenseStatusChanged, audit)
	bus.Subscribe(events.EventTypePaymentApplied, audit)
	bus.Subscribe(events.EventTypePaymentReverted, audit)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-open pgx connection pool so
// both access paths share one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
}
