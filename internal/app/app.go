package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/q-lng/Christmas-Community/internal/auth"
	"github.com/q-lng/Christmas-Community/internal/config"
	"github.com/q-lng/Christmas-Community/internal/event"
	handler "github.com/q-lng/Christmas-Community/internal/handler/http"
	"github.com/q-lng/Christmas-Community/internal/service"
	"github.com/q-lng/Christmas-Community/internal/storage/local"
	"github.com/q-lng/Christmas-Community/internal/store/postgres"
	"github.com/q-lng/Christmas-Community/internal/wishlist"
	"github.com/q-lng/Christmas-Community/migrations"
	"github.com/q-lng/Christmas-Community/pkg/database"
	"github.com/q-lng/Christmas-Community/pkg/health"
	"github.com/q-lng/Christmas-Community/pkg/kafka"
)

// App wires together all service dependencies and owns their lifecycle.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	producer *kafka.Producer
	server   *http.Server
}

// New builds the application: database pool, migrations, Kafka producer,
// services and the HTTP server. Dependencies that fail to initialize abort
// startup.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	database.RegisterPoolMetrics(pool, "wishlist")

	var (
		producer  *kafka.Producer
		publisher event.Publisher = event.NopPublisher{}
	)
	if cfg.KafkaEnabled {
		producer = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewKafkaPublisher(producer, logger)
	}

	files, err := local.New(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	docs := postgres.NewStore(pool)
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL)

	userSvc := service.NewUserService(docs, tokens, files, publisher, logger, cfg.MaxUploadSize)
	pledgeSvc := service.NewPledgeService(docs, wishlist.NewManager(docs), publisher, logger)

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if producer != nil {
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Logger:             logger,
		Tokens:             tokens,
		Health:             healthHandler,
		AuthHandler:        handler.NewAuthHandler(userSvc),
		ProfileHandler:     handler.NewProfileHandler(userSvc),
		PledgeHandler:      handler.NewPledgeHandler(pledgeSvc),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		UploadDir:          cfg.UploadDir,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		producer: producer,
		server:   server,
	}, nil
}

// Run serves HTTP until the context is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening",
			slog.String("addr", a.server.Addr),
			slog.String("environment", a.cfg.Environment),
		)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown failed", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close failed", slog.String("error", err.Error()))
		}
	}

	a.pool.Close()
	a.logger.Info("shutdown complete")
	return nil
}
