// Package app wires configuration, database, services, and the HTTP server
// together and owns the process lifecycle.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres"
	auditrepo "github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres/audit"
	designrepo "github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres/design"
	recordrepo "github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres/record"
	userrepo "github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres/user"
	"github.com/mkuznecov/valvecalc-backend/internal/auth"
	"github.com/mkuznecov/valvecalc-backend/internal/config"
	auditsvc "github.com/mkuznecov/valvecalc-backend/internal/service/audit"
	authsvc "github.com/mkuznecov/valvecalc-backend/internal/service/auth"
	designsvc "github.com/mkuznecov/valvecalc-backend/internal/service/design"
	sheetsvc "github.com/mkuznecov/valvecalc-backend/internal/service/sheet"
	"github.com/mkuznecov/valvecalc-backend/internal/transport/middleware"
	"github.com/mkuznecov/valvecalc-backend/internal/transport/rest"
	"github.com/mkuznecov/valvecalc-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies pending migrations, wires services and HTTP routes,
// and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := migrate(cfg.Database.DSN); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)
	designs := designrepo.New(pool)
	records := recordrepo.New(pool)
	auditLog := auditrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, auditLog, tx, jwt, cfg.Auth)
	sheetService := sheetsvc.NewService(logger, records, designs, users, auditLog, tx)
	designService := designsvc.NewService(logger, designs, users, auditLog, tx)
	auditService := auditsvc.NewService(logger, auditLog, users, cfg.Audit)

	if err := authService.EnsureBootstrapAdmin(ctx); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	router := rest.NewRouter(rest.Handlers{
		Health: rest.NewHealthHandler(pool, BuildVersion()),
		Auth:   rest.NewAuthHandler(authService, logger),
		Sheet:  rest.NewSheetHandler(sheetService, logger),
		Design: rest.NewDesignHandler(designService, logger),
		Admin:  rest.NewAdminHandler(designService, sheetService, auditService, logger),
	})

	chain := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.ClientIP,
		middleware.Logger(logger),
	}
	if cfg.Server.RateLimitPerMinute > 0 {
		// Rate limiting sits after logging so rejected requests still show up.
		limiter := middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
		chain = append(chain, limiter.Limit(cfg.Server.RateLimitPerMinute))
	}
	chain = append(chain, middleware.CORS(cfg.CORS), middleware.Auth(jwt))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      middleware.Chain(chain...)(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}

// migrate applies pending goose migrations. goose works over database/sql,
// so this opens its own short-lived connection.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if _, err := provider.Up(context.Background()); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
