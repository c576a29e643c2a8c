package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/api"
	"github.com/todoapp/todo-service/internal/api/handler"
	"github.com/todoapp/todo-service/internal/core/ports"
	"github.com/todoapp/todo-service/internal/core/service"
	"github.com/todoapp/todo-service/internal/infrastructure/config"
	"github.com/todoapp/todo-service/internal/infrastructure/db/memory"
	mongostore "github.com/todoapp/todo-service/internal/infrastructure/db/mongo"
	"github.com/todoapp/todo-service/internal/infrastructure/db/postgres"
	redisstore "github.com/todoapp/todo-service/internal/infrastructure/db/redis"
	"github.com/todoapp/todo-service/internal/infrastructure/queue"
	"github.com/todoapp/todo-service/internal/security"
	"github.com/todoapp/todo-service/pkg/logger"
)

// @title                       Todo Service API
// @version                     1.0
// @description                 Personal todo tracking with token based authentication and role based access control.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	dotenvErr := godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "todo-service",
	})
	if dotenvErr != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

// stores bundles the repositories of the selected driver.
type stores struct {
	users ports.UserRepository
	todos ports.TodoRepository
	audit ports.AuditRepository
	ping  handler.Checker
	close func(context.Context) error
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cipher, err := security.NewPasswordCipher(cfg.Auth.FernetKey)
	if err != nil {
		return err
	}
	codec, err := security.NewTokenCodec(security.TokenConfig{
		AccessSecret:  cfg.Auth.SecretKey,
		RefreshSecret: cfg.Auth.RefreshSecretKey,
		Algorithm:     cfg.Auth.Algorithm,
		AccessTTL:     cfg.Auth.AccessTTL(),
		RefreshTTL:    cfg.Auth.RefreshTTL(),
	})
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, cipher)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}()
	log.Info().Str("driver", cfg.Store.Driver).Msg("store ready")

	checks := map[string]handler.Checker{"store": st.ping}

	var throttle service.LoginThrottle
	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	switch {
	case errors.Is(err, redisstore.ErrDisabled):
		log.Info().Msg("REDIS_ADDR not set, login throttling disabled")
	case err != nil:
		return err
	default:
		defer rdb.Close()
		throttle = redisstore.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	proxies, err := cfg.Proxy.Networks()
	if err != nil {
		return err
	}

	// Audit workers are stopped after the HTTP server has drained.
	auditCtx, stopAudit := context.WithCancel(context.Background())
	defer stopAudit()

	var audit service.AuditSink
	var dispatcher *queue.Dispatcher
	if cfg.Audit.Workers > 0 {
		dispatcher = queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(st.audit, logger.Component("audit")), logger.Component("dispatcher"))
		dispatcher.Start(auditCtx)
		audit = dispatcher
	}
	drainAudit := func() {
		if dispatcher == nil {
			return
		}
		stopAudit()
		dispatcher.Wait()
	}

	e, err := api.NewRouter(api.Deps{
		Logger:    logger.Component("http"),
		Auth:      service.NewAuthService(st.users, codec, throttle, audit, logger.Component("auth")),
		Access:    service.NewAccessService(st.users, codec, logger.Component("access")),
		Users:     service.NewUserService(st.users, logger.Component("users")),
		Todos:     service.NewTodoService(st.todos, logger.Component("todos")),
		Checks:    checks,
		RateLimit: cfg.RateLimit,

		TrustedProxies: proxies,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		drainAudit()
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := srv.Shutdown(shutdownCtx)
	drainAudit()
	if shutdownErr != nil {
		return fmt.Errorf("server forced shutdown: %w", shutdownErr)
	}

	log.Info().Msg("server stopped")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, cipher ports.PasswordCipher) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.Migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &stores{
			users: postgres.NewUserRepository(db, cipher),
			todos: postgres.NewTodoRepository(db),
			audit: postgres.NewAuditRepository(db),
			ping:  db.PingContext,
			close: closeSQL(db),
		}, nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			users: mongostore.NewUserRepository(db, cipher),
			todos: mongostore.NewTodoRepository(db),
			audit: mongostore.NewAuditRepository(db),
			ping:  func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close: client.Disconnect,
		}, nil

	case config.DriverMemory:
		store := memory.NewStore(cipher)
		return &stores{
			users: store.Users(),
			todos: store.Todos(),
			audit: store.Audit(),
			ping:  store.Ping,
			close: func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func closeSQL(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}
