package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/account-service/internal/config"
	"github.com/crucial707/account-service/internal/db"
	"github.com/crucial707/account-service/internal/logging"
	"github.com/crucial707/account-service/internal/repo"
	"go.mongodb.org/mongo-driver/mongo"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	log, closer := logging.New(logging.Options{Format: cfg.LogFormat, Level: cfg.LogLevel, File: cfg.LogFile})
	defer closer.Close()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.IsProd() && cfg.JWTSecret == config.DefaultJWTSecret {
		log.Warn("using default JWT secret; set JWT_SECRET before deploying")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users, cleanup, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(users, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr, "store", cfg.StoreDriver, "tls", cfg.TLSEnabled())
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openStore connects the configured credential store. cleanup releases it.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repo.UserStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		if err := db.Migrate(cfg.DatabaseURL, log); err != nil {
			return nil, nil, err
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to postgres")
		return repo.NewPostgresUserRepo(database), func() { closeDB(database, log) }, nil

	case config.StoreMemory:
		log.Warn("using in-memory store; accounts are lost on restart")
		return repo.NewMemoryUserRepo(), func() {}, nil

	default:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		users := repo.NewMongoUserRepo(client.Database(cfg.MongoDB).Collection(repo.UsersCollection))
		if err := users.EnsureIndexes(ctx); err != nil {
			disconnect(client, log)
			return nil, nil, fmt.Errorf("ensure indexes: %w", err)
		}
		log.Info("connected to mongo", "database", cfg.MongoDB)
		return users, func() { disconnect(client, log) }, nil
	}
}

func closeDB(database *sql.DB, log *slog.Logger) {
	if err := database.Close(); err != nil {
		log.Error("close postgres", "error", err)
	}
}

func disconnect(client *mongo.Client, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Error("disconnect mongo", "error", err)
	}
}
