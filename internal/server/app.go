// Package server wires configuration, storage, authentication and the HTTP
// API together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/reformguide/internal/logging"
	"github.com/dmitrijs2005/reformguide/internal/server/auth"
	"github.com/dmitrijs2005/reformguide/internal/server/classifier"
	"github.com/dmitrijs2005/reformguide/internal/server/config"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/reformguide/internal/server/services"
	"github.com/dmitrijs2005/reformguide/internal/server/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	hs "github.com/dmitrijs2005/reformguide/internal/server/http"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *hs.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	store, err := newImageStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("image store init error: %w", err)
	}

	codec := auth.NewCodec([]byte(c.SecretKey))
	issuer := auth.NewIssuer(codec, c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)
	hasher := auth.NewPasswordHasher(c.PasswordHashCost)

	us := services.NewUserService(db, rm, issuer, hasher)
	rs := services.NewReformService(db, rm, store, newClassifier(c), logger)
	sessions := auth.NewAuthenticator(issuer, us)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	server := hs.NewHTTPServer(c.EndpointAddrHTTP, logger, us, rs, sessions, registry, c.MaxUploadSize)

	return &App{config: c, logger: logger, db: db, server: server}, nil
}

func newImageStore(ctx context.Context, c *config.Config) (storage.Store, error) {
	switch c.ImageStorage {
	case config.StorageDisk:
		return storage.NewDiskStore(c.ImageDir)
	case config.StorageS3:
		return storage.NewS3Store(ctx, storage.S3Config{
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown image storage %q", c.ImageStorage)
	}
}

// newClassifier falls back to a fixed label when no classification service
// is configured.
func newClassifier(c *config.Config) classifier.Classifier {
	if c.ClassifierEndpoint == "" {
		return classifier.StaticClassifier{}
	}
	return classifier.NewHTTPClassifier(c.ClassifierEndpoint)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
