package protocal

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/configs"
	"storefront/internal/adapters/output/gemini"
	"storefront/internal/adapters/output/memory"
	"storefront/internal/adapters/output/postgres"
	redisAdapter "storefront/internal/adapters/output/redis"
	"storefront/internal/domain"
	"storefront/internal/ports/output"
	"storefront/pkg/database_driver/gorm"
	"storefront/pkg/log"
)

// Options are the flags shared by every command
type Options struct {
	ConfigPath string
	Env        string
}

// dependencies holds the output adapters selected by configuration
type dependencies struct {
	db            *gorm.DB
	products      output.ProductStore
	carts         output.CartStore
	metrics       output.MetricsStore
	conversations output.ConversationStore
	embedder      output.Embedder
	ping          func(ctx context.Context) error

	closers []io.Closer
}

// loadConfig reads configuration and sets up logging. The returned func flushes the log file.
func loadConfig(opts Options) (*configs.Config, func(), error) {
	configs.InitViper(opts.ConfigPath, opts.Env)
	cfg := configs.GetViper()

	closer, err := log.Setup(log.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	})
	if err != nil {
		return nil, nil, err
	}
	logrus.Infof("Environment: %s", cfg.App.Env)
	return cfg, func() {
		if closer != nil {
			_ = closer.Close()
		}
	}, nil
}

// connectStorage opens the catalog and cart backend
func connectStorage(cfg *configs.Config) (*dependencies, error) {
	deps := &dependencies{}

	switch strings.ToLower(cfg.App.Storage) {
	case "memory":
		logrus.Warn("Using in-memory storage; catalog and carts are lost on restart")
		store := memory.NewStore()
		deps.products, deps.carts, deps.metrics = store, store, store
	default:
		db, err := gorm.ConnectToPostgreSQL(gorm.Options{
			Host:         cfg.Postgres.Host,
			Port:         cfg.Postgres.Port,
			Username:     cfg.Postgres.Username,
			Password:     cfg.Postgres.Password,
			DbName:       cfg.Postgres.DbName,
			SSLMode:      cfg.Postgres.SSLMode,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
			MaxIdleConns: cfg.Postgres.MaxIdleConns,
			Debug:        cfg.App.Debug,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		deps.db = db
		deps.products = postgres.NewProductRepository(db.Postgres)
		deps.carts = postgres.NewCartRepository(db.Postgres)
		deps.metrics = postgres.NewMetricsRepository(db.Postgres)
		deps.ping = func(ctx context.Context) error {
			sqlDB, err := db.Postgres.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	return deps, nil
}

// connectConversations picks the conversation store. Redis falls back to memory when unreachable.
func (d *dependencies) connectConversations(ctx context.Context, cfg *configs.Config) {
	timeout := time.Duration(cfg.Session.Timeout) * time.Minute

	if strings.EqualFold(cfg.Session.Store, "redis") {
		client, err := redisAdapter.NewClient(ctx, redisAdapter.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			d.conversations = redisAdapter.NewConversationStore(client, timeout)
			d.closers = append(d.closers, client)
			return
		}
		logrus.Warnf("Redis unavailable, keeping conversations in memory: %v", err)
	}
	d.conversations = memory.NewConversationStore(timeout)
}

// connectEmbedder creates the embedding client. Without an API key recommendations stay disabled.
func (d *dependencies) connectEmbedder(ctx context.Context, cfg *configs.Config) {
	if cfg.Gemini.APIKey == "" {
		logrus.Warn("No Gemini API key configured; free text recommendations are disabled")
		return
	}
	embedder, err := gemini.NewEmbedder(ctx, cfg.Gemini)
	if err != nil {
		logrus.Errorf("Failed to create embedder: %v", err)
		return
	}
	d.embedder = embedder
	d.closers = append(d.closers, embedder)
}

// migrate creates the schema when backed by postgres
func (d *dependencies) migrate() error {
	if d.db == nil {
		return nil
	}
	return domain.MigrateDatabase(d.db.Postgres)
}

func (d *dependencies) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			logrus.Errorln(err)
		}
	}
	if d.db != nil {
		gorm.DisconnectPostgres(d.db.Postgres)
	}
}
