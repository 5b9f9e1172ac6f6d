package container

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/config"
	"github.com/oksasatya/t2-user-service/internal/domain/repository"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/cache"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/hash"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/t2-user-service/internal/infrastructure/postgres"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/search"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/sqlite"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/storage"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
)

// closers runs cleanup funcs in reverse order.
type closers []func()

func (c closers) close() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// OpenUsers opens the repository selected by cfg.DBDriver. For postgres it
// also applies pending migrations.
func OpenUsers(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.UserRepository, func(), error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		logger.WithField("host", cfg.DBHost).Info("users: postgres")
		return pginfra.NewUserRepository(pool), pool.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo := sqlite.NewUserRepository(db)
		if err := repo.Init(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.WithField("path", cfg.SQLitePath).Info("users: sqlite")
		return repo, func() { _ = db.Close() }, nil

	case config.DriverMemory:
		logger.Warn("users: in-memory repository, data is lost on restart")
		return memory.NewUserRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}

// Build wires every component from cfg. Redis, Elasticsearch and RabbitMQ
// are optional: a backend that cannot be reached is logged and left out.
// The returned func releases everything Build opened.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, func(), error) {
	var cl closers

	users, closeUsers, err := OpenUsers(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cl = append(cl, closeUsers)

	store, closeStore, err := storage.New(ctx, cfg, logger)
	if err != nil {
		cl.close()
		return nil, nil, err
	}
	cl = append(cl, func() { _ = closeStore() })

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		JWT:     helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL),
		Users:   users,
		Hash:    hash.NewBCrypt(cfg.BcryptCost),
		Storage: store,
		URLs:    storage.NewURLBuilder(cfg),
	}

	if cfg.RedisAddr != "" {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable; sessions are not revocable and password reset is disabled")
		} else {
			c.Redis = rdb
			c.Tokens = cache.NewTokenStore(rdb)
			cl = append(cl, func() { _ = rdb.Close() })
		}
	}

	if cfg.SearchEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client init failed; search disabled")
		} else {
			ix := search.NewUserIndex(es, cfg.ESUsersIndex)
			if err := ix.EnsureIndex(ctx); err != nil {
				logger.WithError(err).Warn("elasticsearch index check failed")
			}
			c.Indexer = ix
		}
	}

	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; emails will not be queued")
		} else {
			c.Publisher = pub
			cl = append(cl, pub.Close)
		}
	}

	return c, cl.close, nil
}
