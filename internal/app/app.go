// Package app opens the backends selected by configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/Mitrevichin/Job-Tracking-App/internal/auth"
	"github.com/Mitrevichin/Job-Tracking-App/internal/config"
	"github.com/Mitrevichin/Job-Tracking-App/internal/database"
	"github.com/Mitrevichin/Job-Tracking-App/internal/events"
	"github.com/Mitrevichin/Job-Tracking-App/internal/objectstore"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
	mongostore "github.com/Mitrevichin/Job-Tracking-App/internal/store/mongo"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store/postgres"
)

// Stores groups the persistence backends of one database driver.
type Stores struct {
	Users  store.UserStore
	Jobs   store.JobStore
	Health store.HealthChecker
	// Postgres is set when the postgres driver is selected.
	Postgres *database.DBinstanceStruct
	close    func(context.Context) error
}

// Close releases the database connection
func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// OpenStores connects to the configured database and prepares its schema or indexes.
func OpenStores(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := database.NewDBInstance(database.NewDBConfig(cfg), logger)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return &Stores{
			Users:    postgres.NewUserStore(db),
			Jobs:     postgres.NewJobStore(db),
			Health:   db,
			Postgres: db,
			close:    func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMongo:
		db, err := database.NewMongoDatabase(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = db.Client().Disconnect(ctx)
			return nil, err
		}
		return &Stores{
			Users:  mongostore.NewUserStore(db),
			Jobs:   mongostore.NewJobStore(db),
			Health: database.MongoHealth{DB: db},
			close:  func(ctx context.Context) error { return db.Client().Disconnect(ctx) },
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Redis returns a client for cfg when any component needs one, nil otherwise.
func Redis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.Auth.Revocation != config.DriverRedis && cfg.Events.Driver != config.DriverRedis {
		return nil, nil
	}
	return database.NewRedisClient(ctx, cfg.Redis.URL)
}

// Blacklist returns the configured token revocation store and a function stopping it.
func Blacklist(cfg config.AuthConfig, rdb *redis.Client, logger *slog.Logger) (auth.JwtBlacklistStore, func(), error) {
	switch cfg.Revocation {
	case config.DriverRedis:
		if rdb == nil {
			return nil, nil, errors.New("redis revocation needs a redis client")
		}
		return auth.NewRedisBlacklistStore(rdb), func() {}, nil
	case config.DriverMemory, "":
		bl := auth.NewInMemoryBlacklistStore(logger)
		return bl, bl.Stop, nil
	default:
		return nil, nil, fmt.Errorf("unknown revocation backend %q", cfg.Revocation)
	}
}

// Publisher returns the configured job event publisher, events.Nop when none is configured.
func Publisher(cfg config.EventsConfig, rdb *redis.Client, logger *slog.Logger) (events.Publisher, error) {
	switch cfg.Driver {
	case config.DriverNone:
		return events.Nop{}, nil
	case config.DriverRedis:
		if rdb == nil {
			return nil, errors.New("redis events need a redis client")
		}
		return events.NewRedisPublisher(rdb, cfg.Channel), nil
	case config.DriverAMQP:
		p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}

// Avatars returns the configured object store. The returned store is a nil interface
// when no driver is configured so callers can compare it with nil.
func Avatars(ctx context.Context, cfg config.StorageConfig) (objectstore.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Driver {
	case config.DriverNone:
		return nil, noop, nil
	case config.DriverMinio:
		s, err := objectstore.NewMinioStore(ctx, cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.Bucket, cfg.UseSSL, cfg.PublicBaseURL)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case config.DriverGCS:
		s, err := objectstore.NewCloudStorageClient(ctx, cfg.Bucket, cfg.PublicBaseURL)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
