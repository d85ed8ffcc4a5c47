package data

import (
	"context"
	"fmt"
	"time"

	"moviecurator/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewMovieRepo,
	NewListRepo,
	NewReviewRepo,
	NewCuratedListRepo,
	NewTMDBClient,
)

const defaultCacheTTL = 15 * time.Minute

// Data encapsulates database and cache connections
type Data struct {
	db       *gorm.DB
	rdb      *redis.Client
	cacheTTL time.Duration
	log      *log.Helper
}

// NewData creates Data instance with database and Redis connections
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	l := log.NewHelper(logger)

	db, err := openDatabase(c.Database)
	if err != nil {
		l.Errorf("failed to connect to database: %v", err)
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		l.Errorf("failed to get database instance: %v", err)
		return nil, nil, err
	}

	// Configure connection pool
	maxIdle, maxOpen := c.Database.MaxIdleConns, c.Database.MaxOpenConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	if maxOpen <= 0 {
		maxOpen = 100
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	l.Info("database connected successfully")

	if c.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			l.Errorf("failed to migrate database: %v", err)
			return nil, nil, err
		}
		l.Info("database schema migrated")
	}

	rdb := newRedis(c.Redis, l)

	data := &Data{
		db:       db,
		rdb:      rdb,
		cacheTTL: defaultCacheTTL,
		log:      l,
	}
	if c.Redis != nil && c.Redis.CacheTTL.AsDuration() > 0 {
		data.cacheTTL = c.Redis.CacheTTL.AsDuration()
	}

	cleanup := func() {
		l.Info("closing data resources")
		if data.rdb != nil {
			if err := data.rdb.Close(); err != nil {
				l.Errorf("failed to close redis: %v", err)
			}
		}
		if sqlDB != nil {
			if err := sqlDB.Close(); err != nil {
				l.Errorf("failed to close database: %v", err)
			}
		}
	}

	return data, cleanup, nil
}

func openDatabase(c *conf.Database) (*gorm.DB, error) {
	if c == nil {
		return nil, fmt.Errorf("database config is missing")
	}

	// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey.
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	switch c.Driver {
	case "", "postgres":
		return gorm.Open(postgres.Open(c.Source), cfg)
	case "sqlite":
		return gorm.Open(openSQLite(c.Source), cfg)
	}
	return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models...)
}

// newRedis returns nil when Redis is not configured or unreachable
func newRedis(c *conf.Redis, l *log.Helper) *redis.Client {
	if c == nil || c.Addr == "" {
		l.Info("redis not configured, movie cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		ReadTimeout:  c.ReadTimeout.AsDuration(),
		WriteTimeout: c.WriteTimeout.AsDuration(),
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		l.Warnf("failed to connect to redis: %v", err)
		// Redis is optional, continue without it
		_ = rdb.Close()
		return nil
	}
	l.Info("redis connected successfully")
	return rdb
}
