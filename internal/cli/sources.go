package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/maxhum-sudo/LifeCost/internal/app"
	"github.com/maxhum-sudo/LifeCost/internal/config"
	"github.com/maxhum-sudo/LifeCost/internal/infra/file"
	"github.com/maxhum-sudo/LifeCost/internal/infra/memory"
	"github.com/maxhum-sudo/LifeCost/internal/infra/postgres"
	redisinfra "github.com/maxhum-sudo/LifeCost/internal/infra/redis"
)

// questionnaireLoader selects where the configured questionnaire is read from.
// The returned cleanup releases any connection opened for it.
func questionnaireLoader(ctx context.Context, cfg config.Config) (memory.QuestionnaireLoader, func(), error) {
	switch cfg.Questionnaire.Source {
	case config.SourceEmbedded, "":
		return file.NewEmbeddedLoader(), func() {}, nil
	case config.SourceFile:
		if cfg.Questionnaire.Path == "" {
			return nil, nil, fmt.Errorf("questionnaire.path required for source %q", config.SourceFile)
		}
		return file.NewQuestionnaireLoader(cfg.Questionnaire.Path), func() {}, nil
	case config.SourcePostgres:
		if cfg.Postgres.URL == "" {
			return nil, nil, fmt.Errorf("postgres.url required for source %q", config.SourcePostgres)
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return postgres.NewQuestionnaireLoader(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown questionnaire source %q", cfg.Questionnaire.Source)
	}
}

func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// catalogRepository caches catalogs in Redis when configured, in process otherwise.
func catalogRepository(cfg config.Config, client *redis.Client, loader memory.QuestionnaireLoader) app.CatalogRepository {
	ttl := config.TTLDuration(cfg.Questionnaire.TTL, 10*time.Minute)
	if client != nil {
		return redisinfra.NewCatalogRepository(client, loader, ttl)
	}
	return memory.NewCatalogRepository(loader, ttl)
}

// resultRepository prefers Postgres, then Redis, then memory.
func resultRepository(cfg config.Config, client *redis.Client, logger *slog.Logger) (app.ResultRepository, func()) {
	if cfg.Postgres.URL != "" {
		db := postgres.NewDB(cfg.Postgres.URL)
		logger.Info("results stored in postgres")
		return postgres.NewResultStore(db), func() { _ = db.Close() }
	}
	if client != nil {
		logger.Info("results stored in redis", "addr", cfg.Redis.Addr)
		return redisinfra.NewResultStore(client, config.TTLDuration(cfg.Redis.TTL, 24*time.Hour)), func() {}
	}
	logger.Warn("no persistent store configured, results kept in memory")
	return memory.NewResultStore(), func() {}
}
