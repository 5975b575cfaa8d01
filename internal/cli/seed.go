package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"github.com/maxhum-sudo/LifeCost/internal/config"
	"github.com/maxhum-sudo/LifeCost/internal/engine"
	"github.com/maxhum-sudo/LifeCost/internal/infra/file"
	"github.com/maxhum-sudo/LifeCost/internal/infra/postgres"
	redisinfra "github.com/maxhum-sudo/LifeCost/internal/infra/redis"
)

// NewSeedCmd stores a questionnaire file in Postgres for the postgres source.
func NewSeedCmd(opts *rootOptions) *cobra.Command {
	var (
		path string
		id   string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Validate a questionnaire file and upsert it into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			q, err := file.Decode(data)
			if err != nil {
				return err
			}
			switch {
			case id != "":
				q.ID = id
			case q.ID == "":
				q.ID = cfg.Questionnaire.ID
			}
			if _, err := engine.NewCatalog(q); err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
				return err
			}
			db := postgres.NewDB(cfg.Postgres.URL)
			defer db.Close()
			if err := postgres.NewQuestionnaireWriter(db).Upsert(ctx, q); err != nil {
				return err
			}
			logger.Info("questionnaire seeded", "id", q.ID, "questions", len(q.Questions))

			client := newRedisClient(cfg)
			if client == nil {
				return nil
			}
			defer client.Close()

			// Replace the cached copy so running servers pick up the new content.
			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				return err
			}
			defer pool.Close()
			ttl := config.TTLDuration(cfg.Questionnaire.TTL, 10*time.Minute)
			repo := redisinfra.NewCatalogRepository(client, postgres.NewQuestionnaireLoader(pool), ttl)
			if err := repo.Invalidate(ctx, q.ID); err != nil {
				logger.Warn("cache invalidation failed", "id", q.ID, "error", err)
				return nil
			}
			if _, err := repo.GetCatalog(ctx, q.ID); err != nil {
				return err
			}
			logger.Info("questionnaire cache refreshed", "id", q.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "questionnaire YAML or JSON file")
	cmd.Flags().StringVar(&id, "id", "", "questionnaire id (defaults to the file's id, then questionnaire.id)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
