package protocal

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Migrate creates the database schema and exits
func Migrate(opts Options) error {
	cfg, closeLog, err := loadConfig(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	deps, err := connectStorage(cfg)
	if err != nil {
		return err
	}
	defer deps.close()
	if deps.db == nil {
		return errors.New("migrate requires app.storage: postgres")
	}
	if err := deps.migrate(); err != nil {
		return err
	}
	logrus.Info("Database migrated")
	return nil
}

// BackfillEmbeddings embeds every product still lacking an embedding and exits
func BackfillEmbeddings(ctx context.Context, opts Options) error {
	cfg, closeLog, err := loadConfig(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	deps, err := connectStorage(cfg)
	if err != nil {
		return err
	}
	defer deps.close()
	deps.connectEmbedder(ctx, cfg)
	if deps.embedder == nil {
		return errors.New("embedding backfill requires gemini.api_key")
	}

	stored, err := newRecommendationService(cfg, deps).BackfillEmbeddings(ctx)
	logrus.Infof("Stored %d embeddings", stored)
	return err
}
