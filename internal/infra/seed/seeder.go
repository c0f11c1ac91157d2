// Package seed fills an empty database with generated demo articles.
package seed

import (
	"context"
	"log/slog"

	"github.com/alexandruvladut/articles-rest-api/config"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/entity"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/repository"
	"github.com/alexandruvladut/articles-rest-api/internal/errors"

	"github.com/brianvoe/gofakeit/v7"
)

// Seeder inserts generated articles on startup when seeding is enabled.
// It only runs against an empty articles table, so restarting the
// service never duplicates data.
type Seeder struct {
	cfg         *config.Config
	articleRepo repository.ArticleRepository
	logger      *slog.Logger
}

// NewSeeder is the constructor for Seeder, injected by Fx.
func NewSeeder(cfg *config.Config, articleRepo repository.ArticleRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		cfg:         cfg,
		articleRepo: articleRepo,
		logger:      logger,
	}
}

// Run seeds the articles table if seeding is enabled and the table is empty.
func (s *Seeder) Run(ctx context.Context) error {
	if s.cfg.Seed == nil || !s.cfg.Seed.Enabled {
		return nil
	}

	count, err := s.articleRepo.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to count articles before seeding")
	}
	if count > 0 {
		s.logger.Info("Skipping article seeding, table is not empty",
			slog.Int64("count", count))

		return nil
	}

	total := s.cfg.Seed.Articles
	s.logger.Info("Seeding articles", slog.Int("count", total))

	faker := gofakeit.New(0)
	articles := make([]*entity.Article, 0, total)
	for range total {
		articles = append(articles, &entity.Article{
			Title:   faker.BookTitle(),
			Content: faker.Paragraph(3, 5, 12, "\n\n"),
			Author:  faker.Name(),
		})
	}

	if err := s.articleRepo.CreateBatch(ctx, articles); err != nil {
		return errors.Wrap(err, "failed to seed articles")
	}

	s.logger.Info("Article seeding complete", slog.Int("count", total))

	return nil
}
