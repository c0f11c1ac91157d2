package impl

import (
	"context"
	"log/slog"

	deliverycontext "github.com/alexandruvladut/articles-rest-api/internal/delivery/context"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/entity"
	domainerrors "github.com/alexandruvladut/articles-rest-api/internal/domain/errors"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/repository"
	"github.com/alexandruvladut/articles-rest-api/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// articleService implements the ArticleUsecase interface.
type articleService struct {
	txManager   repository.TransactionManager
	articleRepo repository.ArticleRepository
	logger      *slog.Logger
}

// ArticleServiceParams holds dependencies for ArticleService, injected by Fx.
type ArticleServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ArticleRepo repository.ArticleRepository
	Logger      *slog.Logger
}

// NewArticleService is the constructor for articleService.
func NewArticleService(params ArticleServiceParams) usecase.ArticleUsecase {
	return &articleService{
		txManager:   params.TxManager,
		articleRepo: params.ArticleRepo,
		logger:      params.Logger,
	}
}

func (srv *articleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create persists a new article.
func (srv *articleService) Create(ctx context.Context, input *usecase.CreateArticleInput) (*entity.Article, error) {
	article := &entity.Article{
		Title:   input.Title,
		Content: input.Content,
		Author:  input.Author,
	}

	if err := srv.articleRepo.Create(ctx, article); err != nil {
		srv.log(ctx).Error("Failed to create article", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create article")
	}

	srv.log(ctx).Debug("Article created", slog.Any("articleID", article.ID))

	return article, nil
}

// GetByID retrieves a single article.
func (srv *articleService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	article, err := srv.articleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return nil, errors.Wrap(domainerrors.ErrArticleNotFound, "article lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find article")
	}

	return article, nil
}

// Update overwrites the mutable fields of an existing article. The load and
// save run in one transaction so concurrent updates cannot interleave.
func (srv *articleService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateArticleInput) (*entity.Article, error) {
	var updated *entity.Article

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		articleRepo := repoFactory.ArticleRepo()

		article, err := articleRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrArticleNotFound) {
				return errors.Wrap(domainerrors.ErrArticleNotFound, "article update failed")
			}

			return errors.Wrap(err, "failed to load article for update")
		}

		article.Title = input.Title
		article.Content = input.Content
		article.Author = input.Author

		if err := articleRepo.Update(ctx, article); err != nil {
			return errors.Wrap(err, "failed to update article")
		}

		updated = article

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Article update failed", slog.Any("articleID", id), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Article updated", slog.Any("articleID", id))

	return updated, nil
}

// Delete removes an article. Deleting a missing article succeeds silently.
func (srv *articleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.articleRepo.Delete(ctx, id); err != nil {
		srv.log(ctx).Error("Failed to delete article", slog.Any("articleID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete article")
	}

	srv.log(ctx).Debug("Article deleted", slog.Any("articleID", id))

	return nil
}

// List returns one page of articles, newest first.
func (srv *articleService) List(ctx context.Context, page, size int) (*usecase.ArticlePage, error) {
	page, size = normalizePaging(page, size)

	items, total, err := srv.articleRepo.List(ctx, page, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list articles")
	}

	return buildArticlePage(items, page, size, total), nil
}

// SearchByTitle returns one page of title matches, newest first.
func (srv *articleService) SearchByTitle(ctx context.Context, title string, page, size int) (*usecase.ArticlePage, error) {
	page, size = normalizePaging(page, size)

	items, total, err := srv.articleRepo.SearchByTitle(ctx, title, page, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search articles by title")
	}

	return buildArticlePage(items, page, size, total), nil
}

// normalizePaging clamps paging parameters to sane bounds.
func normalizePaging(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return page, size
}

func buildArticlePage(items []*entity.Article, page, size int, total int64) *usecase.ArticlePage {
	totalPages := int((total + int64(size) - 1) / int64(size))

	return &usecase.ArticlePage{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
