package usecase

import (
	"context"

	"github.com/alexandruvladut/articles-rest-api/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateArticleInput defines the data required to create an article.
type CreateArticleInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author" validate:"required,max=100"`
}

// UpdateArticleInput defines the data for a full article update.
type UpdateArticleInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author" validate:"required,max=100"`
}

// ArticlePage is one page of articles plus paging metadata.
type ArticlePage struct {
	Items      []*entity.Article
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

// ArticleUsecase defines the interface for article business operations.
type ArticleUsecase interface {
	Create(ctx context.Context, input *CreateArticleInput) (*entity.Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Article, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateArticleInput) (*entity.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns articles ordered by creation time, newest first.
	List(ctx context.Context, page, size int) (*ArticlePage, error)

	// SearchByTitle returns articles whose title contains the given
	// substring, matched case-insensitively, newest first.
	SearchByTitle(ctx context.Context, title string, page, size int) (*ArticlePage, error)
}
