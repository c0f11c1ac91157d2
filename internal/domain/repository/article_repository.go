package repository

import (
	"context"
	"errors"

	"github.com/alexandruvladut/articles-rest-api/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrArticleNotFound is a domain-specific error returned when an article is not found.
var ErrArticleNotFound = errors.New("article not found")

// ArticleRepository defines the standard operations for article persistence.
// List and SearchByTitle page through articles ordered by creation time,
// newest first, and report the total match count alongside the page.
type ArticleRepository interface {
	// FindByID retrieves a single article by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Article, error)

	// Create persists a new article entity to the storage.
	Create(ctx context.Context, article *entity.Article) error

	// Update modifies an existing article entity in the storage.
	Update(ctx context.Context, article *entity.Article) error

	// Delete removes the article with the given ID. Deleting a missing
	// article is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of articles ordered by CreatedAt descending.
	// page is zero-based.
	List(ctx context.Context, page, size int) ([]*entity.Article, int64, error)

	// SearchByTitle returns one page of articles whose title contains the
	// given substring, matched case-insensitively, ordered by CreatedAt
	// descending.
	SearchByTitle(ctx context.Context, title string, page, size int) ([]*entity.Article, int64, error)

	// Count returns the total number of stored articles.
	Count(ctx context.Context) (int64, error)

	// CreateBatch persists a batch of articles in one statement. Used by the seeder.
	CreateBatch(ctx context.Context, articles []*entity.Article) error
}
