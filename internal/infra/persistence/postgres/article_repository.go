package postgres

import (
	"context"

	"github.com/alexandruvladut/articles-rest-api/internal/domain/entity"
	domainerrors "github.com/alexandruvladut/articles-rest-api/internal/domain/errors"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/repository"
	"github.com/alexandruvladut/articles-rest-api/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// articleRepository implements the repository.ArticleRepository interface using GORM.
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository is the constructor for articleRepository.
func NewArticleRepository(db *gorm.DB) repository.ArticleRepository {
	return &articleRepository{db: db}
}

// FindByID retrieves a single article by its unique ID.
func (repo *articleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	var articleM model.ArticleModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&articleM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrArticleNotFound
		}

		return nil, errors.Wrap(err, "failed to find article by id")
	}

	return toArticleDomain(&articleM), nil
}

// Create persists a new article entity to the database.
func (repo *articleRepository) Create(ctx context.Context, article *entity.Article) error {
	articleM := fromArticleDomain(article)

	if err := repo.db.WithContext(ctx).Create(articleM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required article information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create article")
	}

	article.ID = articleM.ID
	article.CreatedAt = articleM.CreatedAt
	article.UpdatedAt = articleM.UpdatedAt

	return nil
}

// Update modifies an existing article entity in the database.
func (repo *articleRepository) Update(ctx context.Context, article *entity.Article) error {
	articleM := fromArticleDomain(article)
	articleM.CreatedAt = article.CreatedAt // CreatedAt is immutable; keep the original value on Save.

	if err := repo.db.WithContext(ctx).Save(articleM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required article information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update article")
	}

	article.UpdatedAt = articleM.UpdatedAt

	return nil
}

// Delete removes the article with the given ID. Deleting a missing article is a no-op.
func (repo *articleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.ArticleModel{}, "id = ?", id).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete article")
	}

	return nil
}

// List returns one page of articles ordered by CreatedAt descending.
func (repo *articleRepository) List(ctx context.Context, page, size int) ([]*entity.Article, int64, error) {
	return repo.pagedQuery(ctx, repo.db.WithContext(ctx).Model(&model.ArticleModel{}), page, size)
}

// SearchByTitle returns one page of articles whose title contains the given
// substring, matched case-insensitively, ordered by CreatedAt descending.
func (repo *articleRepository) SearchByTitle(ctx context.Context, title string, page, size int) ([]*entity.Article, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.ArticleModel{}).
		Where("title ILIKE ?", "%"+escapeLike(title)+"%")

	return repo.pagedQuery(ctx, query, page, size)
}

// Count returns the total number of stored articles.
func (repo *articleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ArticleModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count articles")
	}

	return count, nil
}

// CreateBatch persists a batch of articles in chunks. Used by the seeder.
func (repo *articleRepository) CreateBatch(ctx context.Context, articles []*entity.Article) error {
	if len(articles) == 0 {
		return nil
	}

	models := make([]*model.ArticleModel, 0, len(articles))
	for _, article := range articles {
		models = append(models, fromArticleDomain(article))
	}

	if err := repo.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to batch create articles")
	}

	return nil
}

// pagedQuery applies the shared count + order + offset/limit sequence.
func (repo *articleRepository) pagedQuery(ctx context.Context, query *gorm.DB, page, size int) ([]*entity.Article, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count articles")
	}

	var models []*model.ArticleModel
	err := query.
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&models).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list articles")
	}

	articles := make([]*entity.Article, 0, len(models))
	for _, m := range models {
		articles = append(articles, toArticleDomain(m))
	}

	return articles, total, nil
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	replaced := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			replaced = append(replaced, '\\')
		}
		replaced = append(replaced, s[i])
	}

	return string(replaced)
}

// --- Mapper Functions ---

// toArticleDomain converts a GORM ArticleModel to a domain Article entity.
func toArticleDomain(data *model.ArticleModel) *entity.Article {
	if data == nil {
		return nil
	}

	return &entity.Article{
		ID:        data.ID,
		Title:     data.Title,
		Content:   data.Content,
		Author:    data.Author,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromArticleDomain converts a domain Article entity to a GORM ArticleModel for persistence.
func fromArticleDomain(data *entity.Article) *model.ArticleModel {
	if data == nil {
		return nil
	}

	return &model.ArticleModel{
		ID:      data.ID,
		Title:   data.Title,
		Content: data.Content,
		Author:  data.Author,
	}
}
