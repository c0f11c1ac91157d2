package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexandruvladut/articles-rest-api/internal/delivery/http/response"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/entity"
	"github.com/alexandruvladut/articles-rest-api/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ArticleHandler holds dependencies for article handlers.
type ArticleHandler struct {
	uc     usecase.ArticleUsecase
	logger *slog.Logger
}

// NewArticleHandler is the constructor for ArticleHandler, injected by Fx.
func NewArticleHandler(uc usecase.ArticleUsecase, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		uc:     uc,
		logger: logger,
	}
}

// articleResponse is the JSON shape of a single article.
type articleResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// pageResponse wraps one page of articles with paging metadata.
type pageResponse struct {
	Items      []articleResponse `json:"items"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalItems int64             `json:"totalItems"`
	TotalPages int               `json:"totalPages"`
}

// Create handles POST /api/articles.
func (h *ArticleHandler) Create(c echo.Context) error {
	input := new(usecase.CreateArticleInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	article, err := h.uc.Create(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toArticleResponse(article), "Article created")
}

// GetByID handles GET /api/articles/:id.
func (h *ArticleHandler) GetByID(c echo.Context) error {
	id, ok := parseArticleID(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ARTICLE_ID", "Article id must be a valid UUID")
	}

	article, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toArticleResponse(article), "")
}

// Update handles PUT /api/articles/:id. The stored article is fully
// replaced by the request body.
func (h *ArticleHandler) Update(c echo.Context) error {
	id, ok := parseArticleID(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ARTICLE_ID", "Article id must be a valid UUID")
	}

	input := new(usecase.UpdateArticleInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	article, err := h.uc.Update(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toArticleResponse(article), "Article updated")
}

// Delete handles DELETE /api/articles/:id.
func (h *ArticleHandler) Delete(c echo.Context) error {
	id, ok := parseArticleID(c)
	if !ok {
		return response.BadRequest(c, "INVALID_ARTICLE_ID", "Article id must be a valid UUID")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Article deleted")
}

// List handles GET /api/articles with optional page and size query params.
func (h *ArticleHandler) List(c echo.Context) error {
	page, size := parsePaging(c)

	result, err := h.uc.List(c.Request().Context(), page, size)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPageResponse(result), "")
}

// SearchByTitle handles GET /api/articles/search?title=...
func (h *ArticleHandler) SearchByTitle(c echo.Context) error {
	page, size := parsePaging(c)
	title := c.QueryParam("title")

	result, err := h.uc.SearchByTitle(c.Request().Context(), title, page, size)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPageResponse(result), "")
}

func parseArticleID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// parsePaging reads page and size query params, falling back to zero
// values. Range clamping happens in the usecase layer.
func parsePaging(c echo.Context) (page, size int) {
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil {
		size = v
	}

	return page, size
}

func toArticleResponse(article *entity.Article) articleResponse {
	return articleResponse{
		ID:        article.ID.String(),
		Title:     article.Title,
		Content:   article.Content,
		Author:    article.Author,
		CreatedAt: article.CreatedAt.Format(time.RFC3339),
		UpdatedAt: article.UpdatedAt.Format(time.RFC3339),
	}
}

func toPageResponse(page *usecase.ArticlePage) pageResponse {
	items := make([]articleResponse, 0, len(page.Items))
	for _, article := range page.Items {
		items = append(items, toArticleResponse(article))
	}

	return pageResponse{
		Items:      items,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}
