package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexandruvladut/articles-rest-api/config"
	"github.com/alexandruvladut/articles-rest-api/internal/delivery/http/middleware"
	"github.com/alexandruvladut/articles-rest-api/internal/delivery/http/validator"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/entity"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/repository"
	"github.com/alexandruvladut/articles-rest-api/internal/infra/auth"
	"github.com/alexandruvladut/articles-rest-api/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repositories backing the integration test. They implement the
// same contracts as the postgres layer, including username uniqueness and
// newest-first ordering.

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*entity.User)}
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *memoryUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.users[username]

	return ok, nil
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.Username] = &clone

	return nil
}

type memoryArticleRepo struct {
	mu       sync.Mutex
	articles map[uuid.UUID]*entity.Article
}

func newMemoryArticleRepo() *memoryArticleRepo {
	return &memoryArticleRepo{articles: make(map[uuid.UUID]*entity.Article)}
}

func (r *memoryArticleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	article, ok := r.articles[id]
	if !ok {
		return nil, repository.ErrArticleNotFound
	}
	clone := *article

	return &clone, nil
}

func (r *memoryArticleRepo) Create(_ context.Context, article *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	article.ID = uuid.New()
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	clone := *article
	r.articles[article.ID] = &clone

	return nil
}

func (r *memoryArticleRepo) Update(_ context.Context, article *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	article.UpdatedAt = time.Now()
	clone := *article
	r.articles[article.ID] = &clone

	return nil
}

func (r *memoryArticleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.articles, id)

	return nil
}

func (r *memoryArticleRepo) sorted() []*entity.Article {
	all := make([]*entity.Article, 0, len(r.articles))
	for _, article := range r.articles {
		clone := *article
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return all
}

func pageOf(all []*entity.Article, page, size int) []*entity.Article {
	start := page * size
	if start >= len(all) {
		return nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}

	return all[start:end]
}

func (r *memoryArticleRepo) List(_ context.Context, page, size int) ([]*entity.Article, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.sorted()

	return pageOf(all, page, size), int64(len(all)), nil
}

func (r *memoryArticleRepo) SearchByTitle(_ context.Context, title string, page, size int) ([]*entity.Article, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Article
	for _, article := range r.sorted() {
		if strings.Contains(strings.ToLower(article.Title), strings.ToLower(title)) {
			matched = append(matched, article)
		}
	}

	return pageOf(matched, page, size), int64(len(matched)), nil
}

func (r *memoryArticleRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.articles)), nil
}

func (r *memoryArticleRepo) CreateBatch(ctx context.Context, articles []*entity.Article) error {
	for _, article := range articles {
		if err := r.Create(ctx, article); err != nil {
			return err
		}
	}

	return nil
}

// memoryTxManager runs the function directly; the in-memory repositories
// have no transaction semantics to manage.
type memoryTxManager struct {
	userRepo    repository.UserRepository
	articleRepo repository.ArticleRepository
}

func (m *memoryTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *memoryTxManager) UserRepo() repository.UserRepository { return m.userRepo }

func (m *memoryTxManager) ArticleRepo() repository.ArticleRepository { return m.articleRepo }

// newTestServer assembles an echo instance with the real services, the real
// middleware chain and in-memory persistence.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			TokenTTL:   time.Hour,
			BcryptCost: 4, // MinCost, keeps the test fast
		},
	}
	cfg.SecretKey.Token = "integration-test-secret"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := newMemoryUserRepo()
	articleRepo := newMemoryArticleRepo()
	txManager := &memoryTxManager{userRepo: userRepo, articleRepo: articleRepo}

	hasher := auth.NewBcryptHasher(cfg)
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	authUsecase := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:    txManager,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})
	articleUsecase := impl.NewArticleService(impl.ArticleServiceParams{
		TxManager:   txManager,
		ArticleRepo: articleRepo,
		Logger:      logger,
	})

	authHandler := NewAuthHandler(authUsecase, logger)
	articleHandler := NewArticleHandler(articleUsecase, logger)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	e.GET("/health", HealthCheck)

	authGroup := e.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	articleGroup := e.Group("/api/articles")
	articleGroup.Use(authMiddleware.Authenticate)
	articleGroup.Use(authMiddleware.RequireRole(entity.RoleUser))
	articleGroup.POST("", articleHandler.Create)
	articleGroup.GET("", articleHandler.List)
	articleGroup.GET("/search", articleHandler.SearchByTitle)
	articleGroup.GET("/:id", articleHandler.GetByID)
	articleGroup.PUT("/:id", articleHandler.Update)
	articleGroup.DELETE("/:id", articleHandler.Delete)

	return e
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func dataField(t *testing.T, rec *httptest.ResponseRecorder, field string) string {
	t.Helper()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	value, _ := envelope.Data[field].(string)

	return value
}

func TestAuthArticleFlow_Integration(t *testing.T) {
	e := newTestServer(t)

	// Registration succeeds once, then conflicts.
	rec := doJSON(e, http.MethodPost, "/auth/register", "",
		`{"username":"alice","email":"alice@example.com","password":"Password123!"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/auth/register", "",
		`{"username":"alice","email":"alice@example.com","password":"Password123!"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Wrong password and unknown username fail identically.
	rec = doJSON(e, http.MethodPost, "/auth/login", "",
		`{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	wrongPasswordBody := rec.Body.String()

	rec = doJSON(e, http.MethodPost, "/auth/login", "",
		`{"username":"nobody","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, wrongPasswordBody, rec.Body.String())

	// Successful login yields a usable bearer token.
	rec = doJSON(e, http.MethodPost, "/auth/login", "",
		`{"username":"alice","password":"Password123!"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token := dataField(t, rec, "token")
	require.NotEmpty(t, token)

	// The article surface is closed without a token.
	rec = doJSON(e, http.MethodGet, "/api/articles", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/articles", "not-a-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Create, read, update, search, delete with the token.
	rec = doJSON(e, http.MethodPost, "/api/articles", token,
		`{"title":"Go Concurrency Patterns","content":"Share memory by communicating.","author":"Alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	articleID := dataField(t, rec, "id")
	require.NotEmpty(t, articleID)

	rec = doJSON(e, http.MethodGet, "/api/articles/"+articleID, token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Go Concurrency Patterns", dataField(t, rec, "title"))

	rec = doJSON(e, http.MethodPut, "/api/articles/"+articleID, token,
		`{"title":"Go Concurrency Patterns, Revisited","content":"Updated.","author":"Alice"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/articles/search?title=revisited", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Revisited")

	rec = doJSON(e, http.MethodGet, "/api/articles/"+uuid.NewString(), token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/articles/not-a-uuid", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/articles/"+articleID, token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/articles/"+articleID, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Validation failures are rejected before reaching the store.
	rec = doJSON(e, http.MethodPost, "/api/articles", token, `{"title":"","content":"","author":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Health stays open.
	rec = doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
