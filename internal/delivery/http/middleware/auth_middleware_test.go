package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "github.com/alexandruvladut/articles-rest-api/internal/delivery/context"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/entity"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/repository"
	mockRepo "github.com/alexandruvladut/articles-rest-api/internal/mocks/repository"
	mockSvc "github.com/alexandruvladut/articles-rest-api/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authMiddlewareFixtures struct {
	middleware *AuthMiddleware
	tokenSvc   *mockSvc.MockTokenService
	userRepo   *mockRepo.MockUserRepository
}

func createTestAuthMiddleware(t *testing.T) authMiddlewareFixtures {
	tokenSvc := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	return authMiddlewareFixtures{
		middleware: NewAuthMiddleware(tokenSvc, userRepo),
		tokenSvc:   tokenSvc,
		userRepo:   userRepo,
	}
}

func newEchoContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

// capturedIdentity runs the Authenticate middleware and reports the identity
// visible to the downstream handler, if any.
func capturedIdentity(t *testing.T, fx authMiddlewareFixtures, c echo.Context) (*entity.Identity, bool) {
	t.Helper()

	var identity *entity.Identity
	var ok bool
	handler := fx.middleware.Authenticate(func(c echo.Context) error {
		identity, ok = deliverycontext.GetIdentity(c.Request().Context())

		return nil
	})

	require.NoError(t, handler(c))

	return identity, ok
}

func TestAuthenticate_NoHeader_ContinuesUnauthenticated(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, _ := newEchoContext(t, "")

	identity, ok := capturedIdentity(t, fx, c)

	assert.False(t, ok)
	assert.Nil(t, identity)
}

func TestAuthenticate_NonBearerHeader_ContinuesUnauthenticated(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, _ := newEchoContext(t, "Basic dXNlcjpwYXNz")

	identity, ok := capturedIdentity(t, fx, c)

	assert.False(t, ok)
	assert.Nil(t, identity)
}

func TestAuthenticate_InvalidToken_ContinuesUnauthenticated(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, _ := newEchoContext(t, "Bearer tampered.token.value")

	fx.tokenSvc.EXPECT().ExtractSubject("tampered.token.value").Return("", false)

	identity, ok := capturedIdentity(t, fx, c)

	assert.False(t, ok)
	assert.Nil(t, identity)
}

func TestAuthenticate_DeletedUser_ContinuesUnauthenticated(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, _ := newEchoContext(t, "Bearer valid.token.value")

	// The token is valid but the account behind it no longer exists.
	fx.tokenSvc.EXPECT().ExtractSubject("valid.token.value").Return("ghost", true)
	fx.userRepo.EXPECT().
		FindByUsername(c.Request().Context(), "ghost").
		Return(nil, repository.ErrUserNotFound)

	identity, ok := capturedIdentity(t, fx, c)

	assert.False(t, ok)
	assert.Nil(t, identity)
}

func TestAuthenticate_ValidToken_AttachesIdentity(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, _ := newEchoContext(t, "Bearer valid.token.value")

	fx.tokenSvc.EXPECT().ExtractSubject("valid.token.value").Return("alice", true)
	fx.userRepo.EXPECT().
		FindByUsername(c.Request().Context(), "alice").
		Return(&entity.User{
			ID:       uuid.New(),
			Username: "alice",
			Role:     entity.RoleUser,
		}, nil)

	identity, ok := capturedIdentity(t, fx, c)

	require.True(t, ok)
	assert.Equal(t, "alice", identity.Subject)
	assert.True(t, identity.HasRole(entity.RoleUser))
}

func TestRequireRole_NoIdentity_Forbidden(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, rec := newEchoContext(t, "")

	called := false
	handler := fx.middleware.RequireRole(entity.RoleUser)(func(c echo.Context) error {
		called = true

		return nil
	})

	require.NoError(t, handler(c))
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_MissingRole_Forbidden(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, rec := newEchoContext(t, "")

	identity := &entity.Identity{Subject: "alice", Roles: entity.Roles{entity.RoleUser}}
	ctx := deliverycontext.WithIdentity(c.Request().Context(), identity)
	c.SetRequest(c.Request().WithContext(ctx))

	called := false
	handler := fx.middleware.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
		called = true

		return nil
	})

	require.NoError(t, handler(c))
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_HasRole_CallsHandler(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	c, rec := newEchoContext(t, "")

	identity := &entity.Identity{Subject: "alice", Roles: entity.Roles{entity.RoleUser}}
	ctx := deliverycontext.WithIdentity(c.Request().Context(), identity)
	c.SetRequest(c.Request().WithContext(ctx))

	called := false
	handler := fx.middleware.RequireRole(entity.RoleUser)(func(c echo.Context) error {
		called = true

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
