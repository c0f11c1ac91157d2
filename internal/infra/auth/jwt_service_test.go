package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/alexandruvladut/articles-rest-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: ttl},
	}
	cfg.SecretKey.Token = "test_token_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_IssueAndExtractSubject(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig(time.Hour))
	require.NoError(t, err)

	token, err := svc.Issue("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, ok := svc.ExtractSubject(token)
	assert.True(t, ok)
	assert.Equal(t, "alice", subject)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	// A negative TTL issues a token that is already expired.
	svc, err := NewJWTService(newTestTokenConfig(-time.Minute))
	require.NoError(t, err)

	token, err := svc.Issue("alice")
	require.NoError(t, err)

	subject, ok := svc.ExtractSubject(token)
	assert.False(t, ok)
	assert.Empty(t, subject)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig(time.Hour))
	require.NoError(t, err)

	token, err := svc.Issue("alice")
	require.NoError(t, err)

	// Flip one character in the payload segment.
	corrupted := []byte(token)
	idx := strings.Index(token, ".") + 1
	if corrupted[idx] == 'A' {
		corrupted[idx] = 'B'
	} else {
		corrupted[idx] = 'A'
	}

	subject, ok := svc.ExtractSubject(string(corrupted))
	assert.False(t, ok)
	assert.Empty(t, subject)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig(time.Hour))
	require.NoError(t, err)

	for _, tokenString := range []string{"", "clearly-not-a-jwt", "a.b.c"} {
		subject, ok := svc.ExtractSubject(tokenString)
		assert.False(t, ok, "expected no subject for %q", tokenString)
		assert.Empty(t, subject)
	}
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig(time.Hour))
	require.NoError(t, err)

	otherCfg := newTestTokenConfig(time.Hour)
	otherCfg.SecretKey.Token = "a_completely_different_secret_key_for_testing"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := svc.Issue("alice")
	require.NoError(t, err)

	_, ok := other.ExtractSubject(token)
	assert.False(t, ok)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{}

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_DefaultTokenTTL(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Token = "test_token_secret_key_very_long_for_testing"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, svc.TokenTTL())
}
