package auth

import (
	"testing"

	"github.com/alexandruvladut/articles-rest-api/config"

	"github.com/stretchr/testify/assert"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	password := "correct-horse-battery"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	// Two hashes of the same input must differ; the salt is per call.
	first, err := hasher.Hash("same-input")
	assert.NoError(t, err)
	second, err := hasher.Hash("same-input")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)

	assert.True(t, hasher.Check("same-input", first))
	assert.True(t, hasher.Check("same-input", second))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})
	password := "correct-horse-battery"

	// Generate hash
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("wrong-password", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash: must return false, never panic or error
	assert.False(t, hasher.Check(password, "invalid_hash"))
	assert.False(t, hasher.Check(password, ""))
}

func TestBcryptHasher_ConfiguredCost(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("pw1")
	assert.NoError(t, err)
	assert.True(t, hasher.Check("pw1", hash))
}
