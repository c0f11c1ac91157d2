package postgres

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain title", "plain title"},
		{"100% done", "100\\% done"},
		{"snake_case", "snake\\_case"},
		{"back\\slash", "back\\\\slash"},
		{"%_\\", "\\%\\_\\\\"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, escapeLike(tc.in), "input %q", tc.in)
	}
}

func TestIsUniqueConstraintViolation(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(gorm.ErrDuplicatedKey, "create user")))
	assert.True(t, isUniqueConstraintViolation(errors.New(`duplicate key value violates unique constraint "users_username_key"`)))
	assert.True(t, isUniqueConstraintViolation(errors.New("ERROR: some failure (SQLSTATE 23505)")))
	assert.False(t, isUniqueConstraintViolation(errors.New("connection refused")))
}

func TestIsNotNullConstraintViolation(t *testing.T) {
	assert.True(t, isNotNullConstraintViolation(errors.New(`null value in column "username" violates not-null constraint`)))
	assert.True(t, isNotNullConstraintViolation(errors.New("ERROR: some failure (SQLSTATE 23502)")))
	assert.False(t, isNotNullConstraintViolation(errors.New("connection refused")))
}
