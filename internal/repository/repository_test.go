package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(fmt.Errorf("first: %w", gorm.ErrRecordNotFound)), ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrDuplicate)

	other := errors.New("boom")
	assert.Same(t, other, translate(other))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("6f1c2a44-8d0e-4b8e-9c43-1e0f4f9a0b7d"))
	assert.False(t, validID(""))
	assert.False(t, validID("1; drop table users"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_a\\b`, escapeLike(`100% _a\b`))
}
