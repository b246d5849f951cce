package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("like post: %w", NotFound("post not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "rating must be between 1 and 5", Message(Validation("rating must be between %d and %d", 1, 5)))
	assert.Equal(t, "already following this user", Message(Conflict("already following this user")))
	assert.Equal(t, "boom", Message(errors.New("boom")))
}
