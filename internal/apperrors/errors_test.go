package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/blackjack/internal/protocol"
)

func TestGameError_MessagesFromCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "You don't have enough chips", ErrInsufficientChips.Error())
	assert.Equal(t, "Invalid hand index", ErrInvalidHandIndex.Error())
	assert.Equal(t, protocol.ErrCodeInvalidHand, ErrInvalidHandIndex.Code)
	assert.Equal(t, protocol.ErrCodeNoChips, ErrInsufficientChipsDouble.Code)
}

func TestGameError_As(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("split: %w", ErrNotSplitable)

	var gameErr *GameError
	assert.True(t, errors.As(wrapped, &gameErr))
	assert.Equal(t, protocol.ErrCodeNotSplitable, gameErr.Code)
	assert.ErrorIs(t, wrapped, ErrNotSplitable)
}
