package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	diskFull := errors.New("disk full")

	assert.Equal(t, common.ErrInsufficientFunds.Error(), userMessage(common.ErrInsufficientFunds))
	assert.Equal(t, common.ErrPersist.Error(),
		userMessage(fmt.Errorf("%w: save: %w", common.ErrPersist, diskFull)))
	assert.Equal(t, common.ErrLoginFailed.Error(),
		userMessage(fmt.Errorf("%w: %w", common.ErrLoginFailed, fmt.Errorf("%w: save: %w", common.ErrPersist, diskFull))))
	assert.Equal(t, "something else", userMessage(errors.New("something else")))
}

func TestPrintFailure(t *testing.T) {
	out := captureOutput(t)

	printFailure("Deposit", common.ErrAccountFrozen)

	assert.Contains(t, out.String(), "Deposit failed: account is frozen")
}
