package cli

import (
	"errors"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen).SprintFunc()
	failureColor = color.New(color.FgRed).SprintFunc()
	noticeColor  = color.New(color.FgYellow).SprintFunc()
)

func printSuccess(msg string) {
	printlnFn(successColor(msg))
}

func printNotice(msg string) {
	printlnFn(noticeColor(msg))
}

func printFailure(action string, err error) {
	printlnFn(failureColor(action + " failed: " + userMessage(err)))
}

// known is checked in order; wrapped errors match their first sentinel.
// ErrLoginFailed comes before ErrPersist because login wraps both.
var known = []error{
	common.ErrLoginFailed,
	common.ErrPersist,
	common.ErrUserNotFound,
	common.ErrDuplicateUsername,
	common.ErrDuplicateID,
	common.ErrWrongPassword,
	common.ErrAlreadyLoggedIn,
	common.ErrNotLoggedIn,
	common.ErrSessionInvalid,
	common.ErrAccountLost,
	common.ErrAccountFrozen,
	common.ErrAlreadyInState,
	common.ErrInvalidAmount,
	common.ErrInsufficientFunds,
}

// userMessage returns the text shown for err. Infrastructure details that
// were wrapped around a sentinel stay in the log, not on screen.
func userMessage(err error) string {
	for _, s := range known {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}
