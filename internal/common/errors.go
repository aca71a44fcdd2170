// Package common defines sentinel errors and small helpers shared by the
// store, the services and the CLI. Callers should use errors.Is to match
// these values; messages are shown to the user as-is.
package common

import "errors"

var (
	// Record store errors.
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateID       = errors.New("user id already exists")
	ErrPersist           = errors.New("failed to save data, please try again later")
	ErrCorruptStore      = errors.New("corrupt record store")

	// Auth and session errors.
	ErrWrongPassword   = errors.New("wrong password")
	ErrAlreadyLoggedIn = errors.New("account is already logged in on another device")
	ErrNotLoggedIn     = errors.New("user is not logged in")
	ErrSessionInvalid  = errors.New("session is invalid or has expired")
	ErrLoginFailed     = errors.New("login failed, please try again later")

	// Account status errors.
	ErrAccountLost    = errors.New("account is reported lost")
	ErrAccountFrozen  = errors.New("account is frozen")
	ErrAlreadyInState = errors.New("account is already in the requested state")

	// Transaction errors.
	ErrInvalidAmount     = errors.New("amount must be positive, with at most two decimal places and below one trillion")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
