// Package models holds the account entity and the session handle passed
// between the CLI and the services.
package models

import (
	"time"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"github.com/shopspring/decimal"
)

// User is one account as persisted by the record store.
//
// Invariants kept by the methods below: Balance never goes negative and
// SessionToken is non-empty exactly when IsUsing is true.
type User struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"password_hash"`
	Balance      decimal.Decimal `json:"balance"`
	IsFrozen     bool            `json:"is_frozen"`
	IsLost       bool            `json:"is_lost"`
	IsUsing      bool            `json:"is_using"`
	SessionToken string          `json:"session_token,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	LastLogin    time.Time       `json:"last_login"`
}

// NewUser returns a fresh account with zero balance and all flags cleared.
func NewUser(id, username, passwordHash string, now time.Time) *User {
	return &User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Balance:      decimal.Zero,
		CreatedAt:    now,
	}
}

// Clone returns a copy that shares no mutable state with u.
func (u *User) Clone() *User {
	c := *u
	return &c
}

const (
	// AmountScale is the number of decimal places an amount may carry.
	AmountScale = 2
	// maxAmountDigits bounds the integer part of an amount.
	maxAmountDigits = 12
)

// ValidAmount reports whether amount can be used for a deposit or a
// withdrawal. The exponent is checked before any arithmetic so that inputs
// such as 1e-50000000 never get rescaled.
func ValidAmount(amount decimal.Decimal) bool {
	exp := int(amount.Exponent())
	if exp < -AmountScale {
		return false
	}
	if amount.NumDigits()+exp > maxAmountDigits {
		return false
	}
	return amount.IsPositive()
}

// Deposit adds amount to the balance.
func (u *User) Deposit(amount decimal.Decimal) error {
	if !ValidAmount(amount) {
		return common.ErrInvalidAmount
	}
	u.Balance = u.Balance.Add(amount)
	return nil
}

// Withdraw subtracts amount from the balance.
func (u *User) Withdraw(amount decimal.Decimal) error {
	if !ValidAmount(amount) {
		return common.ErrInvalidAmount
	}
	if amount.GreaterThan(u.Balance) {
		return common.ErrInsufficientFunds
	}
	u.Balance = u.Balance.Sub(amount)
	return nil
}

func (u *User) CheckBalance() decimal.Decimal {
	return u.Balance
}

// ReportLoss marks the account lost. There is no way back.
func (u *User) ReportLoss() error {
	if u.IsLost {
		return common.ErrAlreadyInState
	}
	u.IsLost = true
	return nil
}

func (u *User) Freeze() error {
	if u.IsFrozen {
		return common.ErrAlreadyInState
	}
	u.IsFrozen = true
	return nil
}

func (u *User) Unfreeze() error {
	if !u.IsFrozen {
		return common.ErrAlreadyInState
	}
	u.IsFrozen = false
	return nil
}

// StartSession marks the account in use with token and records the login time.
func (u *User) StartSession(token string, now time.Time) {
	u.IsUsing = true
	u.SessionToken = token
	u.LastLogin = now
}

func (u *User) ClearSession() {
	u.IsUsing = false
	u.SessionToken = ""
}

// HasActiveSession reports whether someone is logged in to this account.
func (u *User) HasActiveSession() bool {
	return u.IsUsing && u.SessionToken != ""
}
