package services

import (
	"context"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"github.com/dmitrijs2005/cardbank/internal/logging"
	"github.com/dmitrijs2005/cardbank/internal/models"
	"github.com/dmitrijs2005/cardbank/internal/repositories/users"
	"github.com/shopspring/decimal"
)

type TransactionService interface {
	Deposit(ctx context.Context, sess models.Session, amount decimal.Decimal) (decimal.Decimal, error)
	Withdraw(ctx context.Context, sess models.Session, amount decimal.Decimal) (decimal.Decimal, error)
	CheckBalance(ctx context.Context, sess models.Session) (decimal.Decimal, error)
}

// TransactionManager changes balances. Each call returns the balance held by
// the store after the call: the new balance on success, the unchanged one
// on failure.
type TransactionManager struct {
	repo users.Repository
	log  logging.Logger
}

func NewTransactionManager(repo users.Repository, log logging.Logger) *TransactionManager {
	return &TransactionManager{repo: repo, log: log}
}

func (m *TransactionManager) Deposit(ctx context.Context, sess models.Session, amount decimal.Decimal) (decimal.Decimal, error) {
	return m.apply(ctx, "transaction.Deposit", sess, amount, (*models.User).Deposit)
}

func (m *TransactionManager) Withdraw(ctx context.Context, sess models.Session, amount decimal.Decimal) (decimal.Decimal, error) {
	return m.apply(ctx, "transaction.Withdraw", sess, amount, (*models.User).Withdraw)
}

// CheckBalance is read-only and not gated by account status, so frozen and
// lost accounts can still see their balance.
func (m *TransactionManager) CheckBalance(ctx context.Context, sess models.Session) (decimal.Decimal, error) {
	u, err := loadSessionUser(ctx, m.repo, sess)
	if err != nil {
		return decimal.Zero, err
	}
	return u.CheckBalance(), nil
}

// apply runs the status gate (lost, then frozen), then the entity operation
// which validates the amount, then saves. A failed save restores the
// previous balance.
func (m *TransactionManager) apply(ctx context.Context, op string, sess models.Session, amount decimal.Decimal,
	mutate func(*models.User, decimal.Decimal) error) (decimal.Decimal, error) {
	log := m.log.With("op", op, "user_id", sess.UserID, "amount", amount.String())

	u, err := loadSessionUser(ctx, m.repo, sess)
	if err != nil {
		return decimal.Zero, err
	}

	if u.IsLost {
		log.Warn(ctx, "rejected: account lost")
		return u.Balance, common.ErrAccountLost
	}
	if u.IsFrozen {
		log.Warn(ctx, "rejected: account frozen")
		return u.Balance, common.ErrAccountFrozen
	}

	before := u.Balance
	if err := mutate(u, amount); err != nil {
		log.Warn(ctx, "rejected", "reason", err)
		return u.Balance, err
	}

	if err := m.repo.Update(ctx, u); err != nil {
		u.Balance = before
		log.Error(ctx, "failed to persist balance, rolled back", "error", err)
		return u.Balance, err
	}

	log.Info(ctx, "balance updated", "balance", u.Balance.String())
	return u.Balance, nil
}
