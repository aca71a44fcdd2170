package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"github.com/dmitrijs2005/cardbank/internal/logging"
	"github.com/dmitrijs2005/cardbank/internal/models"
	"github.com/dmitrijs2005/cardbank/internal/repositories/users"
)

type AccountService interface {
	ReportLoss(ctx context.Context, sess models.Session) error
	Freeze(ctx context.Context, sess models.Session) error
	Unfreeze(ctx context.Context, sess models.Session) error
	CloseAccount(ctx context.Context, sess models.Session) error
}

// AccountManager applies status transitions. Repeating a transition that is
// already in effect fails with common.ErrAlreadyInState and saves nothing.
type AccountManager struct {
	repo users.Repository
	log  logging.Logger
}

func NewAccountManager(repo users.Repository, log logging.Logger) *AccountManager {
	return &AccountManager{repo: repo, log: log}
}

// ReportLoss marks the account lost. Lost accounts cannot transact or log in
// again and there is no operation that clears the flag.
func (m *AccountManager) ReportLoss(ctx context.Context, sess models.Session) error {
	return m.transition(ctx, "account.ReportLoss", sess,
		(*models.User).ReportLoss,
		func(u *models.User) { u.IsLost = false },
	)
}

func (m *AccountManager) Freeze(ctx context.Context, sess models.Session) error {
	return m.transition(ctx, "account.Freeze", sess,
		(*models.User).Freeze,
		func(u *models.User) { u.IsFrozen = false },
	)
}

func (m *AccountManager) Unfreeze(ctx context.Context, sess models.Session) error {
	return m.transition(ctx, "account.Unfreeze", sess,
		(*models.User).Unfreeze,
		func(u *models.User) { u.IsFrozen = true },
	)
}

// CloseAccount deletes the record for good. The caller is expected to have
// re-confirmed the password (AuthManager.VerifyPassword) beforehand.
func (m *AccountManager) CloseAccount(ctx context.Context, sess models.Session) error {
	log := m.log.With("op", "account.CloseAccount", "user_id", sess.UserID)

	u, err := loadSessionUser(ctx, m.repo, sess)
	if err != nil {
		return err
	}
	if err := m.repo.Delete(ctx, u.ID); err != nil {
		log.Error(ctx, "failed to delete account", "error", err)
		return err
	}

	log.Info(ctx, "account closed")
	return nil
}

func (m *AccountManager) transition(ctx context.Context, op string, sess models.Session,
	apply func(*models.User) error, revert func(*models.User)) error {
	log := m.log.With("op", op, "user_id", sess.UserID)

	u, err := loadSessionUser(ctx, m.repo, sess)
	if err != nil {
		return err
	}
	if err := apply(u); err != nil {
		if errors.Is(err, common.ErrAlreadyInState) {
			log.Warn(ctx, "transition already in effect")
		}
		return err
	}
	if err := m.repo.Update(ctx, u); err != nil {
		revert(u)
		log.Error(ctx, "failed to persist status change", "error", err)
		return err
	}

	log.Info(ctx, "account status changed", "frozen", u.IsFrozen, "lost", u.IsLost)
	return nil
}
