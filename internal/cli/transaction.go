package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"github.com/dmitrijs2005/cardbank/internal/models"
	"github.com/shopspring/decimal"
)

var errBadAmount = errors.New("not a number")

func (a *App) Deposit(ctx context.Context) error {
	return a.moveMoney(ctx, "Deposit", a.txService.Deposit)
}

func (a *App) Withdraw(ctx context.Context) error {
	return a.moveMoney(ctx, "Withdrawal", a.txService.Withdraw)
}

func (a *App) Balance(ctx context.Context) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	bal, err := a.txService.CheckBalance(ctx, a.currentSession())
	if err != nil {
		printFailure("Balance", err)
		return err
	}

	printlnFn(fmt.Sprintf("Balance: %s", bal.StringFixed(2)))
	return nil
}

type moneyOp func(ctx context.Context, sess models.Session, amount decimal.Decimal) (decimal.Decimal, error)

func (a *App) moveMoney(ctx context.Context, action string, op moneyOp) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	raw, err := getSimpleText(a.reader, "Enter amount", a.writer())
	if err != nil {
		return err
	}
	amount, err := parseAmount(raw)
	if err != nil {
		printFailure(action, err)
		return err
	}

	bal, err := op(ctx, a.currentSession(), amount)
	if err != nil {
		printFailure(action, err)
		if errors.Is(err, common.ErrInsufficientFunds) || errors.Is(err, common.ErrPersist) {
			printlnFn(fmt.Sprintf("Balance: %s", bal.StringFixed(2)))
		}
		return err
	}

	printSuccess(fmt.Sprintf("%s successful. Balance: %s", action, bal.StringFixed(2)))
	return nil
}

// parseAmount reads a decimal amount. Sign and range are left to the
// services, which reject non-positive values.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w", s, errBadAmount)
	}
	return d, nil
}
