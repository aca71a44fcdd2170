package cli

import (
	"context"

	"github.com/dmitrijs2005/cardbank/internal/common"
)

// ReportLoss marks the card lost after confirmation and logs the user out,
// since a lost account cannot be used any more.
func (a *App) ReportLoss(ctx context.Context) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	ok, err := confirm(a.reader, "Report the card as lost? This cannot be undone.", a.writer())
	if err != nil || !ok {
		return err
	}

	if err := a.accountService.ReportLoss(ctx, a.currentSession()); err != nil {
		printFailure("Loss report", err)
		return err
	}

	printSuccess("Card reported lost")
	return a.Logout(ctx)
}

func (a *App) Freeze(ctx context.Context) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	ok, err := confirm(a.reader, "Freeze the account?", a.writer())
	if err != nil || !ok {
		return err
	}

	if err := a.accountService.Freeze(ctx, a.currentSession()); err != nil {
		printFailure("Freeze", err)
		return err
	}

	printSuccess("Account frozen")
	return nil
}

func (a *App) Unfreeze(ctx context.Context) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	ok, err := confirm(a.reader, "Unfreeze the account?", a.writer())
	if err != nil || !ok {
		return err
	}

	if err := a.accountService.Unfreeze(ctx, a.currentSession()); err != nil {
		printFailure("Unfreeze", err)
		return err
	}

	printSuccess("Account unfrozen")
	return nil
}

// CloseAccount deletes the account after a confirmation and a password
// re-check. The local session ends with it.
func (a *App) CloseAccount(ctx context.Context) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	ok, err := confirm(a.reader, "Close the account permanently?", a.writer())
	if err != nil || !ok {
		return err
	}

	password, err := getPassword("Confirm password", a.writer())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.VerifyPassword(ctx, a.currentSession(), password); err != nil {
		printFailure("Account closure", err)
		return err
	}

	if err := a.accountService.CloseAccount(ctx, a.currentSession()); err != nil {
		printFailure("Account closure", err)
		return err
	}

	a.dropSession()
	printSuccess("Account closed")
	return nil
}
