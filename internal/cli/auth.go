package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"github.com/dmitrijs2005/cardbank/internal/models"
)

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errAppClosed        = errors.New("shutting down")
)

// Register prompts for a username and password and creates the account.
// The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.writer())
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.writer())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validateCredentials(userName, password); err != nil {
		printFailure("Registration", err)
		return err
	}

	if _, err := a.authService.Register(ctx, userName, password); err != nil {
		printFailure("Registration", err)
		return err
	}

	printSuccess("Registration successful, you can log in now")
	return nil
}

// Login authenticates and keeps the issued session for later commands.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.writer())
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.writer())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validateCredentials(userName, password); err != nil {
		printFailure("Login", err)
		return err
	}

	res, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		printFailure("Login", err)
		return err
	}

	if !a.startSession(ctx, res.Session, res.User.Username) {
		return errAppClosed
	}
	printSuccess(fmt.Sprintf("Welcome, %s!", res.User.Username))
	return nil
}

// Logout ends the session. The local session is dropped even if the store
// could not be updated, since there is nothing more the user can do with it.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printFailure("Logout", common.ErrNotLoggedIn)
		return common.ErrNotLoggedIn
	}

	err := a.authService.Logout(ctx, a.currentSession())
	a.dropSession()
	if err != nil && !errors.Is(err, common.ErrSessionInvalid) {
		printFailure("Logout", err)
		return err
	}

	printSuccess("Logged out")
	return nil
}

// Info shows the account details of the logged-in user.
func (a *App) Info(ctx context.Context) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	u, err := a.authService.UserInfo(ctx, a.currentSession())
	if err != nil {
		printFailure("Info", err)
		return err
	}

	printlnFn(formatUser(u))
	return nil
}

// ChangePassword asks for the current password and the new one twice.
func (a *App) ChangePassword(ctx context.Context) error {
	u, err := a.requireSession(ctx)
	if err != nil {
		return err
	}

	oldPassword, err := getPassword("Current password", a.writer())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := getPassword("New password", a.writer())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	repeated, err := getPassword("Repeat new password", a.writer())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeated)

	if !bytes.Equal(newPassword, repeated) {
		printFailure("Password change", errPasswordMismatch)
		return errPasswordMismatch
	}
	if err := validateCredentials(u.Username, newPassword); err != nil {
		printFailure("Password change", err)
		return err
	}

	if err := a.authService.ChangePassword(ctx, a.currentSession(), oldPassword, newPassword); err != nil {
		printFailure("Password change", err)
		return err
	}

	printSuccess("Password changed")
	return nil
}

// requireSession checks with the store that the local session is still the
// active one. A stale session is dropped and the user asked to log in again.
func (a *App) requireSession(ctx context.Context) (*models.User, error) {
	if !a.isLoggedIn() {
		printFailure("Command", common.ErrNotLoggedIn)
		return nil, common.ErrNotLoggedIn
	}

	u, err := a.authService.ValidateSession(ctx, a.currentSession())
	if err != nil {
		if errors.Is(err, common.ErrSessionInvalid) {
			a.dropSession()
			printNotice("Your session is no longer valid, please log in again")
			return nil, err
		}
		printFailure("Command", err)
		return nil, err
	}
	return u, nil
}

func formatUser(u *models.User) string {
	status := "active"
	switch {
	case u.IsLost:
		status = "lost"
	case u.IsFrozen:
		status = "frozen"
	}

	lastLogin := "never"
	if !u.LastLogin.IsZero() {
		lastLogin = u.LastLogin.Local().Format("2006-01-02 15:04:05")
	}

	return fmt.Sprintf("Username:   %s\nAccount id: %s\nBalance:    %s\nStatus:     %s\nCreated:    %s\nLast login: %s",
		u.Username, u.ID, u.Balance.StringFixed(2), status,
		u.CreatedAt.Local().Format("2006-01-02 15:04:05"), lastLogin)
}
