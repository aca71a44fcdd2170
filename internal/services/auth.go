package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"github.com/dmitrijs2005/cardbank/internal/cryptox"
	"github.com/dmitrijs2005/cardbank/internal/logging"
	"github.com/dmitrijs2005/cardbank/internal/models"
	"github.com/dmitrijs2005/cardbank/internal/repositories/users"
	"github.com/google/uuid"
)

// AuthService is what the CLI needs for registration and sessions.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (*LoginResult, error)
	Logout(ctx context.Context, sess models.Session) error
	ValidateSession(ctx context.Context, sess models.Session) (*models.User, error)
	UserInfo(ctx context.Context, sess models.Session) (*models.User, error)
	ChangePassword(ctx context.Context, sess models.Session, oldPassword, newPassword []byte) error
	VerifyPassword(ctx context.Context, sess models.Session, password []byte) error
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Session models.Session
	User    *models.User
}

type AuthManager struct {
	repo     users.Repository
	hasher   cryptox.Hasher
	log      logging.Logger
	now      func() time.Time
	newID    func() string
	newToken func() (string, error)
}

func NewAuthManager(repo users.Repository, hasher cryptox.Hasher, log logging.Logger) *AuthManager {
	return &AuthManager{
		repo:     repo,
		hasher:   hasher,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
		newToken: common.NewSessionToken,
	}
}

// Register creates an account with zero balance.
func (a *AuthManager) Register(ctx context.Context, username string, password []byte) (*models.User, error) {
	log := a.log.With("op", "auth.Register", "username", username)

	_, err := a.repo.FindByUsername(ctx, username)
	if err == nil {
		log.Warn(ctx, "username taken")
		return nil, common.ErrDuplicateUsername
	}
	if !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		log.Error(ctx, "failed to hash password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := models.NewUser(a.newID(), username, hash, a.now())
	if err := a.repo.Add(ctx, u); err != nil {
		return nil, err
	}

	log.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login checks, in order: user exists, not already logged in, password,
// not lost, not frozen. On success it stores a fresh session token.
func (a *AuthManager) Login(ctx context.Context, username string, password []byte) (*LoginResult, error) {
	log := a.log.With("op", "auth.Login", "username", username)

	u, err := a.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			log.Warn(ctx, "user not found")
		}
		return nil, err
	}
	log = log.With("user_id", u.ID)

	if u.IsUsing {
		log.Warn(ctx, "account already in use")
		return nil, common.ErrAlreadyLoggedIn
	}
	if !a.hasher.Verify(u.PasswordHash, password) {
		log.Warn(ctx, "wrong password")
		return nil, common.ErrWrongPassword
	}
	if u.IsLost {
		log.Warn(ctx, "account is lost")
		return nil, common.ErrAccountLost
	}
	if u.IsFrozen {
		log.Warn(ctx, "account is frozen")
		return nil, common.ErrAccountFrozen
	}

	token, err := a.newToken()
	if err != nil {
		log.Error(ctx, "failed to generate session token", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrLoginFailed, err)
	}

	prevLogin := u.LastLogin
	u.StartSession(token, a.now())
	if err := a.repo.Update(ctx, u); err != nil {
		u.ClearSession()
		u.LastLogin = prevLogin
		log.Error(ctx, "failed to persist session", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrLoginFailed, err)
	}

	log.Info(ctx, "user logged in")
	return &LoginResult{
		Session: models.Session{UserID: u.ID, Token: token},
		User:    u,
	}, nil
}

// Logout ends the session. Only the holder of the current token can do it.
func (a *AuthManager) Logout(ctx context.Context, sess models.Session) error {
	log := a.log.With("op", "auth.Logout", "user_id", sess.UserID)

	u, err := a.repo.FindByID(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if !u.IsUsing {
		log.Warn(ctx, "user is not logged in")
		return common.ErrNotLoggedIn
	}
	if !tokenMatches(u, sess.Token) {
		log.Warn(ctx, "logout with a stale session")
		return common.ErrSessionInvalid
	}

	token := u.SessionToken
	u.ClearSession()
	if err := a.repo.Update(ctx, u); err != nil {
		u.StartSession(token, u.LastLogin)
		log.Error(ctx, "failed to persist logout", "error", err)
		return err
	}

	log.Info(ctx, "user logged out")
	return nil
}

// ValidateSession returns the session owner if sess is still the active
// session, and common.ErrSessionInvalid otherwise.
func (a *AuthManager) ValidateSession(ctx context.Context, sess models.Session) (*models.User, error) {
	return loadSessionUser(ctx, a.repo, sess)
}

func (a *AuthManager) UserInfo(ctx context.Context, sess models.Session) (*models.User, error) {
	return loadSessionUser(ctx, a.repo, sess)
}

// ChangePassword replaces the password after checking the old one.
func (a *AuthManager) ChangePassword(ctx context.Context, sess models.Session, oldPassword, newPassword []byte) error {
	log := a.log.With("op", "auth.ChangePassword", "user_id", sess.UserID)

	u, err := loadSessionUser(ctx, a.repo, sess)
	if err != nil {
		return err
	}
	if !a.hasher.Verify(u.PasswordHash, oldPassword) {
		log.Warn(ctx, "wrong password")
		return common.ErrWrongPassword
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		log.Error(ctx, "failed to hash password", "error", err)
		return fmt.Errorf("hash password: %w", err)
	}

	prev := u.PasswordHash
	u.PasswordHash = hash
	if err := a.repo.Update(ctx, u); err != nil {
		u.PasswordHash = prev
		log.Error(ctx, "failed to persist password", "error", err)
		return err
	}

	log.Info(ctx, "password changed")
	return nil
}

// VerifyPassword re-confirms the session owner's password, e.g. before
// closing the account.
func (a *AuthManager) VerifyPassword(ctx context.Context, sess models.Session, password []byte) error {
	u, err := loadSessionUser(ctx, a.repo, sess)
	if err != nil {
		return err
	}
	if !a.hasher.Verify(u.PasswordHash, password) {
		return common.ErrWrongPassword
	}
	return nil
}
