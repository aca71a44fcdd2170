package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"github.com/dmitrijs2005/cardbank/internal/models"
	"github.com/dmitrijs2005/cardbank/internal/repositories/users"
)

// loadSessionUser re-reads the session owner and checks that the session is
// still the active one.
func loadSessionUser(ctx context.Context, repo users.Repository, sess models.Session) (*models.User, error) {
	if sess.UserID == "" || sess.Token == "" {
		return nil, common.ErrSessionInvalid
	}
	u, err := repo.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrSessionInvalid
		}
		return nil, err
	}
	if !tokenMatches(u, sess.Token) {
		return nil, common.ErrSessionInvalid
	}
	return u, nil
}

func tokenMatches(u *models.User, token string) bool {
	if !u.HasActiveSession() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u.SessionToken), []byte(token)) == 1
}
