package cli

import (
	"context"

	"github.com/dmitrijs2005/cardbank/internal/models"
	"github.com/dmitrijs2005/cardbank/internal/services"
)

// fakeAuthBase implements services.AuthService with no-op methods. Tests
// embed it and override what they need.
type fakeAuthBase struct{}

var _ services.AuthService = (*fakeAuthBase)(nil)

func (fakeAuthBase) Register(context.Context, string, []byte) (*models.User, error) {
	return &models.User{}, nil
}
func (fakeAuthBase) Login(context.Context, string, []byte) (*services.LoginResult, error) {
	return &services.LoginResult{User: &models.User{}}, nil
}
func (fakeAuthBase) Logout(context.Context, models.Session) error { return nil }
func (fakeAuthBase) ValidateSession(context.Context, models.Session) (*models.User, error) {
	return &models.User{}, nil
}
func (fakeAuthBase) UserInfo(context.Context, models.Session) (*models.User, error) {
	return &models.User{}, nil
}
func (fakeAuthBase) ChangePassword(context.Context, models.Session, []byte, []byte) error {
	return nil
}
func (fakeAuthBase) VerifyPassword(context.Context, models.Session, []byte) error { return nil }
