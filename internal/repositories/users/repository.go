// Package users implements the record store for accounts: a Repository that
// re-reads the full collection on every call, on top of a pluggable Backend
// (JSON flat file or SQLite).
package users

import (
	"context"

	"github.com/dmitrijs2005/cardbank/internal/models"
)

// Backend loads and saves the whole collection at once.
//
// Load returns (nil, nil) when storage does not exist yet and an error
// wrapping common.ErrCorruptStore when existing data cannot be decoded.
// Save must be all-or-nothing.
type Backend interface {
	Load(ctx context.Context) ([]*models.User, error)
	Save(ctx context.Context, users []*models.User) error
	Close() error
}

// Repository is the record store contract used by the services.
type Repository interface {
	LoadAll(ctx context.Context) ([]*models.User, error)
	SaveAll(ctx context.Context, users []*models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Add(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}
