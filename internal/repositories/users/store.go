package users

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"github.com/dmitrijs2005/cardbank/internal/logging"
	"github.com/dmitrijs2005/cardbank/internal/models"
)

// Store implements Repository over a Backend. There is no cache: every call
// goes back to the backend, so each operation sees the latest saved state.
//
// The mutex serialises load-modify-save cycles inside this process only.
// Another process writing the same storage can still be overwritten.
type Store struct {
	backend Backend
	log     logging.Logger
	mu      sync.Mutex
}

func NewStore(backend Backend, log logging.Logger) *Store {
	return &Store{backend: backend, log: log.With("component", "user_store")}
}

func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) LoadAll(ctx context.Context) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) SaveAll(ctx context.Context, users []*models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, users)
}

func (s *Store) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.find(ctx, func(u *models.User) bool { return u.Username == username })
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.find(ctx, func(u *models.User) bool { return u.ID == id })
}

// Add appends user. Username and id must both be unused.
func (s *Store) Add(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, u := range all {
		if u.Username == user.Username {
			return common.ErrDuplicateUsername
		}
		if u.ID == user.ID {
			return common.ErrDuplicateID
		}
	}
	return s.save(ctx, append(all, user.Clone()))
}

// Update replaces the record with the same id.
func (s *Store) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i, u := range all {
		if u.ID == user.ID {
			all[i] = user.Clone()
			return s.save(ctx, all)
		}
	}
	return common.ErrUserNotFound
}

// Delete removes the record with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]*models.User, 0, len(all))
	for _, u := range all {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(all) {
		return common.ErrUserNotFound
	}
	return s.save(ctx, kept)
}

func (s *Store) find(ctx context.Context, match func(*models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if match(u) {
			return u, nil
		}
	}
	return nil, common.ErrUserNotFound
}

// load treats missing or corrupt storage as an empty collection.
func (s *Store) load(ctx context.Context) ([]*models.User, error) {
	all, err := s.backend.Load(ctx)
	if err != nil {
		if errors.Is(err, common.ErrCorruptStore) {
			s.log.Warn(ctx, "record store is corrupt, treating as empty", "error", err)
			return []*models.User{}, nil
		}
		s.log.Error(ctx, "failed to load records", "error", err)
		return nil, fmt.Errorf("%w: load: %w", common.ErrPersist, err)
	}
	if all == nil {
		all = []*models.User{}
	}
	return all, nil
}

func (s *Store) save(ctx context.Context, users []*models.User) error {
	if err := s.backend.Save(ctx, users); err != nil {
		s.log.Error(ctx, "failed to save records", "error", err, "count", len(users))
		return fmt.Errorf("%w: save: %w", common.ErrPersist, err)
	}
	s.log.Debug(ctx, "records saved", "count", len(users))
	return nil
}
