package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/cardbank/internal/cryptox"
	"github.com/dmitrijs2005/cardbank/internal/logging"
	"github.com/dmitrijs2005/cardbank/internal/models"
	"github.com/dmitrijs2005/cardbank/internal/repositories/users"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ---- fake backend ----

// memBackend keeps records in memory. failSave makes every Save fail, which
// is how the tests simulate a full disk.
type memBackend struct {
	mu       sync.Mutex
	users    []*models.User
	failSave bool
	saves    int
}

var errDiskFull = errors.New("disk full")

func (m *memBackend) Load(context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.User, len(m.users))
	for i, u := range m.users {
		out[i] = u.Clone()
	}
	return out, nil
}

func (m *memBackend) Save(_ context.Context, us []*models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errDiskFull
	}
	m.saves++
	m.users = make([]*models.User, len(us))
	for i, u := range us {
		m.users[i] = u.Clone()
	}
	return nil
}

func (m *memBackend) Close() error { return nil }

func (m *memBackend) setFailSave(v bool) {
	m.mu.Lock()
	m.failSave = v
	m.mu.Unlock()
}

// ---- fixture ----

type fixture struct {
	backend *memBackend
	store   *users.Store
	auth    *AuthManager
	account *AccountManager
	tx      *TransactionManager
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := &memBackend{}
	log := logging.Discard()
	store := users.NewStore(b, log)

	auth := NewAuthManager(store, cryptox.SHA256Hasher{}, log)
	auth.now = func() time.Time { return fixedNow }

	return &fixture{
		backend: b,
		store:   store,
		auth:    auth,
		account: NewAccountManager(store, log),
		tx:      NewTransactionManager(store, log),
	}
}

func (f *fixture) register(t *testing.T, name, pw string) *models.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), name, []byte(pw))
	require.NoError(t, err)
	return u
}

func (f *fixture) login(t *testing.T, name, pw string) models.Session {
	t.Helper()
	res, err := f.auth.Login(context.Background(), name, []byte(pw))
	require.NoError(t, err)
	return res.Session
}

func (f *fixture) stored(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := f.store.FindByUsername(context.Background(), name)
	require.NoError(t, err)
	return u
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
