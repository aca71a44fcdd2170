package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/cardbank/internal/config"
	"github.com/dmitrijs2005/cardbank/internal/cryptox"
	"github.com/dmitrijs2005/cardbank/internal/logging"
	"github.com/dmitrijs2005/cardbank/internal/models"
	"github.com/dmitrijs2005/cardbank/internal/repositories/users"
	"github.com/dmitrijs2005/cardbank/internal/services"
)

type App struct {
	config         *config.Config
	log            logging.Logger
	store          io.Closer
	authService    services.AuthService
	accountService services.AccountService
	txService      services.TransactionService
	reader         *bufio.Reader
	out            io.Writer

	// mu guards the fields below. shutdown may run while a handler is still
	// executing on the REPL goroutine.
	mu       sync.Mutex
	session  models.Session
	userName string
	closed   bool
}

// NewApp opens the configured record store and builds the services on top
// of it. The caller must call Close.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	hasher, err := cryptox.NewHasher(c.PasswordHasher)
	if err != nil {
		return nil, err
	}

	backend, err := openBackend(ctx, c)
	if err != nil {
		log.Error(ctx, "failed to open record store", "backend", c.StoreBackend, "path", c.StorePath, "error", err)
		return nil, err
	}
	store := users.NewStore(backend, log)

	log.Info(ctx, "record store opened", "backend", c.StoreBackend, "path", c.StorePath)

	return &App{
		config:         c,
		log:            log,
		store:          store,
		authService:    services.NewAuthManager(store, hasher, log),
		accountService: services.NewAccountManager(store, log),
		txService:      services.NewTransactionManager(store, log),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

func openBackend(ctx context.Context, c *config.Config) (users.Backend, error) {
	switch c.StoreBackend {
	case config.BackendSQLite:
		return users.OpenSQLite(ctx, c.StorePath)
	case config.BackendJSON, "":
		return users.NewJSONBackend(c.StorePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
}

// Run starts the shell and returns when the user exits, stdin is closed or
// ctx is cancelled (Ctrl-C). A session still open at that point is logged
// out.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to CardBank (type 'help' for commands)")

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.getStatus, a.reader)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		printlnFn("\nInterrupted")
	}

	a.shutdown(context.WithoutCancel(ctx))
}

// Close releases the record store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// shutdown logs out the open session, if any. After it returns no new
// session can be kept: a login that completes later is undone at once.
func (a *App) shutdown(ctx context.Context) {
	a.mu.Lock()
	a.closed = true
	sess := a.session
	a.session = models.Session{}
	a.userName = ""
	a.mu.Unlock()

	if sess.IsZero() {
		return
	}
	if err := a.authService.Logout(ctx, sess); err != nil {
		a.log.Warn(ctx, "logout on exit failed", "error", err)
	}
}

// startSession keeps sess as the local session. It reports false when the
// App is already shut down; the session is then logged out again.
func (a *App) startSession(ctx context.Context, sess models.Session, userName string) bool {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		if err := a.authService.Logout(ctx, sess); err != nil {
			a.log.Warn(ctx, "logout after shutdown failed", "error", err)
		}
		return false
	}
	a.session = sess
	a.userName = userName
	a.mu.Unlock()
	return true
}

func (a *App) currentSession() models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

func (a *App) isLoggedIn() bool {
	return !a.currentSession().IsZero()
}

func (a *App) dropSession() {
	a.mu.Lock()
	a.session = models.Session{}
	a.userName = ""
	a.mu.Unlock()
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) writer() io.Writer {
	if a.out == nil {
		return os.Stdout
	}
	return a.out
}
