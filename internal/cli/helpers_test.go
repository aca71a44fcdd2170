package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/cardbank/internal/cryptox"
	"github.com/dmitrijs2005/cardbank/internal/logging"
	"github.com/dmitrijs2005/cardbank/internal/repositories/users"
	"github.com/dmitrijs2005/cardbank/internal/services"
	"github.com/stretchr/testify/require"
)

// ---- output capture ----

type captured struct {
	lines []string
}

func (c *captured) String() string { return strings.Join(c.lines, "\n") }

func captureOutput(t *testing.T) *captured {
	t.Helper()
	c := &captured{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		c.lines = append(c.lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return c
}

// ---- scripted input ----

// script feeds answers to the input seams in order. Running out of answers
// fails the test.
type script struct {
	t         *testing.T
	texts     []string
	passwords []string
	confirms  []bool
}

func useScript(t *testing.T) *script {
	t.Helper()
	s := &script{t: t}

	origST, origGP, origC := getSimpleText, getPassword, confirm
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		if len(s.texts) == 0 {
			t.Fatalf("unexpected text prompt %q", prompt)
		}
		v := s.texts[0]
		s.texts = s.texts[1:]
		return v, nil
	}
	getPassword = func(prompt string, _ io.Writer) ([]byte, error) {
		if len(s.passwords) == 0 {
			t.Fatalf("unexpected password prompt %q", prompt)
		}
		v := s.passwords[0]
		s.passwords = s.passwords[1:]
		return []byte(v), nil
	}
	confirm = func(_ *bufio.Reader, question string, _ io.Writer) (bool, error) {
		if len(s.confirms) == 0 {
			t.Fatalf("unexpected confirmation %q", question)
		}
		v := s.confirms[0]
		s.confirms = s.confirms[1:]
		return v, nil
	}
	t.Cleanup(func() {
		getSimpleText, getPassword, confirm = origST, origGP, origC
	})
	return s
}

func (s *script) text(v ...string) *script     { s.texts = append(s.texts, v...); return s }
func (s *script) password(v ...string) *script { s.passwords = append(s.passwords, v...); return s }
func (s *script) answer(v ...bool) *script     { s.confirms = append(s.confirms, v...); return s }

// ---- app over a real store ----

func newStoreApp(t *testing.T) *App {
	t.Helper()
	log := logging.Discard()

	backend, err := users.NewJSONBackend(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	store := users.NewStore(backend, log)

	return &App{
		log:            log,
		store:          store,
		authService:    services.NewAuthManager(store, cryptox.SHA256Hasher{}, log),
		accountService: services.NewAccountManager(store, log),
		txService:      services.NewTransactionManager(store, log),
		out:            io.Discard,
	}
}

func registerAndLogin(t *testing.T, a *App, name, pw string) {
	t.Helper()
	useScript(t).text(name, name).password(pw, pw)
	require.NoError(t, a.Register(context.Background()))
	require.NoError(t, a.Login(context.Background()))
	require.True(t, a.isLoggedIn())
}
