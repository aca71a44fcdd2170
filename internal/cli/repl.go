package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL needs. App satisfies it; tests
// provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Deposit(ctx context.Context) error
	Withdraw(ctx context.Context) error
	Balance(ctx context.Context) error
	Info(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ReportLoss(ctx context.Context) error
	Freeze(ctx context.Context) error
	Unfreeze(ctx context.Context) error
	CloseAccount(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: deposit, withdraw, balance, info, passwd, loss, freeze, unfreeze, close, logout, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
//
//	Not logged in:
//	  help, register, login, exit | quit
//
//	Logged in:
//	  help, deposit, withdraw, balance, info, passwd,
//	  loss, freeze, unfreeze, close, logout, exit | quit
//
// Errors returned by handlers are ignored here; handlers report to the user
// themselves. The loop ends on EOF, on "exit"/"quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("bank%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if cmd == "help" {
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		}

		if a.isLoggedIn() {
			dispatchLoggedIn(ctx, a, cmd)
		} else {
			dispatchLoggedOut(ctx, a, cmd)
		}
	}
}

func dispatchLoggedOut(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "register":
		_ = a.Register(ctx)
	case "login":
		_ = a.Login(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func dispatchLoggedIn(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "deposit":
		_ = a.Deposit(ctx)
	case "withdraw":
		_ = a.Withdraw(ctx)
	case "balance":
		_ = a.Balance(ctx)
	case "info":
		_ = a.Info(ctx)
	case "passwd":
		_ = a.ChangePassword(ctx)
	case "loss":
		_ = a.ReportLoss(ctx)
	case "freeze":
		_ = a.Freeze(ctx)
	case "unfreeze":
		_ = a.Unfreeze(ctx)
	case "close":
		_ = a.CloseAccount(ctx)
	case "logout":
		_ = a.Logout(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}
