package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isAuthenticated() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	RegisterAnonymous(ctx context.Context) error
	ResendPin(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Token(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the pinauth demo shell.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands when not logged in: help, login, register, anon, resend, exit.
// Commands when logged in: help, whoami, token, logout, exit.
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pinauth> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isAuthenticated() {
				printlnFn("Available commands: whoami, token, logout, exit")
			} else {
				printlnFn("Available commands: login, register, anon, resend, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "anon":
			_ = a.RegisterAnonymous(ctx)

		case "resend":
			_ = a.ResendPin(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "token":
			_ = a.Token(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
