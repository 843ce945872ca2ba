package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	List(ctx context.Context) error
	Categories(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
}

// runREPL reads a command per line and dispatches to methods on a.
// Unknown commands are reported back to the user. The loop exits on EOF,
// on context cancellation, or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues;
// a failed command never tears the REPL down.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Fprintf(w, "prodadmin (%s)> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(w, "input error: %v\n", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error
		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: list, add, edit, delete, categories, profile, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, exit")
			}
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "list":
			cmdErr = a.List(ctx)
		case "categories":
			cmdErr = a.Categories(ctx)
		case "add":
			cmdErr = a.Add(ctx)
		case "edit":
			cmdErr = a.Edit(ctx)
		case "delete":
			cmdErr = a.Delete(ctx)
		case "exit", "quit":
			return
		default:
			fmt.Fprintf(w, "unknown command %q, try 'help'\n", cmd)
		}
		if cmdErr != nil {
			fmt.Fprintf(w, "error: %v\n", cmdErr)
		}
	}
}
