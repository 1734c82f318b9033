package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vsrclient/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Status(ctx context.Context) error
	Resource(ctx context.Context, r models.Resource, args []string) error
}

// helpText lists the commands available in the current session state.
func helpText(loggedIn, admin bool) string {
	if !loggedIn {
		return strings.Join([]string{
			"Available commands:",
			"  register | login | status | exit",
			"  post list|next|prev|get|comments",
			"  comment list|next|prev|get",
		}, "\n")
	}

	lines := []string{
		"Available commands:",
		"  me | status | logout | exit",
		"  post list|next|prev|get|comments|create|edit|delete",
		"  comment list|next|prev|get|create|edit|delete",
	}
	if admin {
		lines = append(lines, "  user list|next|prev|get|create|edit|delete|promote")
	}
	lines = append(lines, "List options: --page N --limit N --sort FIELD --desc --search TERM")
	return strings.Join(lines, "\n")
}

// runREPL starts a simple read–eval–print loop for the vsrc CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Resource commands ("post",
// "comment", "user", singular or plural) get the rest of the line as
// arguments. The loop exits on scanner EOF or when the user types "exit"
// or "quit".
//
// Failed commands print their error and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("vsrc %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		hadSession := a.isLoggedIn()

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText(a.isLoggedIn(), a.isAdmin()))

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "me":
			err = a.Me(ctx)

		case "status":
			err = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			r, perr := models.ParseResource(cmd)
			if perr != nil {
				printlnFn("Unknown command:", cmd)
				continue
			}
			err = a.Resource(ctx, r, args)
		}

		if err != nil && !errors.Is(err, errAborted) {
			printlnFn(describeError(err, hadSession))
		}
	}
}

// Repl runs the interactive loop on the app's input until exit, EOF or ctx
// is done.
func (a *App) Repl(ctx context.Context) error {
	printlnFn("Welcome to vsrc (type 'help' for commands)")
	scanner := bufio.NewScanner(&lineReader{r: a.reader})
	runREPL(ctx, a, a.getStatus, scanner)
	return scanner.Err()
}
