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
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context, args []string) error
	AddFood(ctx context.Context) error
	List(ctx context.Context, args []string) error
	DeleteFood(ctx context.Context, args []string) error
	Hits(ctx context.Context, args []string) error
	Goal(ctx context.Context, args []string) error
	Chat(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	Settings(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	Sync(ctx context.Context) error
	Resync(ctx context.Context) error
}

const helpText = `Available commands:
  add                      log a food entry
  (l)ist [date]            entries and totals of a day
  delete <id>              delete an entry
  hits [date]              protein synthesis hits of a day
  goal [set|clear] [date]  daily goal
  chat [text]              save a chat message
  history [n]              latest chat messages
  settings [key value]     local preferences
  status                   connectivity and sync status
  sync                     synchronize now
  resync                   re-download everything from the server
  %s
  exit | quit              leave the program
`

// runREPL starts a simple read–eval–print loop for the NutriSync CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit". Handlers print their own errors, so the returned
// errors are ignored here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "ns %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			account := "register | login"
			if a.isLoggedIn() {
				account = "logout [forget]"
			}
			fmt.Fprintf(w, helpText, fmt.Sprintf("%-24s account", account))

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx, args)

		case "add":
			_ = a.AddFood(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "delete":
			_ = a.DeleteFood(ctx, args)

		case "hits":
			_ = a.Hits(ctx, args)

		case "goal":
			_ = a.Goal(ctx, args)

		case "chat":
			_ = a.Chat(ctx, args)

		case "history":
			_ = a.History(ctx, args)

		case "settings":
			_ = a.Settings(ctx, args)

		case "status":
			_ = a.Status(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "resync":
			_ = a.Resync(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
