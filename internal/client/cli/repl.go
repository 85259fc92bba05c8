package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Google(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	Trips(ctx context.Context, search string) error
	Trip(ctx context.Context, id string) error
	AddTrip(ctx context.Context) error
	EditTrip(ctx context.Context, id string) error
	DeleteTrip(ctx context.Context, id string) error
	Activities(ctx context.Context, tripID string) error
	AddActivity(ctx context.Context, tripID string) error
	EditActivity(ctx context.Context, tripID, id string) error
	DeleteActivity(ctx context.Context, tripID, id string) error
}

// usage lists commands and their mandatory argument count.
var usage = map[string]struct {
	args int
	text string
}{
	"trip":         {1, "trip <id>"},
	"edittrip":     {1, "edittrip <id>"},
	"deltrip":      {1, "deltrip <id>"},
	"activities":   {1, "activities <tripId>"},
	"addactivity":  {1, "addactivity <tripId>"},
	"editactivity": {2, "editactivity <tripId> <id>"},
	"delactivity":  {2, "delactivity <tripId> <id>"},
}

// runREPL starts a simple read–eval–print loop for the cotrip CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The loop exits on EOF, when ctx is done or
// when the user types "exit" or "quit".
//
//	Always:
//	  - help                         - show available commands
//	  - trips [search]               - list trips, optionally filtered
//	  - trip <id>                    - show a trip
//	  - activities <tripId>          - list activities of a trip
//	  - status                       - session and connection state
//	  - exit | quit                  - leave the program
//
//	Not logged in:
//	  - register | login | google    - authenticate
//
//	Logged in:
//	  - whoami | refresh | logout
//	  - addtrip | edittrip <id> | deltrip <id>
//	  - addactivity <tripId> | editactivity <tripId> <id> | delactivity <tripId> <id>
//
// Errors returned by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("cotrip%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if u, ok := usage[cmd]; ok && len(args) < u.args {
			printlnFn("Usage:", u.text)
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: trips [search], trip, addtrip, edittrip, deltrip, activities, addactivity, editactivity, delactivity, whoami, status, refresh, logout, exit")
			} else {
				printlnFn("Available commands: register, login, google, trips [search], trip, activities, status, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "google":
			cmdErr = a.Google(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "status":
			cmdErr = a.Status(ctx)
		case "refresh":
			cmdErr = a.Refresh(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)

		case "trips":
			cmdErr = a.Trips(ctx, strings.Join(args, " "))
		case "trip":
			cmdErr = a.Trip(ctx, args[0])
		case "addtrip":
			cmdErr = a.AddTrip(ctx)
		case "edittrip":
			cmdErr = a.EditTrip(ctx, args[0])
		case "deltrip":
			cmdErr = a.DeleteTrip(ctx, args[0])

		case "activities":
			cmdErr = a.Activities(ctx, args[0])
		case "addactivity":
			cmdErr = a.AddActivity(ctx, args[0])
		case "editactivity":
			cmdErr = a.EditActivity(ctx, args[0], args[1])
		case "delactivity":
			cmdErr = a.DeleteActivity(ctx, args[0], args[1])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
	}
}
