// Command notecli is a terminal client for the notes API.
//
// Usage:
//
//	notecli [-api URL] <command> [flags] [args]
//
// The signed-in session is kept in the user config directory and removed on
// signout or when the server rejects the token.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"notes_backend/internal/client"
)

const defaultAPIURL = "http://localhost:8080"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "notecli:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	global := flag.NewFlagSet("notecli", flag.ContinueOnError)
	global.SetOutput(stdout)
	apiURL := global.String("api", envOr("NOTES_API_URL", defaultAPIURL), "base URL of the notes API")
	sessionPath := global.String("session", os.Getenv("NOTECLI_SESSION"), "session file (default: user config dir)")
	global.Usage = func() { usage(global.Output()) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		usage(stdout)
		return errors.New("missing command")
	}

	path := *sessionPath
	if path == "" {
		p, err := client.DefaultSessionPath()
		if err != nil {
			return err
		}
		path = p
	}

	a := &app{
		api:   client.New(*apiURL, nil),
		store: client.FileStore{Path: path},
		in:    stdin,
		out:   stdout,
	}
	return a.dispatch(ctx, global.Arg(0), global.Args()[1:])
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: notecli [-api URL] [-session FILE] <command> [args]

Commands:
  signup   -username NAME -email EMAIL     register (password is prompted)
  signin   -email EMAIL                    sign in and store the session
  signout                                  end the session
  whoami                                   show the signed-in user
  list                                     list your notes, pinned first
  add      -title T -content C [-tags a,b] create a note
  edit     ID [-title T] [-content C] [-tags a,b]
  pin      ID                              pin a note
  unpin    ID                              unpin a note
  delete   ID                              delete a note
  search   QUERY                           search title, content and tags
`)
}
