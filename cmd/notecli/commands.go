package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"notes_backend/internal/client"
)

type app struct {
	api   *client.Client
	store client.SessionStore
	in    io.Reader
	out   io.Writer
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signup":
		return a.signup(ctx, args)
	case "signin", "login":
		return a.signin(ctx, args)
	case "signout", "logout":
		return a.signout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "list", "ls":
		return a.list(ctx)
	case "add":
		return a.add(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "pin":
		return a.pin(ctx, args, true)
	case "unpin":
		return a.pin(ctx, args, false)
	case "delete", "rm":
		return a.remove(ctx, args)
	case "search":
		return a.search(ctx, args)
	case "help":
		usage(a.out)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// session loads the stored session, failing when the user has not signed in.
func (a *app) session() (client.Session, error) {
	s, err := a.store.Load()
	if errors.Is(err, client.ErrNoSession) {
		return s, errors.New("not signed in, run: notecli signin -email EMAIL")
	}
	return s, err
}

// authed runs fn with the stored session and drops the session when the server rejects it.
func (a *app) authed(fn func(client.Session) error) error {
	s, err := a.session()
	if err != nil {
		return err
	}
	err = fn(s)
	if client.IsUnauthorized(err) {
		_ = a.store.Clear()
		return errors.New("session expired, sign in again")
	}
	return err
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := a.flags("signup")
	username := fs.String("username", "", "user name")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *email == "" {
		return errors.New("signup needs -username and -email")
	}
	password, err := promptPassword(a.in, a.out, "Password: ")
	if err != nil {
		return err
	}
	if err := a.api.Signup(ctx, *username, *email, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created. Sign in with: notecli signin -email", *email)
	return nil
}

func (a *app) signin(ctx context.Context, args []string) error {
	fs := a.flags("signin")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("signin needs -email")
	}
	password, err := promptPassword(a.in, a.out, "Password: ")
	if err != nil {
		return err
	}
	s, err := a.api.Signin(ctx, *email, password)
	if err != nil {
		return err
	}
	if err := a.store.Save(s); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s <%s>\n", s.User.Username, s.User.Email)
	return nil
}

func (a *app) signout(ctx context.Context) error {
	s, err := a.store.Load()
	if errors.Is(err, client.ErrNoSession) {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	if err == nil {
		// The token is stateless; a failed call must not keep the local session alive.
		_ = a.api.Signout(ctx, s)
	}
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	return a.authed(func(s client.Session) error {
		u, err := a.api.Check(ctx, s)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s <%s> (%s)\n", u.Username, u.Email, u.ID)
		return nil
	})
}

func (a *app) list(ctx context.Context) error {
	return a.authed(func(s client.Session) error {
		notes, err := a.api.ListNotes(ctx, s)
		if err != nil {
			return err
		}
		return printNotes(a.out, notes)
	})
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := a.flags("add")
	title := fs.String("title", "", "note title")
	content := fs.String("content", "", "note content")
	tags := fs.String("tags", "", "comma separated tags")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.authed(func(s client.Session) error {
		n, err := a.api.AddNote(ctx, s, client.NewNote{Title: *title, Content: *content, Tags: splitTags(*tags)})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Added", n.ID)
		return nil
	})
}

func (a *app) edit(ctx context.Context, args []string) error {
	id, rest, err := leadingID("edit", args)
	if err != nil {
		return err
	}
	fs := a.flags("edit")
	title := fs.String("title", "", "new title")
	content := fs.String("content", "", "new content")
	tags := fs.String("tags", "", "new comma separated tags")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	var ch client.NoteChanges
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			ch.Title = title
		case "content":
			ch.Content = content
		case "tags":
			t := splitTags(*tags)
			if t == nil {
				t = []string{}
			}
			ch.Tags = &t
		}
	})

	return a.authed(func(s client.Session) error {
		n, err := a.api.EditNote(ctx, s, id, ch)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Updated", n.ID)
		return nil
	})
}

func (a *app) pin(ctx context.Context, args []string, pinned bool) error {
	id, _, err := leadingID("pin", args)
	if err != nil {
		return err
	}
	return a.authed(func(s client.Session) error {
		n, err := a.api.SetPinned(ctx, s, id, pinned)
		if err != nil {
			return err
		}
		state := "Unpinned"
		if n.IsPinned {
			state = "Pinned"
		}
		fmt.Fprintln(a.out, state, n.ID)
		return nil
	})
}

func (a *app) remove(ctx context.Context, args []string) error {
	id, _, err := leadingID("delete", args)
	if err != nil {
		return err
	}
	return a.authed(func(s client.Session) error {
		if err := a.api.DeleteNote(ctx, s, id); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Deleted", id)
		return nil
	})
}

func (a *app) search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	return a.authed(func(s client.Session) error {
		notes, err := a.api.SearchNotes(ctx, s, query)
		if err != nil {
			return err
		}
		return printNotes(a.out, notes)
	})
}

func leadingID(cmd string, args []string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", nil, fmt.Errorf("%s needs a note ID", cmd)
	}
	return args[0], args[1:], nil
}

// splitTags parses "a, b,,c" into [a b c]. An empty string yields nil.
func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func printNotes(w io.Writer, notes []client.Note) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, "No notes")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPIN\tTITLE\tTAGS\tCREATED")
	for _, n := range notes {
		pin := ""
		if n.IsPinned {
			pin = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.ID, pin, n.Title, strings.Join(n.Tags, ","), n.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
