package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/restaurant-panel/internal/config"
	perrors "github.com/jrsteele09/restaurant-panel/internal/errors"
	"github.com/jrsteele09/restaurant-panel/panel"
)

var errUsage = errors.New("usage")

type app struct {
	cfg   config.Config
	panel *panel.Panel
	in    io.Reader
	out   io.Writer
}

type command struct {
	usage string
	// anonymous commands run without signing in first
	anonymous bool
	run       func(ctx context.Context, a *app, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"login":      {usage: "login [email password]", anonymous: true, run: loginCmd},
		"logout":     {usage: "logout", anonymous: true, run: logoutCmd},
		"status":     {usage: "status", anonymous: true, run: statusCmd},
		"categories": {usage: "categories", run: categoriesCmd},
		"category":   {usage: "category add <nameTr> <nameEn> | update <id> <nameTr> <nameEn> | delete <id>", run: categoryCmd},
		"items":      {usage: "items <categoryId>", run: itemsCmd},
		"item":       {usage: "item add <categoryId> <name> <nameEn> <price1> [price2] | update <id> <name> <nameEn> <price1> [price2] | delete <id>", run: itemCmd},
		"photos":     {usage: "photos", run: photosCmd},
		"photo":      {usage: "photo add <imageUrl> [flags] | update <id> <imageUrl> [flags] | delete <id>", run: photoCmd},
		"labels":     {usage: "labels", run: labelsCmd},
		"label":      {usage: "label add <nameTr> <nameEn> | update <id> <nameTr> <nameEn> | delete <id>", run: labelCmd},
		"reorder":    {usage: "reorder categories <id>... | items <categoryId> <id>... | photos <id>...", run: reorderCmd},
		"shell":      {usage: "shell", anonymous: true, run: shellCmd},
	}
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}

func newApp(cfg config.Config, in io.Reader, out io.Writer) (*app, error) {
	p, err := panel.New(cfg)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, panel: p, in: in, out: out}
	a.panel.Session.Subscribe(func(authenticated bool) {
		log.Debug().Bool("authenticated", authenticated).Msg("panelctl: session changed")
	})
	a.panel.Session.Restore(context.Background())
	return a, nil
}

func (a *app) close() {
	a.panel.Close()
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}
	if !cmd.anonymous {
		if err := a.ensureLoggedIn(ctx); err != nil {
			return err
		}
	}
	err := cmd.run(ctx, a, args[1:])
	if errors.Is(err, errUsage) {
		return fmt.Errorf("usage: %s", cmd.usage)
	}
	if errors.Is(err, perrors.ErrRefreshFailed) {
		return fmt.Errorf("%w (run login again)", err)
	}
	return err
}

// ensureLoggedIn signs in with the configured operator credentials when the
// restored session is anonymous.
func (a *app) ensureLoggedIn(ctx context.Context) error {
	if a.panel.Session.IsAuthenticated() {
		return nil
	}
	email, password := a.cfg.GetOperatorEmail(), a.cfg.GetOperatorPassword()
	if email == "" || password == "" {
		return errors.New("not logged in: run login or set PANEL_EMAIL and PANEL_PASSWORD")
	}
	return a.panel.Session.Login(ctx, email, password)
}

func (a *app) table(header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func shellCmd(ctx context.Context, a *app, args []string) error {
	scanner := bufio.NewScanner(a.in)
	fmt.Fprint(a.out, "> ")
	for scanner.Scan() {
		fields, err := splitFields(scanner.Text())
		switch {
		case err != nil:
			fmt.Fprintf(a.out, "error: %v\n", err)
		case len(fields) == 0:
		case fields[0] == "exit" || fields[0] == "quit":
			return nil
		case fields[0] == "help":
			printUsage(a.out)
		case fields[0] == "shell":
			fmt.Fprintln(a.out, "already in the shell")
		default:
			if err := a.dispatch(ctx, fields); err != nil {
				fmt.Fprintf(a.out, "error: %v\n", err)
			}
		}
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(a.out, "> ")
	}
	return scanner.Err()
}

// splitFields splits a shell line on spaces, keeping double quoted text together.
func splitFields(line string) ([]string, error) {
	var fields []string
	var current strings.Builder
	inQuotes, started := false, false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			started = true
		case r == ' ' && !inQuotes:
			if started {
				fields = append(fields, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if inQuotes {
		return nil, errors.New("unterminated quote")
	}
	if started {
		fields = append(fields, current.String())
	}
	return fields, nil
}
