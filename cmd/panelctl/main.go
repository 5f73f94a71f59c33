// Command panelctl manages the restaurant panel's menu and gallery from a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/restaurant-panel/internal/config"
	"github.com/jrsteele09/restaurant-panel/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("panelctl", flag.ContinueOnError)
	flags.SetOutput(stderr)
	apiURL := flags.String("api", "", "panel API base URL (overrides PANEL_API_URL)")
	store := flags.String("store", "", "token store: memory, file or redis (overrides PANEL_TOKEN_STORE)")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: panelctl [flags] <command> [args]\n\nflags:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\ncommands:\n")
		printUsage(stderr)
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	// Flags override the environment the config reads from
	if *apiURL != "" {
		os.Setenv("PANEL_API_URL", *apiURL)
	}
	if *store != "" {
		os.Setenv("PANEL_TOKEN_STORE", *store)
	}

	c := config.New()
	logging.Setup(c.GetEnv(), c.GetLogLevel(), stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(c, stdin, stdout)
	if err != nil {
		log.Error().Err(err).Msg("panelctl: failed to start")
		return 1
	}
	defer a.close()

	if flags.Arg(0) == "shell" {
		displayAppname(c.GetAppName())
	}
	if err := a.dispatch(ctx, flags.Args()); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
