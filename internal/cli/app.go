// Package cli implements the cropctl command line: one subcommand per
// client operation, JSON on stdout, diagnostics through zerolog.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Rrens/crop-advisory/internal/client"
	"github.com/Rrens/crop-advisory/internal/config"
	"github.com/Rrens/crop-advisory/internal/session"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

// Exit statuses
const (
	ExitOK      = 0
	ExitError   = 1
	ExitUsage   = 2
	ExitExpired = 3
)

// ExpiredMessage is printed when the backend rejected the stored token
const ExpiredMessage = "session expired, please log in again: cropctl auth verify"

// App holds what every subcommand needs
type App struct {
	cfg    *config.Config
	client *client.Client
	sess   *session.Session
	store  *Store

	out    io.Writer
	errOut io.Writer
	reader *bufio.Reader
}

// NewApp opens the configured session store and builds the API client
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer, opts ...client.Option) (*App, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts = append([]client.Option{
		client.OnSessionExpired(func(_ context.Context, sess *session.Session) {
			log.Warn().Str("profile", sess.Key()).Msg("Session expired, stored token cleared")
		}),
	}, opts...)

	c, err := client.New(cfg.API, opts...)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		cfg:    cfg,
		client: c,
		sess:   session.New(cfg.Session.Profile, store),
		store:  store,
		out:    out,
		errOut: errOut,
		reader: bufio.NewReader(in),
	}, nil
}

// Close releases the session store
func (a *App) Close() error {
	return a.store.Close()
}

type command struct {
	usage string
	run   func(ctx context.Context, a *App, args []string) error
}

var groups = map[string]map[string]command{
	"auth":          authCommands,
	"chat":          chatCommands,
	"image":         imageCommands,
	"market":        marketCommands,
	"community":     communityCommands,
	"notifications": notificationCommands,
	"profile":       profileCommands,
	"weather":       weatherCommands,
	"crops":         cropCommands,
	"soil":          soilCommands,
	"shops":         shopCommands,
	"session":       sessionCommands,
}

// Run dispatches args ("group sub [flags] [args]")
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage("")
		if len(args) == 0 {
			return usageErrorf("missing command")
		}
		return nil
	}

	group, ok := groups[args[0]]
	if !ok {
		a.usage("")
		return usageErrorf("unknown command %q", args[0])
	}
	if len(args) < 2 || args[1] == "help" {
		a.usage(args[0])
		if len(args) < 2 {
			return usageErrorf("missing %s subcommand", args[0])
		}
		return nil
	}

	cmd, ok := group[args[1]]
	if !ok {
		a.usage(args[0])
		return usageErrorf("unknown %s subcommand %q", args[0], args[1])
	}
	return cmd.run(ctx, a, args[2:])
}

func (a *App) usage(group string) {
	names := make([]string, 0, len(groups))
	for name := range groups {
		if group == "" || name == group {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	fmt.Fprintln(a.errOut, "Usage: cropctl [global flags] <command> <subcommand> [flags] [args]")
	for _, name := range names {
		subs := make([]string, 0, len(groups[name]))
		for sub := range groups[name] {
			subs = append(subs, sub)
		}
		sort.Strings(subs)
		for _, sub := range subs {
			fmt.Fprintf(a.errOut, "  %s %s %s\n", name, sub, groups[name][sub].usage)
		}
	}
}

// print writes v as indented JSON
func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// UsageError is a malformed command line
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// flags returns a FlagSet that reports parse failures as usage errors
func (a *App) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return &UsageError{msg: err.Error()}
	}
	return nil
}

// required fails when any of the named string flags is empty
func required(cmd string, fs *pflag.FlagSet, names ...string) error {
	var missing []string
	for _, name := range names {
		if v, _ := fs.GetString(name); strings.TrimSpace(v) == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return usageErrorf("%s: missing %s", cmd, strings.Join(missing, ", "))
	}
	return nil
}

// optional returns a pointer to the flag's value when it was set
func optional[T any](fs *pflag.FlagSet, name string, v T) *T {
	if !fs.Changed(name) {
		return nil
	}
	return &v
}

// Report prints err for a human and returns the process exit status
func Report(w io.Writer, err error) int {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return ExitOK
	}

	var usageErr *UsageError
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrSessionExpired):
		fmt.Fprintln(w, ExpiredMessage)
		return ExitExpired
	case errors.As(err, &usageErr):
		fmt.Fprintln(w, "error:", usageErr.msg)
		return ExitUsage
	case errors.As(err, &apiErr):
		detail := apiErr.Detail
		if detail == "" {
			detail = strings.TrimSpace(string(apiErr.Body))
		}
		fmt.Fprintf(w, "error: %d %s\n", apiErr.StatusCode, detail)
		return ExitError
	default:
		fmt.Fprintln(w, "error:", err)
		return ExitError
	}
}
