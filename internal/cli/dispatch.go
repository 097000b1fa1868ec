// Package cli parses the command line and runs commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"todo/internal/backend/googletasks"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/task"
)

// PersistenceFactory opens the task persistence for cfg.
// Used to inject the backend during dispatch.
type PersistenceFactory func(ctx context.Context, cfg *config.Config) (task.Persistence, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  PersistenceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and
// persistence factory. A nil factory selects OpenPersistence.
func NewDispatcher(registry *commands.Registry, factory PersistenceFactory) *Dispatcher {
	if factory == nil {
		factory = OpenPersistence
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	backend   string
	key       string
	quiet     bool
	debug     bool
}

func (f *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "")
	fs.StringVar(&f.backend, "backend", "", "")
	fs.StringVar(&f.key, "key", "", "")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	positionalArgs := fs.Args()

	cfg, err := config.New(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	// Flags override config.yaml.
	if err := cfg.Apply(config.File{Backend: config.Backend(common.backend), Key: common.key}); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug
	cfg.Logger = newLogger(errOut, common.debug)

	if !cmd.NeedsStore() {
		return cmd.Run(ctx, cfg, nil, positionalArgs, out, errOut)
	}

	persistence, err := d.factory(ctx, cfg)
	if err != nil {
		return reportOpenError(errOut, err)
	}
	if closer, ok := persistence.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				cfg.Log().Warn("closing backend failed", "error", err)
			}
		}()
	}

	cfg.Log().Debug("opening task store", "backend", cfg.Backend, "key", cfg.Key)
	store, err := task.Open(ctx, persistence, task.WithLogger(cfg.Log()))
	if err != nil {
		return reportOpenError(errOut, err)
	}

	return cmd.Run(ctx, cfg, store, positionalArgs, out, errOut)
}

// newLogger logs warnings to errOut, or everything with debug.
func newLogger(errOut io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
}

func reportOpenError(errOut io.Writer, err error) int {
	if errors.Is(err, ErrAuth) || errors.Is(err, googletasks.ErrUnauthorized) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
