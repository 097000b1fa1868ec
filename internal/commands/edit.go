package commands

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Replace a task's text" }
func (c *EditCmd) Usage() string     { return "todo edit <ref> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {}

// Run replaces the text. Blank replacement text leaves the task as it
// was.
func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, out, errOut io.Writer) int {
	t, rest, code := resolveArgs(store, args, errOut)
	if code != exitcode.Success {
		return code
	}
	if err := store.Edit(ctx, t.ID, strings.Join(rest, " ")); err != nil {
		return backendFailure(errOut, err)
	}
	return ok(cfg, out)
}
