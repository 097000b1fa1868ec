package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/task"
	"todo/internal/view"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command, which is also what `todo` with
// no arguments runs.
type ListCmd struct {
	pending bool
}

// SetPending restricts output to pending tasks (for testing).
func (c *ListCmd) SetPending(pending bool) {
	c.pending = pending
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "Print the task list" }
func (c *ListCmd) Usage() string     { return "todo list [--pending]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.pending, "pending", "p", false, "")
}

// Run prints the numbered rows and the counter. Row numbers are valid
// task references. With --pending the rows are filtered but the counter
// and numbers still describe the whole list.
func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, out, errOut io.Writer) int {
	tree := view.Render(store.Tasks(), view.NoEdit())
	if c.pending {
		output.WritePending(out, tree)
	} else {
		output.WriteTree(out, tree)
	}
	return exitcode.Success
}
