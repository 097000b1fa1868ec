package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/task"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd implements the clear command.
type ClearCmd struct {
	all bool
	yes bool
	in  io.Reader
}

// SetInput sets where the confirmation answer is read from (for testing).
func (c *ClearCmd) SetInput(in io.Reader) {
	c.in = in
}

// SetFlags sets --all and --yes (for testing).
func (c *ClearCmd) SetFlags(all, yes bool) {
	c.all = all
	c.yes = yes
}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return nil }
func (c *ClearCmd) Synopsis() string  { return "Remove completed tasks, or all with --all" }
func (c *ClearCmd) Usage() string     { return "todo clear [--all [--yes]]" }
func (c *ClearCmd) NeedsStore() bool  { return true }

func (c *ClearCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.all, "all", "a", false, "")
	fs.BoolVarP(&c.yes, "yes", "y", false, "")
}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if !c.all {
		removed, err := store.ClearCompleted(ctx)
		if err != nil {
			return backendFailure(errOut, err)
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "cleared %d\n", removed)
		}
		return exitcode.Success
	}

	confirm := c.prompt(errOut)
	if c.yes {
		confirm = func(string) bool { return true }
	}
	cleared, err := store.ClearAll(ctx, confirm)
	if err != nil {
		return backendFailure(errOut, err)
	}
	if !cleared {
		if !cfg.Quiet {
			fmt.Fprintln(out, "cancelled")
		}
		return exitcode.Success
	}
	return ok(cfg, out)
}

// prompt returns a confirmation that asks on errOut and reads a y/N
// answer. Anything but y or yes, including end of input, is a no.
func (c *ClearCmd) prompt(errOut io.Writer) task.ConfirmFunc {
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	return func(question string) bool {
		fmt.Fprintf(errOut, "%s [y/N] ", question)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(errOut)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}
