package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/task"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, usageHeader)
	for _, cmd := range DefaultRegistry.All() {
		line := cmd.Usage()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %s\n      %s\n", line, cmd.Synopsis())
	}
	fmt.Fprint(out, usageFooter)
	return exitcode.Success
}

const usageHeader = `Usage:
  todo                       List all tasks (same as todo list)
`

const usageFooter = `
A <ref> is a row number as printed by list, or a task id or id prefix.

Common flags:
  --config <dir>     Override config directory
  --backend <name>   Storage backend: file, sqlite or googletasks
  --key <name>       Snapshot key (file name, table row or Google list title)
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
`
