package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/task"
)

// Run starts the interactive UI on the terminal and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, store *task.Store, logger *slog.Logger) error {
	program := tea.NewProgram(
		New(ctx, store, logger),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := program.Run()
	return err
}
