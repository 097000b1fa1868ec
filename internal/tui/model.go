// Package tui is the interactive terminal presenter for the task list.
//
// The model never keeps its own copy of task state beyond what the store
// announces: every store operation notifies the model's subscriber, and
// View renders that list through view.Render.
package tui

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/task"
	"todo/internal/view"
)

type focus int

const (
	focusAdd focus = iota
	focusList
)

const (
	addPlaceholder = "What needs doing?"
	charLimit      = 500
)

// listMirror receives store notifications. It is shared by every copy of
// the model.
type listMirror struct {
	tasks task.List
}

// Model is the bubbletea model for the task list.
type Model struct {
	ctx    context.Context
	store  *task.Store
	mirror *listMirror
	logger *slog.Logger
	keys   KeyMap
	theme  Theme

	add    textinput.Model
	editor textinput.Model
	edit   view.EditState

	focus      focus
	cursor     int
	confirming bool

	status      string
	statusError bool
}

// New creates a model bound to store. The add field starts focused.
func New(ctx context.Context, store *task.Store, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	mirror := &listMirror{tasks: store.Tasks()}
	store.Subscribe(func(l task.List) { mirror.tasks = l })

	add := textinput.New()
	add.Placeholder = addPlaceholder
	add.Prompt = "+ "
	add.CharLimit = charLimit
	add.Focus()

	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = charLimit

	return Model{
		ctx:    ctx,
		store:  store,
		mirror: mirror,
		logger: logger,
		keys:   DefaultKeyMap,
		theme:  DefaultTheme,
		add:    add,
		editor: editor,
		edit:   view.NoEdit(),
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)
	case tea.MouseMsg:
		// Clicking anywhere while editing takes focus from the editor.
		if message.Action == tea.MouseActionPress {
			if _, editing := model.edit.Editing(); editing {
				model = model.commitEdit()
			}
		}
		return model, nil
	}

	// Forward cursor blinks and the like to the focused input.
	var command tea.Cmd
	if _, editing := model.edit.Editing(); editing {
		model.editor, command = model.editor.Update(message)
	} else if model.focus == focusAdd {
		model.add, command = model.add.Update(message)
	}
	return model, command
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, model.keys.ForceQuit) {
		if _, editing := model.edit.Editing(); editing {
			model = model.commitEdit()
		}
		return model, tea.Quit
	}

	if model.confirming {
		return model.handleConfirm(message), nil
	}
	if _, editing := model.edit.Editing(); editing {
		return model.handleEditorKey(message)
	}
	if model.focus == focusAdd {
		return model.handleAddKey(message)
	}
	return model.handleListKey(message)
}

func (model Model) handleConfirm(message tea.KeyMsg) Model {
	model.confirming = false
	yes := key.Matches(message, model.keys.Confirm)
	cleared, err := model.store.ClearAll(model.ctx, func(string) bool { return yes })
	switch {
	case err != nil:
		model = model.fail(err)
	case cleared:
		model = model.inform("Cleared all tasks")
	default:
		model = model.inform("")
	}
	return model.clampCursor()
}

func (model Model) handleEditorKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Submit):
		return model.commitEdit(), nil
	case key.Matches(message, model.keys.Cancel):
		model.edit = model.edit.Cancel()
		model.editor.Blur()
		return model, nil
	case key.Matches(message, model.keys.FocusToggle):
		model = model.commitEdit()
		return model.focusAddField()
	case message.Type == tea.KeyUp || message.Type == tea.KeyDown:
		model = model.commitEdit()
		return model.handleListKey(message)
	}

	var command tea.Cmd
	model.editor, command = model.editor.Update(message)
	model.edit = model.edit.WithDraft(model.editor.Value())
	return model, command
}

func (model Model) handleAddKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Submit):
		added, ok, err := model.store.Add(model.ctx, model.add.Value())
		model.add.Reset()
		if err != nil {
			return model.fail(err), nil
		}
		if ok {
			model.logger.Debug("task added", "id", added.ID)
			model.cursor = 0
			model = model.inform("")
		}
		return model, nil
	case key.Matches(message, model.keys.FocusToggle), message.Type == tea.KeyDown:
		if len(model.mirror.tasks) == 0 {
			return model, nil
		}
		model.focus = focusList
		model.add.Blur()
		return model.clampCursor(), nil
	}

	var command tea.Cmd
	model.add, command = model.add.Update(message)
	return model, command
}

func (model Model) handleListKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := model.mirror.tasks

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.FocusToggle):
		return model.focusAddField()
	case key.Matches(message, model.keys.Up):
		if model.cursor == 0 {
			return model.focusAddField()
		}
		model.cursor--
		return model, nil
	case key.Matches(message, model.keys.Down):
		if model.cursor < len(tasks)-1 {
			model.cursor++
		}
		return model, nil
	case key.Matches(message, model.keys.ClearCompleted):
		removed, err := model.store.ClearCompleted(model.ctx)
		if err != nil {
			return model.fail(err).clampCursor(), nil
		}
		if removed > 0 {
			model = model.inform(plural(removed, "completed task") + " cleared")
		}
		return model.clampCursor(), nil
	case key.Matches(message, model.keys.ClearAll):
		if len(tasks) > 0 {
			model.confirming = true
		}
		return model, nil
	}

	if len(tasks) == 0 {
		return model, nil
	}
	current := tasks[model.cursor]

	switch {
	case key.Matches(message, model.keys.Toggle):
		if err := model.store.ToggleDone(model.ctx, current.ID); err != nil {
			return model.fail(err), nil
		}
	case key.Matches(message, model.keys.Delete):
		if err := model.store.Remove(model.ctx, current.ID); err != nil {
			model = model.fail(err)
		}
		return model.clampCursor(), nil
	case key.Matches(message, model.keys.Edit):
		model.edit = model.edit.Begin(current.ID, current.Text)
		model.editor.SetValue(current.Text)
		model.editor.CursorEnd()
		return model, model.editor.Focus()
	}
	return model, nil
}

// commitEdit applies the draft to the row being edited. Blank or
// unchanged drafts leave the task as it was.
func (model Model) commitEdit() Model {
	id, text, ok := model.edit.Commit()
	model.edit = view.NoEdit()
	model.editor.Blur()
	if !ok {
		return model
	}
	if err := model.store.Edit(model.ctx, id, text); err != nil {
		return model.fail(err)
	}
	return model
}

func (model Model) focusAddField() (tea.Model, tea.Cmd) {
	model.focus = focusAdd
	return model, model.add.Focus()
}

func (model Model) clampCursor() Model {
	n := len(model.mirror.tasks)
	if model.cursor >= n {
		model.cursor = n - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	if n == 0 && model.focus == focusList {
		model.focus = focusAdd
		model.add.Focus()
	}
	return model
}

func (model Model) fail(err error) Model {
	model.logger.Warn("task operation failed", "error", err)
	model.status = "error: " + err.Error()
	model.statusError = true
	return model
}

func (model Model) inform(text string) Model {
	model.status = text
	model.statusError = false
	return model
}

// View implements tea.Model.
func (model Model) View() string {
	var b strings.Builder
	theme := model.theme

	b.WriteString(theme.Title.Render("To-Do List"))
	b.WriteString("\n")
	b.WriteString(model.add.View())
	b.WriteString("\n\n")

	tree := view.Render(model.mirror.tasks, model.edit)
	if tree.Placeholder != "" {
		b.WriteString(theme.Placeholder.Render(tree.Placeholder))
		b.WriteString("\n")
	}
	for i, row := range tree.Rows {
		b.WriteString(model.renderRow(i, row))
		b.WriteString("\n")
	}

	b.WriteString(theme.Counter.Render(tree.Counter))
	b.WriteString("\n")

	switch {
	case model.confirming:
		b.WriteString(theme.Prompt.Render(task.ClearAllPrompt + " (y/n)"))
	case model.status != "" && model.statusError:
		b.WriteString(theme.Error.Render(model.status))
	case model.status != "":
		b.WriteString(theme.Help.Render(model.status))
	case model.focus == focusList:
		b.WriteString(theme.renderHelp(model.keys.listHelp()))
	default:
		b.WriteString(theme.renderHelp([]key.Binding{model.keys.Submit, model.keys.FocusToggle, model.keys.ForceQuit}))
	}
	b.WriteString("\n")
	return b.String()
}

func (model Model) renderRow(i int, row view.Row) string {
	theme := model.theme

	marker := "  "
	if model.focus == focusList && i == model.cursor {
		marker = theme.Cursor.Render("> ")
	}
	box := theme.Box.Render("[" + row.Glyph + "]")

	if row.Editing {
		return marker + box + " " + model.editor.View()
	}
	text := theme.Pending.Render(row.Text)
	if row.Done {
		text = theme.Done.Render(row.Text)
	}
	return marker + box + " " + text
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
