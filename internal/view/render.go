package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"todo/internal/task"
)

const (
	// Placeholder is shown instead of rows when the list is empty.
	Placeholder = "No tasks yet — add one above ✨"

	// GlyphDone and GlyphPending mark a row's completion toggle.
	GlyphDone    = "✓"
	GlyphPending = " "
)

// Tree is the full display of a list.
type Tree struct {
	// Placeholder is non-empty exactly when there are no rows.
	Placeholder string
	Rows        []Row
	Counter     string
}

// Row is one task as displayed.
type Row struct {
	ID string
	// Text is the task text made safe for display.
	Text    string
	Glyph   string
	Done    bool
	Editing bool
	// Draft is the inline editor text while Editing.
	Draft string
}

// Render builds the tree for l. An EditState naming a row that is not in
// l renders as Viewing.
func Render(l task.List, edit EditState) Tree {
	tree := Tree{Counter: Counter(len(l))}
	if len(l) == 0 {
		tree.Placeholder = Placeholder
		return tree
	}

	editID, editing := edit.Editing()
	tree.Rows = make([]Row, 0, len(l))
	for _, t := range l {
		row := Row{
			ID:    t.ID,
			Text:  Sanitize(t.Text),
			Glyph: GlyphPending,
			Done:  t.Done,
		}
		if t.Done {
			row.Glyph = GlyphDone
		}
		if editing && t.ID == editID {
			row.Editing = true
			row.Draft = Sanitize(edit.Draft())
		}
		tree.Rows = append(tree.Rows, row)
	}
	return tree
}

// Counter formats the task count summary.
func Counter(n int) string {
	return fmt.Sprintf("%d tasks", n)
}

// Sanitize strips terminal escape sequences and folds line breaks so
// task text can only ever occupy a single plain line.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '\t', '\v', '\f':
			return ' '
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return s
}
