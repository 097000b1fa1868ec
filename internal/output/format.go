// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"

	"todo/internal/view"
)

const (
	// Separator is the line between the rows and the counter.
	Separator = "------------"
)

// FormatRow formats a numbered task row.
// Format: "{N:>4}  [{GLYPH}] {TEXT}\n" (4-wide right-aligned number, two spaces, box, text)
func FormatRow(w io.Writer, num int, row view.Row) {
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, row.Glyph, row.Text)
}

// FormatCounter formats the counter line under the rows.
func FormatCounter(w io.Writer, counter string) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, counter)
}

// WriteTree writes a rendered list: the placeholder or one numbered line
// per row, then the counter.
func WriteTree(w io.Writer, tree view.Tree) {
	if tree.Placeholder != "" {
		fmt.Fprintln(w, tree.Placeholder)
	}
	for i, row := range tree.Rows {
		FormatRow(w, i+1, row)
	}
	FormatCounter(w, tree.Counter)
}

// WritePending is WriteTree without the done rows. Pending rows keep
// their numbers from the full list.
func WritePending(w io.Writer, tree view.Tree) {
	if tree.Placeholder != "" {
		fmt.Fprintln(w, tree.Placeholder)
	}
	for i, row := range tree.Rows {
		if !row.Done {
			FormatRow(w, i+1, row)
		}
	}
	FormatCounter(w, tree.Counter)
}
