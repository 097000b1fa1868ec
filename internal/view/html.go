package view

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// EscapeMarkup escapes text for inclusion in HTML text and quoted
// attribute values.
func EscapeMarkup(s string) string {
	return html.EscapeString(s)
}

// WriteHTML writes the tree as an HTML fragment: a list followed by the
// counter. All task text is escaped.
func WriteHTML(w io.Writer, tree Tree) error {
	var b strings.Builder
	b.WriteString("<ul id=\"list\">\n")
	if tree.Placeholder != "" {
		fmt.Fprintf(&b, "  <li class=\"placeholder\">%s</li>\n", EscapeMarkup(tree.Placeholder))
	}
	for _, row := range tree.Rows {
		checkbox, text := "checkbox", "text"
		if row.Done {
			checkbox += " checked"
			text += " done"
		}
		fmt.Fprintf(&b, "  <li class=\"task\" data-id=\"%s\">\n", EscapeMarkup(row.ID))
		fmt.Fprintf(&b, "    <div class=\"%s\">%s</div>\n", checkbox, EscapeMarkup(strings.TrimSpace(row.Glyph)))
		if row.Editing {
			fmt.Fprintf(&b, "    <input type=\"text\" value=\"%s\" autofocus>\n", EscapeMarkup(row.Draft))
		} else {
			fmt.Fprintf(&b, "    <div class=\"%s\">%s</div>\n", text, EscapeMarkup(row.Text))
		}
		b.WriteString("  </li>\n")
	}
	b.WriteString("</ul>\n")
	fmt.Fprintf(&b, "<div id=\"stats\">%s</div>\n", EscapeMarkup(tree.Counter))

	_, err := io.WriteString(w, b.String())
	return err
}
