// Package export writes the task list in formats meant for other tools
// and for printing.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"todo/internal/task"
	"todo/internal/view"
)

// Format names an export format.
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
	HTML Format = "html"
	PDF  Format = "pdf"
)

// Formats lists the supported formats in help order.
var Formats = []Format{JSON, CSV, HTML, PDF}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %s", name)
}

// Write exports l to w in the given format.
func Write(w io.Writer, format Format, l task.List) error {
	switch format {
	case JSON:
		return writeJSON(w, l)
	case CSV:
		return writeCSV(w, l)
	case HTML:
		return writeHTML(w, l)
	case PDF:
		return writePDF(w, l)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}

func writeJSON(w io.Writer, l task.List) error {
	if l == nil {
		l = task.List{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

func writeCSV(w io.Writer, l task.List) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "text", "done"}); err != nil {
		return err
	}
	for _, t := range l {
		if err := cw.Write([]string{t.ID, t.Text, strconv.FormatBool(t.Done)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>To-Do List</title>
<style>
body { font-family: sans-serif; max-width: 40em; margin: 2em auto; }
ul { list-style: none; padding: 0; }
.task { display: flex; gap: .6em; padding: .4em 0; }
.checkbox { width: 1.2em; text-align: center; border: 1px solid #aaa; border-radius: 4px; }
.done { text-decoration: line-through; color: #888; }
.placeholder { text-align: center; color: #777; padding: 20px; }
</style>
</head>
<body>
<h1>To-Do List</h1>
`

func writeHTML(w io.Writer, l task.List) error {
	var buf bytes.Buffer
	buf.WriteString(htmlHead)
	if err := view.WriteHTML(&buf, view.Render(l, view.NoEdit())); err != nil {
		return err
	}
	buf.WriteString("</body>\n</html>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// writePDF prints a checklist. The core fonts only cover cp1252, so the
// check mark is drawn rather than typed.
func writePDF(w io.Writer, l task.List) error {
	tree := view.Render(l, view.NoEdit())

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "To-Do List")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	if tree.Placeholder != "" {
		pdf.SetTextColor(119, 119, 119)
		pdf.Cell(0, 8, tr("No tasks yet"))
		pdf.Ln(8)
	}

	const (
		rowHeight = 8.0
		boxSize   = 4.0
	)
	for _, row := range tree.Rows {
		x, y := pdf.GetX(), pdf.GetY()
		boxY := y + (rowHeight-boxSize)/2
		pdf.SetDrawColor(0, 0, 0)
		pdf.Rect(x, boxY, boxSize, boxSize, "D")
		if row.Done {
			pdf.Line(x+0.8, boxY+2.2, x+1.8, boxY+3.2)
			pdf.Line(x+1.8, boxY+3.2, x+3.4, boxY+0.8)
		}

		text := tr(row.Text)
		textX := x + boxSize + 3
		pdf.SetXY(textX, y)
		if row.Done {
			pdf.SetTextColor(136, 136, 136)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Cell(0, rowHeight, text)
		if row.Done {
			width := pdf.GetStringWidth(text)
			pdf.SetDrawColor(136, 136, 136)
			pdf.Line(textX+1, y+rowHeight/2, textX+1+width, y+rowHeight/2)
		}
		pdf.Ln(rowHeight)
	}

	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(0, 6, tree.Counter)

	return pdf.Output(w)
}
