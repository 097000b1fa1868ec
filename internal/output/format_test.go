package output_test

import (
	"bytes"
	"testing"

	"todo/internal/output"
	"todo/internal/task"
	"todo/internal/testutil"
	"todo/internal/view"
)

func TestWriteTree(t *testing.T) {
	l := task.List{
		{ID: "2", Text: "Walk dog"},
		{ID: "1", Text: "Buy milk", Done: true},
	}
	var buf bytes.Buffer
	output.WriteTree(&buf, view.Render(l, view.NoEdit()))
	testutil.Golden(t, "tree", buf.Bytes())
}

func TestWriteTree_Empty(t *testing.T) {
	var buf bytes.Buffer
	output.WriteTree(&buf, view.Render(nil, view.NoEdit()))
	testutil.Golden(t, "empty", buf.Bytes())
}

func TestFormatRow(t *testing.T) {
	var buf bytes.Buffer
	output.FormatRow(&buf, 12, view.Row{Text: "x", Glyph: view.GlyphDone})
	if buf.String() != "  12  [✓] x\n" {
		t.Errorf("unexpected row %q", buf.String())
	}
}

func TestWritePending(t *testing.T) {
	l := task.List{
		{ID: "3", Text: "Buy milk", Done: true},
		{ID: "2", Text: "Walk dog"},
	}
	var buf bytes.Buffer
	output.WritePending(&buf, view.Render(l, view.NoEdit()))
	want := "   2  [ ] Walk dog\n------------\n2 tasks\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
