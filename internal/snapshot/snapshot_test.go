package snapshot_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"todo/internal/snapshot"
	"todo/internal/task"
	"todo/internal/testutil"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	lists := []task.List{
		{},
		{{ID: "a", Text: "Buy milk"}},
		{
			{ID: "3", Text: "Walk dog"},
			{ID: "2", Text: "<b>bold</b> & more", Done: true},
			{ID: "1", Text: "ünïcödé ✨"},
		},
	}

	for _, l := range lists {
		data, err := snapshot.Encode(l)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, err := snapshot.Decode(data)
		if err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		if !reflect.DeepEqual(got, l) {
			t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", l, got)
		}
	}
}

func TestEncode_Layout(t *testing.T) {
	data, err := snapshot.Encode(task.List{{ID: "1", Text: "x", Done: true}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"id":"1","text":"x","done":true}]`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}

	data, _ = snapshot.Encode(nil)
	if string(data) != "[]" {
		t.Errorf("expected nil list to encode as [], got %s", data)
	}
}

func TestDecode_Corrupt(t *testing.T) {
	inputs := map[string]string{
		"empty":        ``,
		"object":       `{"id":"1","text":"x"}`,
		"null":         `null`,
		"garbage":      `[{"id":`,
		"missing id":   `[{"text":"x","done":false}]`,
		"empty id":     `[{"id":"","text":"x"}]`,
		"missing text": `[{"id":"1"}]`,
		"blank text":   `[{"id":"1","text":"   "}]`,
		"duplicate":    `[{"id":"1","text":"a"},{"id":"1","text":"b"}]`,
		"wrong type":   `[{"id":1,"text":"a"}]`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := snapshot.Decode([]byte(input))
			if !errors.Is(err, snapshot.ErrCorrupt) {
				t.Errorf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestPersistence_LoadMissing(t *testing.T) {
	p := snapshot.NewPersistence(testutil.NewFakeSlot(), "", nil)

	got, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty list, got %#v", got)
	}
	if p.Key() != snapshot.DefaultKey {
		t.Errorf("expected default key, got %q", p.Key())
	}
}

func TestPersistence_LoadCorruptStartsFresh(t *testing.T) {
	slot := testutil.NewFakeSlot()
	slot.Put(context.Background(), snapshot.DefaultKey, []byte("not json"))
	p := snapshot.NewPersistence(slot, "", nil)

	got, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("corruption must not be an error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %+v", got)
	}
}

func TestPersistence_LoadSlotError(t *testing.T) {
	slot := testutil.NewFakeSlot()
	slot.GetErr = errors.New("permission denied")
	p := snapshot.NewPersistence(slot, "", nil)

	if _, err := p.Load(context.Background()); !errors.Is(err, slot.GetErr) {
		t.Errorf("expected slot error, got %v", err)
	}
}

func TestPersistence_SaveOverwritesUnderKey(t *testing.T) {
	slot := testutil.NewFakeSlot()
	p := snapshot.NewPersistence(slot, "todo.tasks.v2", nil)
	ctx := context.Background()

	first := task.List{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}}
	second := task.List{{ID: "b", Text: "B", Done: true}}
	if err := p.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := p.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, ok := slot.Raw(snapshot.DefaultKey); ok {
		t.Error("saved under the default key instead of the configured one")
	}
	got, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Errorf("expected %+v, got %+v", second, got)
	}
}

func TestPersistence_SaveError(t *testing.T) {
	slot := testutil.NewFakeSlot()
	slot.PutErr = errors.New("read-only")
	p := snapshot.NewPersistence(slot, "", nil)

	if err := p.Save(context.Background(), task.List{}); !errors.Is(err, slot.PutErr) {
		t.Errorf("expected put error, got %v", err)
	}
}
