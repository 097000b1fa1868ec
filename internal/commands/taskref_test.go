package commands

import (
	"errors"
	"testing"

	"todo/internal/task"
)

var refList = task.List{
	{ID: "0192a1b2-aaaa", Text: "Walk dog"},
	{ID: "0192a1b2-bbbb", Text: "Buy milk", Done: true},
	{ID: "7", Text: "Numeric id"},
}

func TestParseTaskRef_Number(t *testing.T) {
	ref, rest, err := ParseTaskRef([]string{"2", "new", "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 2 {
		t.Errorf("expected Num 2, got %d", ref.Num)
	}
	if len(rest) != 2 || rest[0] != "new" {
		t.Errorf("unexpected rest %v", rest)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, _, err := ParseTaskRef([]string{"0192a1b2-bb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 0 || ref.Raw != "0192a1b2-bb" {
		t.Errorf("unexpected ref %+v", ref)
	}
}

func TestParseTaskRef_Required(t *testing.T) {
	for _, args := range [][]string{nil, {}, {"  "}} {
		if _, _, err := ParseTaskRef(args); !errors.Is(err, ErrTaskRefRequired) {
			t.Errorf("args %q: expected ErrTaskRefRequired, got %v", args, err)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantID  string
		wantErr error
	}{
		{name: "first row", raw: "1", wantID: "0192a1b2-aaaa"},
		{name: "last row", raw: "3", wantID: "7"},
		{name: "zero as id prefix", raw: "0", wantErr: ErrTaskRefAmbiguous},
		{name: "row past end", raw: "4", wantErr: ErrTaskNumRange},
		{name: "full id", raw: "0192a1b2-bbbb", wantID: "0192a1b2-bbbb"},
		{name: "unique prefix", raw: "0192a1b2-a", wantID: "0192a1b2-aaaa"},
		{name: "ambiguous prefix", raw: "0192", wantErr: ErrTaskRefAmbiguous},
		{name: "unknown id", raw: "zzz", wantErr: ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, _, err := ParseTaskRef([]string{tt.raw})
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got, err := ref.Resolve(refList)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("expected %q, got %q", tt.wantID, got.ID)
			}
		})
	}
}

func TestResolve_NumericIDs(t *testing.T) {
	l := task.List{
		{ID: "1700000000001", Text: "Legacy"},
		{ID: "0192aaaa-1", Text: "First"},
		{ID: "0193bbbb-2", Text: "Second"},
		{ID: "2", Text: "Id shadows row"},
	}

	tests := []struct {
		name    string
		raw     string
		wantID  string
		wantErr error
	}{
		{name: "legacy id", raw: "1700000000001", wantID: "1700000000001"},
		{name: "digit-only prefix", raw: "0193", wantID: "0193bbbb-2"},
		{name: "digit-only ambiguous prefix", raw: "019", wantErr: ErrTaskRefAmbiguous},
		{name: "exact id beats row", raw: "2", wantID: "2"},
		{name: "row in range", raw: "3", wantID: "0193bbbb-2"},
		{name: "nothing matches", raw: "555", wantErr: ErrTaskNumRange},
		{name: "row zero", raw: "00", wantErr: ErrTaskNumRange},
		{name: "overlong digits", raw: "99999999999999999999999", wantErr: ErrTaskNumRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, _, err := ParseTaskRef([]string{tt.raw})
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got, err := ref.Resolve(l)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("expected %q, got %q", tt.wantID, got.ID)
			}
		})
	}
}
