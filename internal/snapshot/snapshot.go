// Package snapshot encodes the task list for storage and adapts a
// key-value slot into a task.Persistence.
//
// The stored value is a JSON array of {"id","text","done"} objects. The
// format carries no version field; the key name is versioned instead, so
// an incompatible layout moves to a new key and old data is left alone.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"todo/internal/task"
)

// DefaultKey is the slot key for the current snapshot layout.
const DefaultKey = "todo.tasks.v1"

var (
	// ErrNotFound is returned by a Slot when no value exists for a key.
	ErrNotFound = errors.New("snapshot not found")

	// ErrCorrupt is returned by Decode for data that is not a valid task
	// collection.
	ErrCorrupt = errors.New("corrupt snapshot")
)

// Slot is a durable key-value store holding whole snapshots.
type Slot interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, data []byte) error
}

// Encode serializes l. A nil list encodes as an empty array.
func Encode(l task.List) ([]byte, error) {
	if l == nil {
		l = task.List{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot. Anything other than an array of tasks with
// unique non-empty ids and non-blank text is reported as ErrCorrupt.
func Decode(data []byte) (task.List, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: not a JSON array", ErrCorrupt)
	}

	var entries []entry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	list := make(task.List, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.ID == nil || *e.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrCorrupt, i)
		}
		if e.Text == nil || task.NormalizeText(*e.Text) == "" {
			return nil, fmt.Errorf("%w: entry %d has no text", ErrCorrupt, i)
		}
		if seen[*e.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrCorrupt, *e.ID)
		}
		seen[*e.ID] = true
		list = append(list, task.Task{ID: *e.ID, Text: *e.Text, Done: e.Done})
	}
	return list, nil
}

// entry mirrors task.Task with pointer fields so missing keys can be told
// apart from zero values.
type entry struct {
	ID   *string `json:"id"`
	Text *string `json:"text"`
	Done bool    `json:"done"`
}

// Persistence stores the task list in one Slot key.
type Persistence struct {
	slot   Slot
	key    string
	logger *slog.Logger
}

// NewPersistence creates a Persistence over slot. An empty key selects
// DefaultKey; a nil logger discards.
func NewPersistence(slot Slot, key string, logger *slog.Logger) *Persistence {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Persistence{slot: slot, key: key, logger: logger}
}

// Close releases the slot if it holds resources.
func (p *Persistence) Close() error {
	if c, ok := p.slot.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Key returns the slot key in use.
func (p *Persistence) Key() string { return p.key }

// Load implements task.Persistence. A missing or corrupt snapshot loads
// as an empty list.
func (p *Persistence) Load(ctx context.Context) (task.List, error) {
	data, err := p.slot.Get(ctx, p.key)
	if errors.Is(err, ErrNotFound) {
		p.logger.Debug("no snapshot stored, starting empty", "key", p.key)
		return task.List{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", p.key, err)
	}

	list, err := Decode(data)
	if err != nil {
		p.logger.Warn("discarding unreadable snapshot", "key", p.key, "error", err)
		return task.List{}, nil
	}
	p.logger.Debug("snapshot loaded", "key", p.key, "tasks", len(list))
	return list, nil
}

// Save implements task.Persistence.
func (p *Persistence) Save(ctx context.Context, l task.List) error {
	data, err := Encode(l)
	if err != nil {
		return err
	}
	if err := p.slot.Put(ctx, p.key, data); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", p.key, err)
	}
	p.logger.Debug("snapshot saved", "key", p.key, "tasks", len(l), "bytes", len(data))
	return nil
}
