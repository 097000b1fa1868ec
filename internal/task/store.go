package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// ClearAllPrompt is the question put to the user before ClearAll wipes
// the list.
const ClearAllPrompt = "Clear ALL tasks?"

// Persistence loads and saves full snapshots of the list.
// Implementations live under internal/snapshot and internal/backend.
type Persistence interface {
	// Load returns the stored list. A missing or unreadable snapshot
	// yields an empty list; only I/O failures are returned as errors.
	Load(ctx context.Context) (List, error)

	// Save overwrites the stored snapshot with l.
	Save(ctx context.Context, l List) error
}

// ConfirmFunc asks the user a yes/no question and reports the answer.
type ConfirmFunc func(prompt string) bool

// Store owns the task list. Every change is saved and then announced to
// subscribers, in that order, before the mutating call returns.
//
// Store is not safe for concurrent use. Callers drive it from a single
// event loop.
type Store struct {
	tasks       List
	persistence Persistence
	logger      *slog.Logger
	newID       func() string
	subscribers []func(List)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces the UUIDv7 id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore creates an empty store bound to p. Call Init to seed it.
func NewStore(p Persistence, opts ...Option) *Store {
	s := &Store{
		tasks:       List{},
		persistence: p,
		logger:      slog.New(slog.DiscardHandler),
		newID:       newUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the stored list from p and returns a store initialized
// with it.
func Open(ctx context.Context, p Persistence, opts ...Option) (*Store, error) {
	s := NewStore(p, opts...)
	loaded, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	s.Init(loaded)
	return s, nil
}

// SetLogger replaces the logger. Nil is ignored.
func (s *Store) SetLogger(logger *slog.Logger) {
	WithLogger(logger)(s)
}

// Init replaces the in-memory list without saving it.
func (s *Store) Init(l List) {
	s.tasks = l.Clone()
}

// Subscribe registers fn to receive the full list after every operation.
func (s *Store) Subscribe(fn func(List)) {
	s.subscribers = append(s.subscribers, fn)
}

// Tasks returns a copy of the current list.
func (s *Store) Tasks() List {
	return s.tasks.Clone()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Find returns the task with the given id.
func (s *Store) Find(id string) (Task, bool) {
	i := s.tasks.Index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Add prepends a new task with the trimmed text. Blank text is ignored
// and reported with ok=false.
func (s *Store) Add(ctx context.Context, rawText string) (Task, bool, error) {
	text := NormalizeText(rawText)
	if text == "" {
		s.notify()
		return Task{}, false, nil
	}

	t := Task{ID: s.uniqueID(), Text: text}
	next := make(List, 0, len(s.tasks)+1)
	next = append(next, t)
	next = append(next, s.tasks...)
	return t, true, s.commit(ctx, next)
}

// Remove deletes the task with the given id. Unknown ids are ignored.
func (s *Store) Remove(ctx context.Context, id string) error {
	i := s.tasks.Index(id)
	if i < 0 {
		s.notify()
		return nil
	}
	next := make(List, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	return s.commit(ctx, next)
}

// ToggleDone flips the completion flag of the task with the given id.
func (s *Store) ToggleDone(ctx context.Context, id string) error {
	return s.replace(ctx, id, func(t Task) (Task, bool) {
		t.Done = !t.Done
		return t, true
	})
}

// Edit replaces the text of the task with the given id. Blank text
// leaves the task unchanged.
func (s *Store) Edit(ctx context.Context, id, newText string) error {
	text := NormalizeText(newText)
	return s.replace(ctx, id, func(t Task) (Task, bool) {
		if text == "" || text == t.Text {
			return t, false
		}
		t.Text = text
		return t, true
	})
}

// ClearCompleted removes every done task and returns how many went.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	next := s.tasks.Pending()
	removed := len(s.tasks) - len(next)
	if removed == 0 {
		s.notify()
		return 0, nil
	}
	return removed, s.commit(ctx, next)
}

// ClearAll removes every task, but only when confirm answers yes to
// ClearAllPrompt. A nil confirm never clears.
func (s *Store) ClearAll(ctx context.Context, confirm ConfirmFunc) (bool, error) {
	if confirm == nil || !confirm(ClearAllPrompt) {
		s.notify()
		return false, nil
	}
	return true, s.commit(ctx, List{})
}

func (s *Store) replace(ctx context.Context, id string, fn func(Task) (Task, bool)) error {
	i := s.tasks.Index(id)
	if i < 0 {
		s.notify()
		return nil
	}
	updated, changed := fn(s.tasks[i])
	if !changed {
		s.notify()
		return nil
	}
	next := s.tasks.Clone()
	next[i] = updated
	return s.commit(ctx, next)
}

// commit installs next, saves it and notifies subscribers. The new list
// stays in place even if the save fails.
func (s *Store) commit(ctx context.Context, next List) error {
	s.tasks = next

	var saveErr error
	if s.persistence != nil {
		if err := s.persistence.Save(ctx, s.tasks.Clone()); err != nil {
			s.logger.Warn("saving tasks failed", "error", err, "tasks", len(s.tasks))
			saveErr = fmt.Errorf("saving tasks: %w", err)
		}
	}

	s.notify()
	return saveErr
}

func (s *Store) notify() {
	for _, fn := range s.subscribers {
		fn(s.tasks.Clone())
	}
}

func (s *Store) uniqueID() string {
	gen := s.newID
	for attempt := 0; ; attempt++ {
		if attempt == maxIDAttempts {
			gen = newUUID
		}
		id := gen()
		if id != "" && s.tasks.Index(id) < 0 {
			return id
		}
		s.logger.Debug("regenerating colliding task id", "id", id, "attempt", attempt)
	}
}

const maxIDAttempts = 8

// newUUID returns a UUIDv7 string. Version 7 ids are time ordered and
// the generator keeps them strictly increasing within a process.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
