// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"todo/internal/snapshot"
	"todo/internal/task"
)

// FakePersistence is an in-memory task.Persistence for testing.
type FakePersistence struct {
	mu    sync.Mutex
	list  task.List
	saves int

	// Error injection for testing
	LoadErr error
	SaveErr error
}

// NewFakePersistence creates an empty FakePersistence.
func NewFakePersistence() *FakePersistence {
	return &FakePersistence{list: task.List{}}
}

// Set replaces the stored list without counting a save.
func (f *FakePersistence) Set(l task.List) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = l.Clone()
}

// Current returns the last saved list.
func (f *FakePersistence) Current() task.List {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list.Clone()
}

// Saves returns the number of successful Save calls.
func (f *FakePersistence) Saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

// Load implements task.Persistence.
func (f *FakePersistence) Load(ctx context.Context) (task.List, error) {
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	return f.Current(), nil
}

// Save implements task.Persistence.
func (f *FakePersistence) Save(ctx context.Context, l task.List) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = l.Clone()
	f.saves++
	return nil
}

// FakeSlot is an in-memory snapshot.Slot for testing.
type FakeSlot struct {
	mu     sync.Mutex
	values map[string][]byte

	// Error injection for testing
	GetErr error
	PutErr error
}

// NewFakeSlot creates an empty FakeSlot.
func NewFakeSlot() *FakeSlot {
	return &FakeSlot{values: make(map[string][]byte)}
}

// Get implements snapshot.Slot.
func (f *FakeSlot) Get(ctx context.Context, key string) ([]byte, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.values[key]
	if !ok {
		return nil, snapshot.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Put implements snapshot.Slot.
func (f *FakeSlot) Put(ctx context.Context, key string, data []byte) error {
	if f.PutErr != nil {
		return f.PutErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = append([]byte(nil), data...)
	return nil
}

// Raw returns the bytes stored under key.
func (f *FakeSlot) Raw(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.values[key]
	return data, ok
}
