// Package task holds the task list and the store that owns it.
package task

import "strings"

// Task represents a single to-do item.
type Task struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// List is the ordered collection of tasks, newest first.
type List []Task

// Clone returns a copy of the list that shares no backing array with l.
// A nil list clones to an empty, non-nil list.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Index returns the position of the task with the given id, or -1.
func (l List) Index(id string) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Pending returns the tasks that are not done, in their original order.
func (l List) Pending() List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if !t.Done {
			out = append(out, t)
		}
	}
	return out
}

// CompletedCount returns the number of done tasks.
func (l List) CompletedCount() int {
	n := 0
	for _, t := range l {
		if t.Done {
			n++
		}
	}
	return n
}

// NormalizeText trims surrounding whitespace from task text. An empty
// result means the text is not storable.
func NormalizeText(raw string) string {
	return strings.TrimSpace(raw)
}
