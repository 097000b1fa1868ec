package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"todo/internal/exitcode"
	"todo/internal/task"
)

// TaskRef is a parsed task reference: a 1-based row number in list
// order, or a task id or id prefix.
type TaskRef struct {
	Num int    // row number, 0 if Raw is not all digits
	Raw string // the reference as typed
}

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrTaskNotFound indicates no task matches an id reference.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskRefAmbiguous indicates an id prefix matches several tasks.
	ErrTaskRefAmbiguous = errors.New("ambiguous task reference")

	// ErrTaskNumRange indicates a row number outside the list.
	ErrTaskNumRange = errors.New("task number out of range")
)

// ParseTaskRef parses the task reference from the first argument and
// returns the remaining arguments.
//
// All-digit references carry a row number, but may still name an id or
// id prefix; Resolve decides.
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, nil, ErrTaskRefRequired
	}
	raw := strings.TrimSpace(args[0])
	rest := args[1:]

	if isAllDigits(raw) {
		// Overlong digit strings can only be ids.
		num, err := strconv.Atoi(raw)
		if err != nil {
			num = 0
		}
		return TaskRef{Num: num, Raw: raw}, rest, nil
	}
	return TaskRef{Raw: raw}, rest, nil
}

// Resolve finds the task ref points at in l. An exact id wins, then an
// in-range row number, then a unique id prefix. All-digit references
// that match nothing report ErrTaskNumRange.
func (ref TaskRef) Resolve(l task.List) (task.Task, error) {
	if i := l.Index(ref.Raw); i >= 0 {
		return l[i], nil
	}
	if ref.Num >= 1 && ref.Num <= len(l) {
		return l[ref.Num-1], nil
	}

	var match task.Task
	matches := 0
	for _, t := range l {
		if strings.HasPrefix(t.ID, ref.Raw) {
			match = t
			matches++
		}
	}
	switch {
	case matches == 1:
		return match, nil
	case matches > 1:
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskRefAmbiguous, ref.Raw)
	case isAllDigits(ref.Raw):
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNumRange, ref.Raw)
	default:
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref.Raw)
	}
}

// resolveArgs parses and resolves the reference in args for commands
// that need an existing task. On failure it reports the error and
// returns the exit code.
func resolveArgs(store *task.Store, args []string, errOut io.Writer) (task.Task, []string, int) {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, nil, exitcode.UserError
	}
	t, err := ref.Resolve(store.Tasks())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, nil, exitcode.UserError
	}
	return t, rest, exitcode.Success
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
