package view

// EditState is the transient inline editor state: either no row is
// being edited, or exactly one row is with its current draft text.
// The zero value is Viewing.
type EditState struct {
	rowID  string
	draft  string
	active bool
}

// NoEdit returns the Viewing state.
func NoEdit() EditState { return EditState{} }

// Begin starts editing row id, pre-filled with text. Any edit already
// in progress is abandoned.
func (e EditState) Begin(id, text string) EditState {
	return EditState{rowID: id, draft: text, active: true}
}

// Editing returns the row being edited.
func (e EditState) Editing() (string, bool) {
	return e.rowID, e.active
}

// Draft returns the editor's current text.
func (e EditState) Draft() string { return e.draft }

// WithDraft replaces the draft text. It is a no-op while Viewing.
func (e EditState) WithDraft(text string) EditState {
	if !e.active {
		return e
	}
	e.draft = text
	return e
}

// Commit ends the edit and returns the row and draft to apply. ok is
// false when nothing was being edited.
func (e EditState) Commit() (id, text string, ok bool) {
	return e.rowID, e.draft, e.active
}

// Cancel ends the edit without applying it.
func (e EditState) Cancel() EditState { return NoEdit() }
