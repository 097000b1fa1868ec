// Package view turns a task list into a display tree.
//
// Render is a pure function of the list and the inline editor state; it
// rebuilds the whole tree on every call. Writers in this package and in
// internal/tui and internal/output draw the tree on a concrete surface.
//
// The inline editor is a small state machine held outside the list:
//
//	Viewing --Begin--> Editing --Commit--> Viewing (text may change)
//	                           --Cancel--> Viewing (text unchanged)
//
// Only one row can be Editing because EditState names a single row.
package view
