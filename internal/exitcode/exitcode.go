// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion, including operations
	// that changed nothing.
	Success = 0

	// UserError indicates bad arguments, an unknown or ambiguous task
	// reference, or an invalid config file.
	UserError = 1

	// AuthError indicates missing or rejected Google credentials.
	AuthError = 2

	// BackendError indicates a storage failure: reading or writing the
	// snapshot, or a remote API error.
	BackendError = 3
)
