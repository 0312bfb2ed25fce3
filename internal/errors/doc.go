// Package errors provides error handling conventions for the rig CLI.
//
// It re-exports the wrapping helpers from github.com/cockroachdb/errors,
// defines sentinel errors for CLI failure conditions, and an ExitError type
// that carries an exit code and an optional suggestion.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (bad rig.json, missing rig package, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
//	err := rigerrors.NewUserError(cause, "Run: rig profiles")
//	var exitErr *rigerrors.ExitError
//	if rigerrors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
