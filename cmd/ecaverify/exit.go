package main

// exitError carries a specific process exit code out of a cobra
// command's RunE. main.go's Execute wrapper unwraps it; any other
// non-nil error maps to exit code 2 (spec.md §6's "<0 on a parse error"
// translated to the POSIX convention that exit codes cannot be
// negative, see SPEC_FULL.md §6).
type exitError struct{ code int }

func (e *exitError) Error() string { return "" }

// withExitCode returns err unchanged unless err is nil, in which case it
// signals that the command succeeded with exit code code rather than
// cobra's implicit 0.
func withExitCode(code int, err error) error {
	if err != nil {
		return err
	}
	return &exitError{code: code}
}
