package cli

// reportedError is an error the command has already shown to the user. It
// only sets the exit status.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}
