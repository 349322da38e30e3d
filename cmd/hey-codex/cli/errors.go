package cli

// SilentError wraps an error whose message has already been shown to the
// user. main exits non-zero without printing it again.
type SilentError struct {
	Err error
}

// NewSilentError wraps err as a SilentError.
func NewSilentError(err error) *SilentError {
	return &SilentError{Err: err}
}

func (e *SilentError) Error() string {
	return e.Err.Error()
}

func (e *SilentError) Unwrap() error {
	return e.Err
}
