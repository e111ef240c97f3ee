package favicon

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile means a download produced zero bytes. The file is removed before this is returned.
	ErrEmptyFile = errors.New("downloaded file is empty")

	// ErrNoReferences means a page was fetched but declared no icons.
	ErrNoReferences = errors.New("no favicon references in page")

	// ErrEmptyOutputPath means the template rendered to an empty path.
	ErrEmptyOutputPath = errors.New("output path template rendered empty")
)

// InputError reports a target that is not an absolute http(s) URL.
type InputError struct {
	Target string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid target %q: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("invalid target %q", e.Target)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ExhaustedError is returned once every applicable strategy has failed.
// It unwraps to the error of the last strategy tried.
type ExhaustedError struct {
	Target   string
	Attempts []Attempt
	Last     error
}

func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("no favicon found for %s: %v", e.Target, e.Last)
	}
	last := e.Attempts[len(e.Attempts)-1]
	return fmt.Sprintf("no favicon found for %s after %d attempts, last (%s): %v", e.Target, len(e.Attempts), last.Strategy, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}
