package ports

import (
	"errors"
	"fmt"
	"io/fs"
)

// ProbeError reports that a provider could not produce data for a media
// source: missing file, decode failure, or timeout. Selection logic treats it
// as "method inapplicable", never as a fatal error.
type ProbeError struct {
	Op    string // e.g. "keyframes", "duration"
	Media string
	Err   error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s %q: %v", e.Op, e.Media, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// NewProbeError wraps err as a ProbeError for the given operation.
func NewProbeError(op, media string, err error) *ProbeError {
	return &ProbeError{Op: op, Media: media, Err: err}
}

// IsProbeError reports whether err is (or wraps) a ProbeError.
func IsProbeError(err error) bool {
	var pe *ProbeError
	return errors.As(err, &pe)
}

// IsNotFound reports whether err stems from a missing media file.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
