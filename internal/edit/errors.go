package edit

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRange means the skip margins consume the whole video
	ErrEmptyRange = errors.New("usable range is empty")
	// ErrNoScenes means there is nothing to build an edit list from
	ErrNoScenes = errors.New("no scenes")
)

// ConfigError reports an invalid option or a degenerate input
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Err: fmt.Errorf(format, args...)}
}

// DetectionError reports a failure of the shot-boundary detector
type DetectionError struct {
	Input string
	Err   error
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("detection error: %s: %v", e.Input, e.Err)
}

func (e *DetectionError) Unwrap() error { return e.Err }

// RenderError reports a failure while encoding or muxing the output
type RenderError struct {
	Output string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error: %s: %v", e.Output, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
