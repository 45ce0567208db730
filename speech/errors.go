package speech

import (
	"errors"
	"fmt"
)

// Common errors for the speech subsystem.
var (
	// ErrNoPlayableText means playback was requested with nothing to speak.
	ErrNoPlayableText = errors.New("no text available to read aloud")
	// ErrNoVoiceAvailable means the voice catalog is empty even after the
	// full fallback chain; playback must not start silently.
	ErrNoVoiceAvailable = errors.New("no synthesis voice available")
)

// EngineError wraps an error code reported by the synthesis engine while
// speaking.
type EngineError struct {
	Code string
	Err  error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("speech engine error %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("speech engine error %s", e.Code)
}

// Unwrap returns the underlying engine error.
func (e *EngineError) Unwrap() error {
	return e.Err
}
