// Package mock provides a mock speech engine for testing.
package mock

import (
	"sync"

	"github.com/docvoice/docvoice/speech"
	"github.com/docvoice/docvoice/voice"
)

// Engine implements the speech engine interface for testing. Utterances do
// not complete on their own: tests drive the lifecycle explicitly through
// FinishUtterance and FailUtterance.
type Engine struct {
	mu sync.Mutex

	voices        []voice.Voice
	voicesChanged func()

	current    *speech.Utterance
	spoken     []speech.Utterance
	speakErr   error
	pauseErr   error
	resumeErr  error
	pauseCount int
	cancels    int
}

// New creates a mock engine offering the given voices.
func New(voices ...voice.Voice) *Engine {
	return &Engine{voices: voices}
}

// Voices returns the configured voice list.
func (e *Engine) Voices() []voice.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.voices
}

// OnVoicesChanged registers the voices-changed callback.
func (e *Engine) OnVoicesChanged(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.voicesChanged = fn
}

// Speak records the utterance and keeps it in flight until the test
// finishes or fails it.
func (e *Engine) Speak(u speech.Utterance) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.speakErr != nil {
		return e.speakErr
	}

	e.current = &u
	e.spoken = append(e.spoken, u)
	return nil
}

// Pause records a pause request.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pauseErr != nil {
		return e.pauseErr
	}
	e.pauseCount++
	return nil
}

// Resume records a resume request.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resumeErr
}

// Cancel discards the in-flight utterance without firing its callbacks.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = nil
	e.cancels++
}

// Test control methods

// SetVoices replaces the voice list and fires the voices-changed callback,
// simulating the platform's asynchronous enumeration.
func (e *Engine) SetVoices(voices ...voice.Voice) {
	e.mu.Lock()
	e.voices = voices
	fn := e.voicesChanged
	e.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// SetSpeakError makes subsequent Speak calls fail with err.
func (e *Engine) SetSpeakError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.speakErr = err
}

// SetPauseError makes subsequent Pause calls fail with err.
func (e *Engine) SetPauseError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pauseErr = err
}

// FinishUtterance completes the in-flight utterance, firing its OnEnd.
func (e *Engine) FinishUtterance() {
	e.mu.Lock()
	u := e.current
	e.current = nil
	e.mu.Unlock()

	if u != nil && u.Events.OnEnd != nil {
		u.Events.OnEnd()
	}
}

// FailUtterance aborts the in-flight utterance with an engine error code,
// firing its OnError.
func (e *Engine) FailUtterance(code string) {
	e.mu.Lock()
	u := e.current
	e.current = nil
	e.mu.Unlock()

	if u != nil && u.Events.OnError != nil {
		u.Events.OnError(&speech.EngineError{Code: code})
	}
}

// Current returns the in-flight utterance, if any.
func (e *Engine) Current() *speech.Utterance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Spoken returns every utterance handed to Speak.
func (e *Engine) Spoken() []speech.Utterance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spoken
}

// Cancels returns how many times Cancel was called.
func (e *Engine) Cancels() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancels
}

// PauseCount returns how many times Pause succeeded.
func (e *Engine) PauseCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pauseCount
}
