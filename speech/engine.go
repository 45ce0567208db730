// Package speech drives a synthesis engine through the read-aloud playback
// lifecycle, keeping play, pause, resume and stop affordances consistent
// with an explicit state machine.
package speech

import "github.com/docvoice/docvoice/voice"

// Engine is the synthesis surface the player consumes. Implementations
// wrap a platform speech engine: voice enumeration may be asynchronous and
// initially empty, and utterance lifecycle events arrive on the engine's
// own schedule.
type Engine interface {
	// Voices enumerates the currently available voices. May legitimately
	// return nothing early in the engine's life.
	Voices() []voice.Voice

	// OnVoicesChanged registers a callback fired whenever the engine
	// recomputes its voice list.
	OnVoicesChanged(fn func())

	// Speak starts synthesizing the utterance. Lifecycle events are
	// delivered through the utterance's Events callbacks; they must not be
	// invoked synchronously from within Speak, Pause, Resume or Cancel.
	Speak(u Utterance) error

	// Pause temporarily stops the in-flight utterance.
	Pause() error

	// Resume continues a paused utterance.
	Resume() error

	// Cancel discards any in-flight utterance. Safe to call when nothing
	// is speaking.
	Cancel()
}

// Utterance is one unit of speech: text, a resolved voice, and prosody.
type Utterance struct {
	Text   string
	Voice  voice.Voice
	Rate   float64 // Speech rate multiplier (1.0 = normal)
	Pitch  float64 // Pitch adjustment (1.0 = normal)
	Volume float64 // Volume level (0.0 to 1.0)

	Events Events
}

// Events carries the lifecycle callbacks for one utterance. Any callback
// may be nil.
type Events struct {
	OnStart func()
	OnEnd   func()
	OnError func(err error)
}

// Prosody holds the speech parameters applied to every utterance.
type Prosody struct {
	Rate   float64
	Pitch  float64
	Volume float64
}

// DefaultProsody returns neutral speech parameters.
func DefaultProsody() Prosody {
	return Prosody{Rate: 1.0, Pitch: 1.0, Volume: 1.0}
}
