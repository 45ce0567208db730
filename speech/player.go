package speech

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/docvoice/docvoice/voice"
)

// Player owns the mutually-exclusive playback affordances and drives the
// synthesis engine. All transitions go through one state machine, and at
// most one utterance exists at a time: a Play while something is already
// active is a no-op, never a restart.
type Player struct {
	engine  Engine
	catalog *voice.Catalog
	prosody Prosody

	mu      sync.Mutex
	machine *StateMachine
	gen     uint64 // invalidates lifecycle callbacks of superseded utterances

	onState func(State)
	onError func(error)
}

// NewPlayer creates a player for the given engine. The voice catalog is
// built over the engine's own enumeration and refreshed whenever the
// engine announces a recomputed voice list.
func NewPlayer(engine Engine, prosody Prosody) *Player {
	p := &Player{
		engine:  engine,
		catalog: voice.NewCatalog(engine),
		prosody: prosody,
		machine: NewStateMachine(),
	}
	engine.OnVoicesChanged(func() {
		voices := p.catalog.Refresh()
		log.Debug("voice catalog refreshed", "voices", len(voices))
	})
	return p
}

// Catalog exposes the player's voice catalog.
func (p *Player) Catalog() *voice.Catalog {
	return p.catalog
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.machine.Current()
}

// OnStateChange registers a callback invoked after every state change.
func (p *Player) OnStateChange(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onState = fn
}

// OnError registers a callback for engine-reported playback errors.
func (p *Player) OnError(fn func(error)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onError = fn
}

// Play starts speaking text in a voice resolved for the given language.
// Preconditions are checked before any transition: empty text returns
// ErrNoPlayableText, and an empty catalog after the full fallback chain
// returns ErrNoVoiceAvailable rather than starting mute playback. If an
// utterance is already active the call is a no-op.
func (p *Player) Play(text, lang string) error {
	p.mu.Lock()

	if p.machine.Current() != Idle {
		p.mu.Unlock()
		log.Debug("play ignored, utterance already active", "state", p.machine.Current())
		return nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		p.mu.Unlock()
		return ErrNoPlayableText
	}

	v, ok := voice.Resolve(lang, p.catalog.Voices())
	if !ok {
		p.mu.Unlock()
		return ErrNoVoiceAvailable
	}

	p.gen++
	gen := p.gen

	u := Utterance{
		Text:   text,
		Voice:  v,
		Rate:   p.prosody.Rate,
		Pitch:  p.prosody.Pitch,
		Volume: p.prosody.Volume,
		Events: Events{
			OnEnd:   func() { p.finish(gen, nil) },
			OnError: func(err error) { p.finish(gen, err) },
		},
	}

	p.machine.Transition(Speaking)

	if err := p.engine.Speak(u); err != nil {
		p.machine.Transition(Idle)
		p.mu.Unlock()
		return fmt.Errorf("starting speech: %w", err)
	}

	log.Debug("speaking", "language", lang, "voice", v.Locale, "chars", len(text))
	notify := p.onState
	p.mu.Unlock()

	if notify != nil {
		notify(Speaking)
	}
	return nil
}

// Pause suspends the in-flight utterance. No-op unless Speaking.
func (p *Player) Pause() error {
	p.mu.Lock()

	if p.machine.Current() != Speaking {
		p.mu.Unlock()
		return nil
	}

	if err := p.engine.Pause(); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("pausing speech: %w", err)
	}

	p.machine.Transition(Paused)
	notify := p.onState
	p.mu.Unlock()

	if notify != nil {
		notify(Paused)
	}
	return nil
}

// Resume continues a paused utterance. No-op unless Paused.
func (p *Player) Resume() error {
	p.mu.Lock()

	if p.machine.Current() != Paused {
		p.mu.Unlock()
		return nil
	}

	if err := p.engine.Resume(); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("resuming speech: %w", err)
	}

	p.machine.Transition(Speaking)
	notify := p.onState
	p.mu.Unlock()

	if notify != nil {
		notify(Speaking)
	}
	return nil
}

// Stop cancels any in-flight utterance and returns to Idle. Safe from any
// state, including Idle, and idempotent: the engine is always told to
// cancel, and affordances reset the same way regardless of prior state.
func (p *Player) Stop() {
	p.mu.Lock()

	p.gen++ // late lifecycle events from the cancelled utterance are stale now
	wasActive := p.machine.Current() != Idle
	if wasActive {
		p.machine.Transition(Idle)
	}
	notify := p.onState
	p.mu.Unlock()

	p.engine.Cancel()

	if wasActive && notify != nil {
		notify(Idle)
	}
}

// finish handles end-of-utterance and engine-error signals. Both reset to
// Idle through the identical path; an error only adds a surfaced message.
func (p *Player) finish(gen uint64, err error) {
	p.mu.Lock()

	if gen != p.gen || p.machine.Current() == Idle {
		// A stop or a newer utterance superseded this event.
		p.mu.Unlock()
		return
	}

	p.machine.Transition(Idle)
	notifyState := p.onState
	notifyError := p.onError
	p.mu.Unlock()

	if err != nil {
		log.Warn("speech engine reported an error", "err", err)
		if notifyError != nil {
			notifyError(err)
		}
	}
	if notifyState != nil {
		notifyState(Idle)
	}
}
