// Package espeak provides a speech engine backed by the espeak-ng binary.
// Each utterance runs in a fresh process; pause and resume map onto job
// control signals.
package espeak

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/docvoice/docvoice/speech"
	"github.com/docvoice/docvoice/voice"
)

// DefaultBinary is the espeak-ng executable looked up on PATH.
const DefaultBinary = "espeak-ng"

// Engine implements the speech engine interface over espeak-ng.
type Engine struct {
	binary string

	mu            sync.Mutex
	voices        []voice.Voice
	voicesChanged func()
	cmd           *exec.Cmd
	gen           uint64
}

// New creates an engine using the given binary ("" for DefaultBinary) and
// starts voice enumeration in the background. The voice list is therefore
// empty at first and arrives via the voices-changed notification, exactly
// the race catalogs must tolerate.
func New(binary string) *Engine {
	if binary == "" {
		binary = DefaultBinary
	}
	e := &Engine{binary: binary}
	go e.enumerate()
	return e
}

// Available reports whether the espeak-ng binary can be executed.
func (e *Engine) Available() bool {
	return exec.Command(e.binary, "--version").Run() == nil
}

// Voices returns the enumerated voices, which may still be empty while the
// background enumeration runs.
func (e *Engine) Voices() []voice.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.voices
}

// OnVoicesChanged registers the enumeration callback.
func (e *Engine) OnVoicesChanged(fn func()) {
	e.mu.Lock()
	e.voicesChanged = fn
	ready := len(e.voices) > 0
	e.mu.Unlock()

	// Enumeration may have already finished.
	if ready && fn != nil {
		fn()
	}
}

func (e *Engine) enumerate() {
	out, err := exec.Command(e.binary, "--voices").Output()
	if err != nil {
		log.Warn("enumerating espeak voices", "binary", e.binary, "err", err)
		return
	}

	voices := parseVoices(out)

	e.mu.Lock()
	e.voices = voices
	fn := e.voicesChanged
	e.mu.Unlock()

	log.Debug("espeak voices enumerated", "count", len(voices))
	if fn != nil {
		fn()
	}
}

// parseVoices reads `espeak-ng --voices` output. Columns are
// "Pty Language Age/Gender VoiceName File Other Languages"; the language
// column is a lower-case tag such as "en-us" or "hi".
func parseVoices(out []byte) []voice.Voice {
	var voices []voice.Voice

	lines := strings.Split(string(out), "\n")
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		voices = append(voices, voice.Voice{
			ID:     fields[3],
			Name:   fields[3],
			Locale: canonicalLocale(fields[1]),
		})
	}

	return voices
}

// canonicalLocale upper-cases the region subtag espeak reports in lower
// case, so "en-us" matches catalog lookups for "en-US".
func canonicalLocale(tag string) string {
	parts := strings.SplitN(tag, "-", 2)
	if len(parts) == 2 {
		return parts[0] + "-" + strings.ToUpper(parts[1])
	}
	return tag
}

// Speak starts a fresh espeak-ng process for the utterance. Lifecycle
// callbacks fire from the process-watching goroutine.
func (e *Engine) Speak(u speech.Utterance) error {
	// espeak-ng: -s words per minute (default 175), -p pitch 0-99
	// (default 50), -a amplitude 0-200 (default 100).
	args := []string{
		"-v", u.Voice.ID,
		"-s", fmt.Sprintf("%d", int(175*clamp(u.Rate, 0.3, 3.0))),
		"-p", fmt.Sprintf("%d", int(50*clamp(u.Pitch, 0.0, 1.98))),
		"-a", fmt.Sprintf("%d", int(100*clamp(u.Volume, 0.0, 2.0))),
		"--stdin",
	}

	cmd := exec.Command(e.binary, args...)
	cmd.Stdin = bytes.NewBufferString(u.Text)

	e.mu.Lock()
	if e.cmd != nil {
		e.mu.Unlock()
		return fmt.Errorf("an utterance is already speaking")
	}
	if err := cmd.Start(); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("starting %s: %w", e.binary, err)
	}
	e.cmd = cmd
	e.gen++
	gen := e.gen
	e.mu.Unlock()

	go e.watch(cmd, gen, u.Events)
	return nil
}

func (e *Engine) watch(cmd *exec.Cmd, gen uint64, events speech.Events) {
	if events.OnStart != nil {
		events.OnStart()
	}

	err := cmd.Wait()

	e.mu.Lock()
	stale := gen != e.gen
	if !stale {
		e.cmd = nil
	}
	e.mu.Unlock()

	if stale {
		// Cancelled; the kill's exit error is not a playback error.
		return
	}

	if err != nil {
		if events.OnError != nil {
			events.OnError(&speech.EngineError{Code: "process-exit", Err: err})
		}
		return
	}
	if events.OnEnd != nil {
		events.OnEnd()
	}
}

// Pause suspends the speaking process.
func (e *Engine) Pause() error {
	return e.signal(syscall.SIGSTOP)
}

// Resume continues a suspended process.
func (e *Engine) Resume() error {
	return e.signal(syscall.SIGCONT)
}

func (e *Engine) signal(sig syscall.Signal) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil || e.cmd.Process == nil {
		return nil
	}
	if err := e.cmd.Process.Signal(sig); err != nil {
		return fmt.Errorf("signaling %s: %w", e.binary, err)
	}
	return nil
}

// Cancel kills any in-flight utterance without firing its callbacks.
func (e *Engine) Cancel() {
	e.mu.Lock()
	cmd := e.cmd
	e.cmd = nil
	e.gen++ // the watcher sees a stale generation and stays quiet
	e.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
