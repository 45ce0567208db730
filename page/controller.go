package page

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/microcosm-cc/bluemonday"

	"github.com/docvoice/docvoice/speech"
	"github.com/docvoice/docvoice/translate"
	"github.com/docvoice/docvoice/voice"
)

// Query parameters a post-translation redirect carries.
const (
	translatedParam = "translated"
	langParam       = "lang"
)

// originalLang is the language documents are stored in before any
// translation; restoring the snapshot returns the page to it.
const originalLang = "en"

// ErrTranslationPending is returned when a language change is requested
// while an earlier one is still in flight.
var ErrTranslationPending = errors.New("a translation request is already in flight")

// Translator classifies a translation request into an outcome.
type Translator interface {
	Translate(ctx context.Context, text, lang string) translate.Outcome
}

// PreferenceRecorder records the selected language best-effort.
type PreferenceRecorder interface {
	Update(ctx context.Context, lang string)
}

// Controller is the per-page orchestrator. It is created on page ready,
// captures the one content snapshot before anything else mutates the view,
// and owns the language-change and read-aloud flows for the page's
// lifetime.
type Controller struct {
	view       View
	translator Translator
	prefs      PreferenceRecorder
	player     *speech.Player

	pageURL  *url.URL
	snapshot string
	textOnly *bluemonday.Policy

	mu   sync.Mutex
	busy bool
	lang string
}

// New creates the controller for the page at rawURL. The content snapshot
// is captured immediately, preferring the server-provided cached snapshot
// over the live content region, and the URL is inspected for the
// post-translation redirect marker.
func New(rawURL string, view View, translator Translator, prefs PreferenceRecorder, player *speech.Player) (*Controller, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		view:       view,
		translator: translator,
		prefs:      prefs,
		player:     player,
		pageURL:    pageURL,
		textOnly:   bluemonday.StrictPolicy(),
		lang:       originalLang,
	}

	// Exactly one snapshot per page lifetime, taken before any mutation.
	c.snapshot = view.CachedSnapshot()
	if c.snapshot == "" {
		c.snapshot = view.Content()
	}

	c.inspectURL()

	if player != nil {
		player.OnError(func(err error) {
			view.Notify(playbackNotice(err))
		})
	}

	return c, nil
}

// inspectURL renders the persistent "translated to" indicator when the
// page was itself loaded from a successful translation redirect. It never
// triggers a translation.
func (c *Controller) inspectURL() {
	c.mu.Lock()
	q := c.pageURL.Query()
	if !isTruthy(q.Get(translatedParam)) {
		c.mu.Unlock()
		return
	}
	lang := q.Get(langParam)
	if lang == "" {
		c.mu.Unlock()
		return
	}
	c.lang = lang
	c.mu.Unlock()

	c.view.ShowIndicator(indicatorFor(lang))
	log.Debug("page loaded from translation redirect", "language", lang)
}

// PageLoaded records a navigation to rawURL and re-runs the redirect
// inspection, so a page swapped in after a successful translation renders
// the persistent indicator just like a fresh load would.
func (c *Controller) PageLoaded(rawURL string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		log.Warn("ignoring unparsable page url", "url", rawURL, "err", err)
		return
	}

	c.mu.Lock()
	c.pageURL = u
	c.mu.Unlock()

	c.inspectURL()
}

// Snapshot returns the pristine content captured at page ready.
func (c *Controller) Snapshot() string {
	return c.snapshot
}

// Language returns the presently selected language code.
func (c *Controller) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang
}

// ChangeLanguage runs one translation gesture: the preference write-through
// fires concurrently and unordered, the translation request runs to an
// outcome, and the outcome is rendered. A second gesture while one is in
// flight is rejected with ErrTranslationPending.
func (c *Controller) ChangeLanguage(ctx context.Context, lang string) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrTranslationPending
	}
	c.busy = true
	c.lang = lang
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	// Best-effort intent telemetry; completion and failure are both
	// invisible to the translation flow.
	go c.prefs.Update(ctx, lang)

	c.view.Notify("Translating to " + voice.DisplayName(lang) + "…")

	out := c.translator.Translate(ctx, c.SpeakableText(), lang)
	c.handleOutcome(out, lang)
	return nil
}

// handleOutcome renders exactly one of the four outcome variants. Only the
// success path leaves this page; every other variant keeps the current
// content visible and offers restoration.
func (c *Controller) handleOutcome(out translate.Outcome, lang string) {
	switch out.Kind {
	case translate.Success:
		// The server is the source of truth for translated markup; reload
		// with the redirect marker instead of patching the view here.
		c.mu.Lock()
		target := *c.pageURL
		c.mu.Unlock()
		q := target.Query()
		q.Set(translatedParam, "true")
		q.Set(langParam, lang)
		target.RawQuery = q.Encode()
		c.view.Reload(target.String())

	default:
		log.Warn("translation did not complete", "kind", out.Kind, "language", lang, "message", out.Message)
		c.view.ShowBanner(bannerFor(out, lang))
	}
}

// Restore replaces the content region with the pristine snapshot and
// clears the banner and the translation indicator. The snapshot holds the
// untranslated original, so the language selection falls back to the
// original's language and read-aloud does not keep a translated voice.
func (c *Controller) Restore() {
	c.mu.Lock()
	c.lang = originalLang
	c.mu.Unlock()

	c.view.SetContent(c.snapshot)
	c.view.ClearBanner()
	c.view.ClearIndicator()
}

// SpeakableText returns the text used for translation and read-aloud: the
// cached snapshot field when present, else the live content region, with
// markup stripped to plain text.
func (c *Controller) SpeakableText() string {
	markup := c.view.CachedSnapshot()
	if markup == "" {
		markup = c.view.Content()
	}
	return strings.TrimSpace(c.textOnly.Sanitize(markup))
}

// ReadAloud starts read-aloud playback of the page text in the presently
// selected language. Precondition failures surface as a user notice, not
// a silent no-op.
func (c *Controller) ReadAloud() error {
	err := c.player.Play(c.SpeakableText(), c.Language())
	if err != nil {
		c.view.Notify(playbackNotice(err))
	}
	return err
}

// PauseReading suspends playback.
func (c *Controller) PauseReading() error {
	return c.player.Pause()
}

// ResumeReading continues paused playback.
func (c *Controller) ResumeReading() error {
	return c.player.Resume()
}

// StopReading cancels playback. Safe from any state.
func (c *Controller) StopReading() {
	c.player.Stop()
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
