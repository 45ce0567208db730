package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docvoice/docvoice/page"
	"github.com/docvoice/docvoice/speech/mock"
	"github.com/docvoice/docvoice/translate"
	"github.com/docvoice/docvoice/voice"
)

func testConfig() Config {
	return Config{
		BaseURL:        "http://localhost:8000",
		PagePath:       "/pdfs/1/",
		GlamourEnabled: false,
		SpeechRate:     1.0,
		SpeechPitch:    1.0,
		SpeechVolume:   1.0,
	}
}

func newTestModel(t *testing.T, cfg Config, content string) *Model {
	t.Helper()
	engine := mock.New(voice.Voice{ID: "us", Locale: "en-US"})
	m, err := NewModel(cfg, content, "", engine, func(string) (string, error) {
		return "reloaded", nil
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

// TestLanguageCycling tests selector movement through the supported set,
// including wrap-around.
func TestLanguageCycling(t *testing.T) {
	m := newTestModel(t, testConfig(), "# doc")
	total := len(voice.Supported())

	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if m.langIndex != 1 {
		t.Errorf("langIndex after right = %d, want 1", m.langIndex)
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	if m.langIndex != total-1 {
		t.Errorf("langIndex after wrap = %d, want %d", m.langIndex, total-1)
	}
}

// TestTranslatePendingGuard tests that a second enter while a translation
// runs only produces a notice.
func TestTranslatePendingGuard(t *testing.T) {
	m := newTestModel(t, testConfig(), "# doc")

	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no translation command")
	}
	if !m.pending {
		t.Fatal("model not marked pending")
	}

	_, cmd = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("second enter produced a command while pending")
	}
	if _, _, _, notice := m.view.renderState(); notice == "" {
		t.Error("no notice shown for the rejected gesture")
	}
}

// TestTranslationDoneTriggersReload tests that a recorded reload target
// turns into a document fetch.
func TestTranslationDoneTriggersReload(t *testing.T) {
	m := newTestModel(t, testConfig(), "# doc")
	m.pending = true
	m.view.Reload("/pdfs/1/?translated=true&lang=fr")

	_, cmd := m.Update(translationDoneMsg{lang: "fr"})
	if cmd == nil {
		t.Fatal("no fetch command issued")
	}

	msg := cmd()
	doc, ok := msg.(documentMsg)
	if !ok {
		t.Fatalf("fetch produced %T, want documentMsg", msg)
	}
	if doc.markup != "reloaded" {
		t.Errorf("fetched markup = %q", doc.markup)
	}

	m.Update(doc)
	if got := m.view.Content(); got != "reloaded" {
		t.Errorf("content after reload = %q", got)
	}
}

// TestReloadRendersTranslationIndicator tests that a page swapped in after
// a successful translation renders the persistent "Translated to" indicator
// with its restore hint, exactly like a fresh load of the redirect URL.
func TestReloadRendersTranslationIndicator(t *testing.T) {
	m := newTestModel(t, testConfig(), "# doc")
	m.pending = true
	m.view.Reload("/pdfs/1/?translated=true&lang=fr")

	_, cmd := m.Update(translationDoneMsg{lang: "fr"})
	if cmd == nil {
		t.Fatal("no fetch command issued")
	}
	m.Update(cmd())

	if got := m.ctrl.Language(); got != "fr" {
		t.Errorf("language after reload = %q, want %q", got, "fr")
	}
	if want := indexOfLang("fr"); m.langIndex != want {
		t.Errorf("langIndex after reload = %d, want %d", m.langIndex, want)
	}

	out := m.View()
	if !strings.Contains(out, "Translated to French") {
		t.Error("persistent indicator missing from rendered view")
	}
	if !strings.Contains(out, "restore") {
		t.Error("restore hint missing from rendered view")
	}
}

// TestViewShowsBannerAndContent tests that banner text never displaces
// the content region.
func TestViewShowsBannerAndContent(t *testing.T) {
	m := newTestModel(t, testConfig(), "plain document text")
	m.view.ShowBanner(page.Banner{Kind: translate.Timeout, Message: "Translation to French timed out."})

	out := m.View()
	if !strings.Contains(out, "timed out") {
		t.Error("banner missing from view")
	}
	if !strings.Contains(out, "plain document text") {
		t.Error("content missing beneath banner")
	}
	if !strings.Contains(out, "restore") {
		t.Error("restore affordance missing")
	}
}

// TestQuitStopsPlayback tests that quitting cancels any speech first.
func TestQuitStopsPlayback(t *testing.T) {
	m := newTestModel(t, testConfig(), "some text to read")

	if err := m.ctrl.ReadAloud(); err != nil {
		t.Fatalf("ReadAloud: %v", err)
	}

	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("quit produced no command")
	}
	if got := m.player.State().String(); got != "idle" {
		t.Errorf("player state after quit = %s, want idle", got)
	}
}
