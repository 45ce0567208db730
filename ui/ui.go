// Package ui provides the terminal front end for the document page:
// content rendering, the language selector, and the read-aloud controls.
package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/wordwrap"

	"github.com/docvoice/docvoice/page"
	"github.com/docvoice/docvoice/speech"
	"github.com/docvoice/docvoice/translate"
	"github.com/docvoice/docvoice/voice"
)

var (
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	indicatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Bold(true)
	bannerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("178")).Italic(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model is the Bubble Tea model for a single document page.
type Model struct {
	cfg    Config
	ctrl   *page.Controller
	player *speech.Player
	view   *pageView
	fetch  func(target string) (string, error)

	langIndex int
	width     int
	pending   bool
	quitting  bool
}

// NewModel builds the page model and everything underneath it: the view,
// the speech player over the given engine, the translation client, and the
// page controller.
func NewModel(cfg Config, content, cached string, engine speech.Engine, fetch func(string) (string, error)) (*Model, error) {
	view := newPageView(content, cached)
	player := speech.NewPlayer(engine, speech.Prosody{
		Rate:   cfg.SpeechRate,
		Pitch:  cfg.SpeechPitch,
		Volume: cfg.SpeechVolume,
	})

	client := translate.NewClient(cfg.BaseURL, cfg.PagePath, cfg.CSRFToken, nil)
	prefs := translate.NewPreferenceWriter(cfg.BaseURL, cfg.CSRFToken, nil)

	ctrl, err := page.New(cfg.PagePath, view, client, prefs, player)
	if err != nil {
		return nil, fmt.Errorf("building page controller: %w", err)
	}

	m := &Model{
		cfg:    cfg,
		ctrl:   ctrl,
		player: player,
		view:   view,
		fetch:  fetch,
	}
	m.langIndex = indexOfLang(ctrl.Language())
	return m, nil
}

func indexOfLang(lang string) int {
	for i, code := range voice.Supported() {
		if code == lang {
			return i
		}
	}
	return 0
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.cfg.Language != "" && m.cfg.Language != m.ctrl.Language() {
		m.pending = true
		m.langIndex = indexOfLang(m.cfg.Language)
		return tea.Batch(tickCmd(), m.translateCmd(m.cfg.Language))
	}
	return tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case translationDoneMsg:
		m.pending = false
		if msg.err != nil {
			m.view.Notify(msg.err.Error())
			return m, nil
		}
		if target := m.view.takeReload(); target != "" {
			return m, m.fetchCmd(target)
		}
		return m, nil

	case documentMsg:
		if msg.err != nil {
			log.Warn("reloading document", "err", msg.err)
			m.view.Notify("Could not reload the translated document.")
			return m, nil
		}
		m.view.SetContent(msg.markup)
		m.view.Notify("")
		// The swapped-in page counts as a load from the translation
		// redirect, so the persistent indicator is rendered here too.
		m.ctrl.PageLoaded(msg.target)
		m.langIndex = indexOfLang(m.ctrl.Language())
		return m, nil

	case tickMsg:
		// Re-render so engine-driven state changes become visible.
		return m, tickCmd()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.player.Stop()
		m.quitting = true
		return m, tea.Quit

	case "p":
		if m.player.State() == speech.Paused {
			if err := m.ctrl.ResumeReading(); err != nil {
				m.view.Notify(err.Error())
			}
		} else {
			m.ctrl.ReadAloud() //nolint:errcheck // surfaced via the view notice
		}
		return m, nil

	case " ":
		var err error
		switch m.player.State() {
		case speech.Speaking:
			err = m.ctrl.PauseReading()
		case speech.Paused:
			err = m.ctrl.ResumeReading()
		}
		if err != nil {
			m.view.Notify(err.Error())
		}
		return m, nil

	case "s":
		m.ctrl.StopReading()
		return m, nil

	case "r":
		m.ctrl.Restore()
		m.langIndex = indexOfLang(m.ctrl.Language())
		m.view.Notify("Original content restored.")
		return m, nil

	case "left", "h":
		m.langIndex = (m.langIndex + len(voice.Supported()) - 1) % len(voice.Supported())
		return m, nil

	case "right", "l":
		m.langIndex = (m.langIndex + 1) % len(voice.Supported())
		return m, nil

	case "enter":
		if m.pending {
			m.view.Notify("A translation is already running.")
			return m, nil
		}
		m.pending = true
		return m, m.translateCmd(voice.Supported()[m.langIndex])
	}

	return m, nil
}

func (m *Model) translateCmd(lang string) tea.Cmd {
	return func() tea.Msg {
		err := m.ctrl.ChangeLanguage(context.Background(), lang)
		return translationDoneMsg{lang: lang, err: err}
	}
}

func (m *Model) fetchCmd(target string) tea.Cmd {
	return func() tea.Msg {
		markup, err := m.fetch(target)
		return documentMsg{target: target, markup: markup, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	content, banner, indicator, notice := m.view.renderState()
	width := m.width
	if width <= 0 {
		width = 80
	}

	var out string

	if indicator != "" {
		out += indicatorStyle.Render(indicator+"  (r to restore)") + "\n\n"
	}

	if banner != nil {
		out += bannerStyle.Render(wordwrap.String(banner.Message+"  Press r to restore the original content.", width)) + "\n\n"
	}

	out += m.renderContent(content, width)

	if notice != "" {
		out += "\n" + noticeStyle.Render(wordwrap.String(notice, width))
	}

	out += "\n" + m.statusLine()
	return out
}

func (m *Model) renderContent(content string, width int) string {
	if !m.cfg.GlamourEnabled {
		return content
	}

	maxWidth := int(m.cfg.GlamourMaxWidth)
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(m.cfg.GlamourStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func (m *Model) statusLine() string {
	lang := voice.Supported()[m.langIndex]
	sel := fmt.Sprintf("language: %s (%s)", voice.DisplayName(lang), lang)
	state := fmt.Sprintf("speech: %s", m.player.State())
	help := helpStyle.Render("←/→ language · enter translate · p play · space pause · s stop · q quit")
	return statusStyle.Render(sel+"  ·  "+state) + "\n" + help
}
