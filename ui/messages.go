package ui

// Messages for Bubble Tea communication between the page flows and the UI.

// translationDoneMsg is sent when a language-change gesture has run to an
// outcome (or was rejected by the in-flight guard).
type translationDoneMsg struct {
	lang string
	err  error
}

// documentMsg carries freshly fetched page markup after a reload, along
// with the target URL the fetch navigated to.
type documentMsg struct {
	target string
	markup string
	err    error
}

// tickMsg drives periodic status-line refreshes while speech is active.
type tickMsg struct{}
