// Package page wires the document view, the translation client and the
// speech player together: it owns the original-content snapshot, the
// language-change flow and the restore affordances.
package page

import "github.com/docvoice/docvoice/translate"

// View is the rendering surface the controller mutates. Implementations
// must keep existing content visible beneath a banner; only SetContent
// replaces the content region.
type View interface {
	// Content returns the markup currently in the content region.
	Content() string

	// CachedSnapshot returns the server-provided pristine content snapshot
	// when the page carries one, or "" when it does not.
	CachedSnapshot() string

	// SetContent replaces the content region.
	SetContent(markup string)

	// ShowBanner inserts an inline banner above the content region,
	// replacing any banner already shown.
	ShowBanner(b Banner)

	// ClearBanner removes the banner, if any.
	ClearBanner()

	// ShowIndicator renders the persistent translation indicator.
	ShowIndicator(text string)

	// ClearIndicator removes the translation indicator.
	ClearIndicator()

	// Notify shows a transient, non-blocking notice.
	Notify(text string)

	// Reload navigates to target and lets the server re-render the page.
	Reload(target string)
}

// Banner is an inline, restorable error notice. The restore affordance is
// always offered; content stays visible beneath the banner.
type Banner struct {
	Kind    translate.OutcomeKind
	Message string
}
