package ui

import (
	"sync"

	"github.com/docvoice/docvoice/page"
)

// pageView is the terminal rendition of the page surface the controller
// mutates. Controller gestures run in Bubble Tea commands off the render
// goroutine, so every field is guarded.
type pageView struct {
	mu sync.Mutex

	content   string
	cached    string
	banner    *page.Banner
	indicator string
	notice    string

	pendingReload string
}

func newPageView(content, cached string) *pageView {
	return &pageView{content: content, cached: cached}
}

func (v *pageView) Content() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.content
}

func (v *pageView) CachedSnapshot() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cached
}

func (v *pageView) SetContent(markup string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.content = markup
}

func (v *pageView) ShowBanner(b page.Banner) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.banner = &b
}

func (v *pageView) ClearBanner() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.banner = nil
}

func (v *pageView) ShowIndicator(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.indicator = text
}

func (v *pageView) ClearIndicator() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.indicator = ""
}

func (v *pageView) Notify(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notice = text
}

// Reload records the reload target; the model performs the actual fetch
// when the gesture's command returns.
func (v *pageView) Reload(target string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingReload = target
}

// takeReload returns and clears the pending reload target.
func (v *pageView) takeReload() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	target := v.pendingReload
	v.pendingReload = ""
	return target
}

// snapshot returns a consistent copy of the render-relevant state.
func (v *pageView) renderState() (content string, banner *page.Banner, indicator, notice string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.content, v.banner, v.indicator, v.notice
}
