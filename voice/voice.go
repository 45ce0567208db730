// Package voice provides the synthesis-voice catalog and the
// language-to-voice resolution policy used for read-aloud playback.
package voice

import "sync"

// Voice describes a single synthesis voice reported by an engine.
type Voice struct {
	ID     string // Engine-specific voice identifier
	Name   string // Human-readable name
	Locale string // Region-qualified language tag (e.g. "hi-IN")
}

// Source enumerates the voices a synthesis engine currently offers.
// Enumeration may be empty early in the engine's life; callers are expected
// to ask again rather than treat emptiness as final.
type Source interface {
	Voices() []Voice
}

// Catalog is a lazily-populated cache over a Source. An empty result is
// never cached: every lookup that finds the cache empty goes back to the
// source, so a catalog that races engine startup heals itself on demand.
type Catalog struct {
	source Source

	mu     sync.RWMutex
	cached []Voice
}

// NewCatalog creates a catalog backed by the given source.
func NewCatalog(source Source) *Catalog {
	return &Catalog{source: source}
}

// Voices returns the cached voice set, re-querying the source whenever the
// cache is empty.
func (c *Catalog) Voices() []Voice {
	c.mu.RLock()
	if len(c.cached) > 0 {
		voices := c.cached
		c.mu.RUnlock()
		return voices
	}
	c.mu.RUnlock()

	return c.Refresh()
}

// Refresh unconditionally re-queries the source and replaces the cache.
// Wire this to the engine's voices-changed notification.
func (c *Catalog) Refresh() []Voice {
	voices := c.source.Voices()

	c.mu.Lock()
	c.cached = voices
	c.mu.Unlock()

	return voices
}

// Len returns the number of currently cached voices without touching the
// source.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cached)
}
