package voice

import "testing"

// stubSource is a Source whose voice list can be swapped mid-test.
type stubSource struct {
	voices []Voice
	calls  int
}

func (s *stubSource) Voices() []Voice {
	s.calls++
	return s.voices
}

// TestCatalogLazyPopulation tests that the first lookup populates the cache
// from the source.
func TestCatalogLazyPopulation(t *testing.T) {
	src := &stubSource{voices: []Voice{{ID: "a", Locale: "en-US"}}}
	catalog := NewCatalog(src)

	if catalog.Len() != 0 {
		t.Fatalf("fresh catalog has %d cached voices, want 0", catalog.Len())
	}

	voices := catalog.Voices()
	if len(voices) != 1 || voices[0].ID != "a" {
		t.Errorf("Voices() = %v, want the source voice", voices)
	}
	if src.calls != 1 {
		t.Errorf("source queried %d times, want 1", src.calls)
	}
}

// TestCatalogDoesNotCacheEmptiness tests that an empty enumeration is
// retried on the next lookup instead of being cached permanently.
func TestCatalogDoesNotCacheEmptiness(t *testing.T) {
	src := &stubSource{}
	catalog := NewCatalog(src)

	if voices := catalog.Voices(); len(voices) != 0 {
		t.Fatalf("Voices() = %v, want empty", voices)
	}

	// Voices arrive late, as they do when enumeration races engine startup.
	src.voices = []Voice{{ID: "late", Locale: "hi-IN"}}

	voices := catalog.Voices()
	if len(voices) != 1 || voices[0].ID != "late" {
		t.Errorf("Voices() after late population = %v, want the late voice", voices)
	}
}

// TestCatalogCachesNonEmptyResult tests that a populated cache is served
// without hitting the source again.
func TestCatalogCachesNonEmptyResult(t *testing.T) {
	src := &stubSource{voices: []Voice{{ID: "a", Locale: "en-US"}}}
	catalog := NewCatalog(src)

	catalog.Voices()
	catalog.Voices()
	catalog.Voices()

	if src.calls != 1 {
		t.Errorf("source queried %d times, want 1", src.calls)
	}
}

// TestCatalogRefresh tests that Refresh always goes back to the source.
func TestCatalogRefresh(t *testing.T) {
	src := &stubSource{voices: []Voice{{ID: "old", Locale: "en-US"}}}
	catalog := NewCatalog(src)
	catalog.Voices()

	src.voices = []Voice{{ID: "new", Locale: "en-GB"}}
	voices := catalog.Refresh()

	if len(voices) != 1 || voices[0].ID != "new" {
		t.Errorf("Refresh() = %v, want the replacement voice", voices)
	}
	if src.calls != 2 {
		t.Errorf("source queried %d times, want 2", src.calls)
	}
}
