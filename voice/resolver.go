package voice

import "golang.org/x/text/language"

// Resolve picks the best available voice for a language code. The fallback
// chain is evaluated in order and the first match wins:
//
//  1. Exact match on the language's preferred locale tag.
//  2. Exact match on the sparse-coverage substitute locale, if one is
//     registered for the language.
//  3. Any voice sharing the base language subtag with the preferred locale.
//  4. The first voice in the catalog, regardless of language.
//  5. No voice at all (empty catalog).
//
// The chain is total: every supported code, and any unrecognized code via
// DefaultLocale, resolves to some voice whenever voices is non-empty.
func Resolve(lang string, voices []Voice) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}

	locale := LocaleFor(lang)

	// 1. Exact locale match.
	if v, ok := exactMatch(locale, voices); ok {
		return v, true
	}

	// 2. Hard-coded substitute for sparse platform coverage.
	if substitute, ok := sparseVoiceFallback[lang]; ok {
		if v, ok := exactMatch(substitute, voices); ok {
			return v, true
		}
	}

	// 3. Base language subtag match.
	if v, ok := baseMatch(locale, voices); ok {
		return v, true
	}

	// 4. Last resort: any voice beats none.
	return voices[0], true
}

func exactMatch(locale string, voices []Voice) (Voice, bool) {
	for _, v := range voices {
		if v.Locale == locale {
			return v, true
		}
	}
	return Voice{}, false
}

func baseMatch(locale string, voices []Voice) (Voice, bool) {
	want, confidence := language.Make(locale).Base()
	if confidence == language.No {
		return Voice{}, false
	}

	for _, v := range voices {
		base, c := language.Make(v.Locale).Base()
		if c != language.No && base == want {
			return v, true
		}
	}
	return Voice{}, false
}
