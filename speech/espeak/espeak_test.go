package espeak

import "testing"

const sampleVoiceListing = `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 5  en-us           --/M      English_(America)  gmw/en-US            (en 10)
 5  en-gb           --/M      English_(Great_Britain) gmw/en           (en 2)
 5  hi              --/M      Hindi              inc/hi
 5  ta              --/M      Tamil              dra/ta
`

// TestParseVoices verifies voice listing output is parsed into voices with
// canonical locale tags.
func TestParseVoices(t *testing.T) {
	voices := parseVoices([]byte(sampleVoiceListing))
	if len(voices) != 5 {
		t.Fatalf("parsed %d voices, want 5", len(voices))
	}

	us := voices[1]
	if us.ID != "English_(America)" {
		t.Errorf("voice ID = %q, want %q", us.ID, "English_(America)")
	}
	if us.Locale != "en-US" {
		t.Errorf("voice locale = %q, want %q", us.Locale, "en-US")
	}

	hindi := voices[3]
	if hindi.Locale != "hi" {
		t.Errorf("hindi locale = %q, want %q", hindi.Locale, "hi")
	}
}

// TestParseVoicesEmpty verifies malformed or empty listings yield no voices
// rather than panicking.
func TestParseVoicesEmpty(t *testing.T) {
	for _, out := range []string{"", "Pty Language\n", "garbage\n\n"} {
		if voices := parseVoices([]byte(out)); len(voices) != 0 {
			t.Errorf("parseVoices(%q) = %d voices, want 0", out, len(voices))
		}
	}
}

// TestCanonicalLocale verifies region subtags are upper-cased and bare
// language tags pass through.
func TestCanonicalLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en-us", "en-US"},
		{"pt-br", "pt-BR"},
		{"hi", "hi"},
		{"zh-cn", "zh-CN"},
	}
	for _, tc := range tests {
		if got := canonicalLocale(tc.in); got != tc.want {
			t.Errorf("canonicalLocale(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
