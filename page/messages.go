package page

import (
	"errors"
	"fmt"

	"github.com/docvoice/docvoice/speech"
	"github.com/docvoice/docvoice/translate"
	"github.com/docvoice/docvoice/voice"
)

// bannerFor maps a non-success translation outcome onto the banner shown
// to the user. Every user-facing failure message lives here.
func bannerFor(out translate.Outcome, lang string) Banner {
	switch out.Kind {
	case translate.Timeout:
		return Banner{
			Kind:    out.Kind,
			Message: fmt.Sprintf("Translation to %s timed out. The document is unchanged; try again in a moment.", voice.DisplayName(lang)),
		}
	case translate.InvalidLanguage:
		return Banner{
			Kind:    out.Kind,
			Message: fmt.Sprintf("%s is not a language this document can be translated to.", voice.DisplayName(lang)),
		}
	default:
		msg := out.Message
		if msg == "" {
			msg = "Translation failed."
		}
		return Banner{Kind: translate.Failure, Message: msg}
	}
}

// indicatorFor returns the persistent post-translation indicator text.
func indicatorFor(lang string) string {
	return fmt.Sprintf("Translated to %s", voice.DisplayName(lang))
}

// playbackNotice maps playback precondition failures onto user notices.
func playbackNotice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, speech.ErrNoPlayableText):
		return "There is no text to read aloud on this page."
	case errors.Is(err, speech.ErrNoVoiceAvailable):
		return "Read-aloud is unavailable: no speech voices are installed."
	default:
		return fmt.Sprintf("Read-aloud stopped: %v", err)
	}
}
