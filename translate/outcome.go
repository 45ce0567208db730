// Package translate implements the client side of the document translation
// contract: request construction, response classification into a closed set
// of outcomes, and the best-effort language-preference write-through.
package translate

import "fmt"

// OutcomeKind discriminates the result of a translation attempt.
type OutcomeKind int

const (
	// Success means the server translated the document; the page should be
	// reloaded so the server-rendered markup becomes visible.
	Success OutcomeKind = iota
	// Timeout means the translation backend gave up before finishing.
	Timeout
	// InvalidLanguage means the server rejected the requested language code.
	InvalidLanguage
	// Failure covers every other error, transport-level or server-reported.
	Failure
)

// String returns the string representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case Timeout:
		return "timeout"
	case InvalidLanguage:
		return "invalid_language"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of a translation attempt. Exactly one kind
// holds; Markup is set only for Success, Message only for non-Success kinds.
type Outcome struct {
	Kind    OutcomeKind
	Markup  string // Translated markup, Success only
	Message string // Human-readable explanation, non-Success only
}

// payload is the JSON body the translation endpoint responds with.
type payload struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	TranslatedText string `json:"translated_text"`
	Language       string `json:"language"`
}

// classify maps a decoded 2xx payload onto an outcome. Unrecognized status
// values collapse into Failure so callers only ever see the four kinds.
func classify(p payload) Outcome {
	switch p.Status {
	case "success":
		return Outcome{Kind: Success, Markup: p.TranslatedText}
	case "timeout":
		return Outcome{Kind: Timeout, Message: orDefault(p.Message, "translation timed out")}
	case "invalid_language":
		return Outcome{Kind: InvalidLanguage, Message: orDefault(p.Message, "unsupported language")}
	default:
		return Outcome{Kind: Failure, Message: orDefault(p.Message, "translation failed")}
	}
}

func failuref(format string, args ...any) Outcome {
	return Outcome{Kind: Failure, Message: fmt.Sprintf(format, args...)}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
