package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// preferencePath is the server endpoint recording the user's last-selected
// language.
const preferencePath = "/update_language_preference/"

// PreferenceWriter records the user's language choice server-side.
// Writes are best-effort telemetry of intent: failures are logged and
// dropped, and rapid selector churn is rate-limited so it cannot add load
// to an already busy backend.
type PreferenceWriter struct {
	baseURL   string
	csrfToken string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewPreferenceWriter creates a writer posting to baseURL. httpClient may
// be nil to use http.DefaultClient.
func NewPreferenceWriter(baseURL, csrfToken string, httpClient *http.Client) *PreferenceWriter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PreferenceWriter{
		baseURL:   strings.TrimRight(baseURL, "/"),
		csrfToken: csrfToken,
		http:      httpClient,
		limiter:   rate.NewLimiter(rate.Limit(1), 3),
	}
}

// Update posts the selected language. It has no return value on purpose:
// no caller is allowed to depend on the write having happened, so there is
// nothing to propagate.
func (w *PreferenceWriter) Update(ctx context.Context, lang string) {
	if !w.limiter.Allow() {
		log.Debug("language preference write skipped by rate limit", "language", lang)
		return
	}

	body, err := json.Marshal(map[string]string{"language": lang})
	if err != nil {
		log.Warn("encoding language preference", "err", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+preferencePath, bytes.NewReader(body))
	if err != nil {
		log.Warn("building language preference request", "err", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(csrfHeader, w.csrfToken)

	resp, err := w.http.Do(req)
	if err != nil {
		log.Warn("language preference update failed", "language", lang, "err", err)
		return
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("language preference update rejected", "language", lang, "status", resp.StatusCode)
		return
	}

	log.Debug("language preference recorded", "language", lang)
}
