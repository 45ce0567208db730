package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
)

// csrfHeader is the header the server expects the CSRF token in.
const csrfHeader = "X-CSRFToken"

// Client issues translation requests for the document shown on one page.
// It is bound to a page path at construction and fails fast, without a
// network call, when that path identifies no translatable document.
type Client struct {
	baseURL   string
	pagePath  string
	csrfToken string
	http      *http.Client
}

// NewClient creates a translation client for the page at pagePath, served
// from baseURL. httpClient may be nil, in which case http.DefaultClient is
// used and requests run under its default timeout.
func NewClient(baseURL, pagePath, csrfToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		pagePath:  pagePath,
		csrfToken: csrfToken,
		http:      httpClient,
	}
}

// Translate asks the server to translate text into the target language and
// classifies the response. It never returns an error: every failure mode is
// folded into the Outcome so callers handle exactly four cases. The only
// side effects are network ones; rendering belongs to the caller.
func (c *Client) Translate(ctx context.Context, text, lang string) Outcome {
	ref, err := ParseDocumentRef(c.pagePath)
	if err != nil {
		return failuref("cannot determine document to translate: %v", err)
	}

	form := url.Values{"language": {lang}}
	endpoint := c.baseURL + ref.UpdateLanguagePath()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return failuref("building translation request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(csrfHeader, c.csrfToken)

	log.Debug("requesting translation", "document", ref.Kind, "id", ref.ID, "language", lang, "chars", len(text))

	resp, err := c.http.Do(req)
	if err != nil {
		// A transport-level deadline is still a timeout to the user, even
		// though the server never got to report its own.
		if errors.Is(err, context.DeadlineExceeded) {
			return Outcome{Kind: Timeout, Message: "translation request timed out"}
		}
		return failuref("translation request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var p payload
		if err := json.NewDecoder(resp.Body).Decode(&p); err == nil && p.Status != "" && p.Status != "success" {
			// Error bodies still carry the status discriminator; 4xx/5xx
			// never count as success regardless of what the body claims.
			out := classify(p)
			if out.Kind != Success {
				return out
			}
		}
		return failuref("translation server returned status %d", resp.StatusCode)
	}

	var p payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return failuref("decoding translation response: %v", err)
	}

	out := classify(p)
	log.Debug("translation outcome", "kind", out.Kind, "language", lang)
	return out
}
