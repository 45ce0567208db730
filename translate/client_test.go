package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestParseDocumentRef tests document context derivation from page paths.
func TestParseDocumentRef(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    DocumentRef
		wantErr bool
	}{
		{"pdf detail page", "/pdfs/42/", DocumentRef{KindPDF, 42}, false},
		{"image detail page", "/images/7/", DocumentRef{KindImage, 7}, false},
		{"nested pdf page", "/pdfs/3/ask/", DocumentRef{KindPDF, 3}, false},
		{"no trailing slash", "/images/19", DocumentRef{KindImage, 19}, false},
		{"unknown section", "/profile/", DocumentRef{}, true},
		{"non-numeric id", "/pdfs/latest/", DocumentRef{}, true},
		{"root", "/", DocumentRef{}, true},
		{"empty", "", DocumentRef{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDocumentRef(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDocumentRef(%q) expected error, got %+v", tt.path, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDocumentRef(%q) error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("ParseDocumentRef(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

// TestUpdateLanguagePath tests per-kind endpoint paths.
func TestUpdateLanguagePath(t *testing.T) {
	pdf := DocumentRef{KindPDF, 42}
	if got := pdf.UpdateLanguagePath(); got != "/pdfs/42/update-language/" {
		t.Errorf("pdf path = %q", got)
	}
	img := DocumentRef{KindImage, 7}
	if got := img.UpdateLanguagePath(); got != "/images/7/update-language/" {
		t.Errorf("image path = %q", got)
	}
}

// TestClassify tests mapping of the status discriminator onto outcomes,
// including the catch-all for unrecognized values.
func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		payload     payload
		wantKind    OutcomeKind
		wantMessage string
	}{
		{"success", payload{Status: "success", TranslatedText: "<p>bonjour</p>"}, Success, ""},
		{"timeout default message", payload{Status: "timeout"}, Timeout, "translation timed out"},
		{"timeout server message", payload{Status: "timeout", Message: "backend busy"}, Timeout, "backend busy"},
		{"invalid language", payload{Status: "invalid_language"}, InvalidLanguage, "unsupported language"},
		{"server error with message", payload{Status: "error", Message: "no summary available"}, Failure, "no summary available"},
		{"unrecognized status", payload{Status: "partial"}, Failure, "translation failed"},
		{"empty status", payload{}, Failure, "translation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := classify(tt.payload)
			if out.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", out.Kind, tt.wantKind)
			}
			if out.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", out.Message, tt.wantMessage)
			}
		})
	}
}

// TestTranslateSuccess tests a full successful round trip, including the
// request shape the server contract requires.
func TestTranslateSuccess(t *testing.T) {
	var gotPath, gotToken, gotLanguage string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-CSRFToken")
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		gotLanguage = r.PostFormValue("language")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","language":"fr","translated_text":"<p>bonjour</p>"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "/pdfs/42/", "token123", srv.Client())
	out := client.Translate(context.Background(), "hello", "fr")

	if out.Kind != Success {
		t.Fatalf("kind = %v (%s), want Success", out.Kind, out.Message)
	}
	if out.Markup != "<p>bonjour</p>" {
		t.Errorf("markup = %q", out.Markup)
	}
	if gotPath != "/pdfs/42/update-language/" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotToken != "token123" {
		t.Errorf("csrf token = %q", gotToken)
	}
	if gotLanguage != "fr" {
		t.Errorf("form language = %q", gotLanguage)
	}
}

// TestTranslateImageEndpoint tests that image pages post to the image
// endpoint.
func TestTranslateImageEndpoint(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"status":"success"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "/images/7/", "t", srv.Client())
	if out := client.Translate(context.Background(), "text", "hi"); out.Kind != Success {
		t.Fatalf("kind = %v", out.Kind)
	}
	if gotPath != "/images/7/update-language/" {
		t.Errorf("request path = %q", gotPath)
	}
}

// TestTranslateServerStatuses tests classification of the non-success
// discriminator values over the wire.
func TestTranslateServerStatuses(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		body     string
		wantKind OutcomeKind
	}{
		{"logical timeout", http.StatusOK, `{"status":"timeout"}`, Timeout},
		{"invalid language 400", http.StatusBadRequest, `{"status":"invalid_language","message":"Invalid language"}`, InvalidLanguage},
		{"server error 500", http.StatusInternalServerError, `{"status":"error","message":"boom"}`, Failure},
		{"unrecognized status", http.StatusOK, `{"status":"wat"}`, Failure},
		{"garbage body", http.StatusOK, `not json`, Failure},
		{"empty 502", http.StatusBadGateway, ``, Failure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body)) //nolint:errcheck
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "/pdfs/1/", "t", srv.Client())
			out := client.Translate(context.Background(), "text", "fr")
			if out.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", out.Kind, tt.wantKind)
			}
			if out.Kind != Success && out.Message == "" {
				t.Error("non-success outcome carries no message")
			}
		})
	}
}

// TestTranslateEmbedsStatusCode tests that opaque non-2xx responses report
// the HTTP status code to the user.
func TestTranslateEmbedsStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "/pdfs/1/", "t", srv.Client())
	out := client.Translate(context.Background(), "text", "fr")
	if out.Kind != Failure {
		t.Fatalf("kind = %v, want Failure", out.Kind)
	}
	if want := "502"; !strings.Contains(out.Message, want) {
		t.Errorf("message %q does not mention status %s", out.Message, want)
	}
}

// TestTranslateNoDocumentContext tests the fail-fast path: no network call
// is made when the page identifies no document.
func TestTranslateNoDocumentContext(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "/profile/", "t", srv.Client())
	out := client.Translate(context.Background(), "text", "fr")

	if out.Kind != Failure {
		t.Fatalf("kind = %v, want Failure", out.Kind)
	}
	if out.Message == "" {
		t.Error("fail-fast outcome carries no message")
	}
	if called {
		t.Error("a network request was made without a document context")
	}
}

// TestTranslateTransportError tests that an unreachable server folds into a
// Failure outcome rather than an error.
func TestTranslateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // unreachable from here on

	client := NewClient(srv.URL, "/pdfs/1/", "t", nil)
	out := client.Translate(context.Background(), "text", "fr")
	if out.Kind != Failure {
		t.Errorf("kind = %v, want Failure", out.Kind)
	}
}
