package translate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DocumentKind identifies which document type a page is showing.
type DocumentKind int

const (
	// KindPDF is a PDF document page.
	KindPDF DocumentKind = iota
	// KindImage is an image document page.
	KindImage
)

// String returns the string representation of the document kind.
func (k DocumentKind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// DocumentRef identifies the document a translation request targets.
type DocumentRef struct {
	Kind DocumentKind
	ID   int
}

// UpdateLanguagePath returns the server path translation requests are
// posted to for this document.
func (r DocumentRef) UpdateLanguagePath() string {
	switch r.Kind {
	case KindImage:
		return fmt.Sprintf("/images/%d/update-language/", r.ID)
	default:
		return fmt.Sprintf("/pdfs/%d/update-language/", r.ID)
	}
}

// ErrNoDocumentContext is returned when a page path identifies neither a
// PDF nor an image document.
var ErrNoDocumentContext = errors.New("page is not a pdf or image document view")

// ParseDocumentRef derives the document kind and id from a page path such
// as "/pdfs/42/" or "/images/7/detail". The numeric id must directly follow
// the kind segment.
func ParseDocumentRef(path string) (DocumentRef, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 {
		return DocumentRef{}, ErrNoDocumentContext
	}

	var kind DocumentKind
	switch segments[0] {
	case "pdfs":
		kind = KindPDF
	case "images":
		kind = KindImage
	default:
		return DocumentRef{}, ErrNoDocumentContext
	}

	id, err := strconv.Atoi(segments[1])
	if err != nil || id < 0 {
		return DocumentRef{}, ErrNoDocumentContext
	}

	return DocumentRef{Kind: kind, ID: id}, nil
}
