package scan

import (
	"bytes"
	"net/http"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// FetchedDocument is the primary page retrieved for a target: status,
// headers, raw body, and a lazily-built parsed tree. It is produced once per
// scan and shared read-only by the fingerprint engine and every analyzer.
type FetchedDocument struct {
	StatusCode int
	// Headers uses lowercased keys; duplicate response headers collapse
	// last-write-wins.
	Headers  map[string]string
	Body     []byte
	FinalURL string

	parseOnce sync.Once
	tree      *goquery.Document
}

// NewFetchedDocument builds a document from an HTTP response's parts.
func NewFetchedDocument(status int, header http.Header, body []byte, finalURL string) *FetchedDocument {
	headers := make(map[string]string, len(header))
	for key, values := range header {
		for _, v := range values {
			headers[strings.ToLower(key)] = v
		}
	}
	return &FetchedDocument{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
		FinalURL:   finalURL,
	}
}

// Header returns the value for a header key, case-insensitively.
func (d *FetchedDocument) Header(key string) string {
	if d == nil || d.Headers == nil {
		return ""
	}
	return d.Headers[strings.ToLower(key)]
}

// Tree returns the parsed DOM. Parsing happens on first use and the result is
// shared; a malformed or empty body yields an empty (never nil) document.
func (d *FetchedDocument) Tree() *goquery.Document {
	d.parseOnce.Do(func() {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(d.Body))
		if err != nil {
			doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
		}
		d.tree = doc
	})
	return d.tree
}
