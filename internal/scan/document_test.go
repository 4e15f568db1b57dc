package scan

import (
	"net/http"
	"testing"
)

func TestNewFetchedDocument_HeaderNormalization(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "text/html")
	h.Add("Set-Cookie", "first=1")
	h.Add("Set-Cookie", "second=2")

	doc := NewFetchedDocument(200, h, nil, "https://example.com/")

	if got := doc.Header("content-type"); got != "text/html" {
		t.Errorf("lowercase lookup = %q", got)
	}
	if got := doc.Header("CONTENT-TYPE"); got != "text/html" {
		t.Errorf("uppercase lookup = %q", got)
	}
	// Duplicate headers collapse last-write-wins.
	if got := doc.Header("Set-Cookie"); got != "second=2" {
		t.Errorf("duplicate header = %q, want last value", got)
	}
	if got := doc.Header("absent"); got != "" {
		t.Errorf("absent header = %q, want empty", got)
	}
}

func TestFetchedDocument_NilSafety(t *testing.T) {
	var doc *FetchedDocument
	if got := doc.Header("anything"); got != "" {
		t.Errorf("nil receiver Header = %q", got)
	}
}

func TestFetchedDocument_TreeIsSharedAndNeverNil(t *testing.T) {
	doc := NewFetchedDocument(200, nil, []byte("<html><body><h1>Hi</h1></body></html>"), "")

	first := doc.Tree()
	if first == nil {
		t.Fatal("Tree returned nil")
	}
	if first != doc.Tree() {
		t.Error("Tree reparsed on second call")
	}
	if got := first.Find("h1").Text(); got != "Hi" {
		t.Errorf("h1 text = %q", got)
	}

	empty := NewFetchedDocument(200, nil, nil, "")
	if empty.Tree() == nil {
		t.Error("empty body must still yield a usable tree")
	}
	if n := empty.Tree().Find("a").Length(); n != 0 {
		t.Errorf("empty tree found %d anchors", n)
	}
}
