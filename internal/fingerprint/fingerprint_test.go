package fingerprint

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/kevineulenberg/domain-testing-suite/internal/scan"
)

func docWith(t *testing.T, body string, headers map[string]string) *scan.FetchedDocument {
	t.Helper()
	h := http.Header{}
	for k, v := range headers {
		h.Set(k, v)
	}
	return scan.NewFetchedDocument(200, h, []byte(body), "https://example.com/")
}

func TestClassify_BodyAndHeaderSignals(t *testing.T) {
	doc := docWith(t,
		`<html><head><script src="/wp-content/themes/x/app.js"></script>
		<script src="https://www.googletagmanager.com/gtag/js"></script></head></html>`,
		map[string]string{
			"Server": "nginx/1.24.0",
			"CF-Ray": "8a1b2c3d4e5f-FRA",
		})

	signals := Classify(doc)

	want := map[string]Category{
		"WordPress":          CategoryCMS,
		"Nginx":              CategoryServer,
		"Cloudflare":         CategoryCDN,
		"Google Tag Manager": CategoryAnalytics,
	}
	got := map[string]Category{}
	for _, s := range signals {
		got[s.Name] = s.Category
	}
	for name, cat := range want {
		if got[name] != cat {
			t.Errorf("expected %s in category %s, got %q", name, cat, got[name])
		}
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	doc := docWith(t, `<link href="/WP-CONTENT/style.css">`, nil)
	signals := Classify(doc)
	if !hasSignal(signals, "WordPress") {
		t.Error("uppercase body pattern not matched")
	}
}

func TestClassify_NoDuplicates(t *testing.T) {
	// A page that trips several WordPress rules must still report it once.
	doc := docWith(t, `/wp-content/ /wp-json/ xmlrpc.php`, nil)

	signals := Classify(doc)
	count := 0
	for _, s := range signals {
		if s.Name == "WordPress" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("WordPress reported %d times, want 1", count)
	}
}

func TestClassify_DedupFirstMatchWins(t *testing.T) {
	table := []Rule{
		{Name: "Thing", Category: CategoryCMS, BodyPattern: "alpha"},
		{Name: "Thing", Category: CategoryFramework, BodyPattern: "beta"},
	}
	doc := docWith(t, "alpha beta", nil)

	signals := classifyWith(table, doc)
	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1", len(signals))
	}
	if signals[0].Category != CategoryCMS {
		t.Errorf("category = %s, want first rule's %s", signals[0].Category, CategoryCMS)
	}
}

func TestClassify_HeaderOnlyDocument(t *testing.T) {
	// Empty body, headers only. Body rules must not match; header rules must.
	doc := docWith(t, "", map[string]string{"X-Powered-By": "Express"})

	signals := Classify(doc)
	if !hasSignal(signals, "Express") {
		t.Error("header-only rule did not match on empty body")
	}
	if hasSignal(signals, "WordPress") {
		t.Error("body rule matched against empty body")
	}
}

func TestClassify_HeaderKeyRequiresPresence(t *testing.T) {
	table := []Rule{
		{Name: "Keyed", Category: CategoryWAF, HeaderKey: "X-Guard", HeaderPattern: "active"},
	}

	absent := docWith(t, "", map[string]string{"Other": "active"})
	if got := classifyWith(table, absent); len(got) != 0 {
		t.Errorf("matched with header key absent: %v", got)
	}

	present := docWith(t, "", map[string]string{"X-Guard": "ACTIVE mode"})
	if got := classifyWith(table, present); len(got) != 1 {
		t.Errorf("did not match with header key present, got %v", got)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	doc := docWith(t, `/wp-content/ jquery.min.js`, map[string]string{"Server": "Apache"})
	first := Classify(doc)
	second := Classify(doc)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated classification differs:\n%v\n%v", first, second)
	}
}

func TestClassify_NilAndEmpty(t *testing.T) {
	if got := Classify(nil); got != nil {
		t.Errorf("Classify(nil) = %v, want nil", got)
	}
	doc := docWith(t, "", nil)
	if got := Classify(doc); len(got) != 0 {
		t.Errorf("empty document produced signals: %v", got)
	}
}

func TestGroupByCategory(t *testing.T) {
	signals := []Signal{
		{Name: "WordPress", Category: CategoryCMS},
		{Name: "Nginx", Category: CategoryServer},
		{Name: "Drupal", Category: CategoryCMS},
	}
	grouped := GroupByCategory(signals)
	if got := grouped[CategoryCMS]; !reflect.DeepEqual(got, []string{"WordPress", "Drupal"}) {
		t.Errorf("CMS bucket = %v", got)
	}
	if got := grouped[CategoryServer]; !reflect.DeepEqual(got, []string{"Nginx"}) {
		t.Errorf("Server bucket = %v", got)
	}
}

func hasSignal(signals []Signal, name string) bool {
	for _, s := range signals {
		if s.Name == name {
			return true
		}
	}
	return false
}
