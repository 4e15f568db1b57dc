package analyzer

import (
	"context"
	"math"
	"strings"
	"testing"
)

func TestCarbon_EstimateAndGrade(t *testing.T) {
	// Declared 50000 bytes of HTML plus 4 external resources at the default
	// 15360 bytes each: 111440 bytes, roughly 0.0841 g CO2, grade A+.
	body := `<html><head>
		<script src="/app.js"></script>
		<link rel="stylesheet" href="/main.css">
	</head><body>
		<img src="/hero.jpg"><img src="/logo.png">
	</body></html>`

	result := CarbonAnalyzer{}.Analyze(context.Background(),
		htmlDoc(t, body, map[string]string{"Content-Length": "50000"}))

	if got := detailValue(result, "external resources"); got != "4" {
		t.Errorf("resource count = %q, want 4", got)
	}
	if got := detailValue(result, "estimated transfer"); got != "111440 bytes" {
		t.Errorf("estimated transfer = %q", got)
	}
	want := 111440.0 / (1024 * 1024 * 1024) * DefaultGramsPerGB * 1000
	if math.Abs(result.Score-want) > 1e-9 {
		t.Errorf("grams = %v, want %v", result.Score, want)
	}
	if result.Label != "A+" {
		t.Errorf("grade = %q, want A+", result.Label)
	}
}

func TestCarbon_BodyLengthWhenNoContentLength(t *testing.T) {
	body := strings.Repeat("a", 2048)
	result := CarbonAnalyzer{}.Analyze(context.Background(), htmlDoc(t, body, nil))
	if got := detailValue(result, "html bytes"); got != "2048" {
		t.Errorf("html bytes = %q, want 2048", got)
	}
}

func TestCarbon_Grades(t *testing.T) {
	testCases := []struct {
		grams float64
		want  string
	}{
		{0.05, "A+"},
		{0.1, "A"},
		{0.49, "A"},
		{0.5, "B"},
		{0.99, "B"},
		{1.0, "C"},
		{2.49, "C"},
		{2.5, "D"},
		{10, "D"},
	}
	for _, tc := range testCases {
		if got := grade(tc.grams); got != tc.want {
			t.Errorf("grade(%v) = %q, want %q", tc.grams, got, tc.want)
		}
	}
}

func TestCarbon_SeverityTracksGrade(t *testing.T) {
	if severityForGrade("A+") != Info || severityForGrade("B") != Info {
		t.Error("good grades should be info")
	}
	if severityForGrade("C") != Warning {
		t.Error("grade C should be a warning")
	}
	if severityForGrade("D") != Critical {
		t.Error("grade D should be critical")
	}
}

func TestCarbon_OverridableConstants(t *testing.T) {
	c := CarbonAnalyzer{BytesPerResource: 2048, GramsPerGB: 1.62}
	body := `<html><body><img src="/a.jpg"><img src="/b.jpg"></body></html>`
	doc := htmlDoc(t, body, map[string]string{"Content-Length": "50000"})

	result := c.Analyze(context.Background(), doc)

	want := float64(50000+2*2048) / (1024 * 1024 * 1024) * 1.62 * 1000
	if math.Abs(result.Score-want) > 1e-9 {
		t.Errorf("grams = %v, want %v", result.Score, want)
	}

	defaults := CarbonAnalyzer{}.Analyze(context.Background(), doc)
	if defaults.Score == result.Score {
		t.Error("overridden constants had no effect")
	}
}
