package feed_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"

	"github.com/sdkwatch/sdkwatch/internal/feed"
)

func TestNormalizeStripsTags(t *testing.T) {
	got := feed.Normalize("<b>Hi</b> there", 100)
	if got != "Hi there" {
		t.Fatalf("expected %q, got %q", "Hi there", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		maxLen int
		want   string
	}{
		{"plain text untouched", "no markup here", 100, "no markup here"},
		{"trims whitespace", "  <p>padded</p>\n", 100, "padded"},
		{"nested-looking tags", `<a href="x"><span>link</span></a>`, 100, "link"},
		{"truncates mid-word", "hello world", 7, "hello w"},
		{"empty input", "", 100, ""},
		{"only markup", "<br/><hr/>", 100, ""},
		{"multibyte truncation counts code points", "héllo wörld", 5, "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := feed.Normalize(tt.raw, tt.maxLen); got != tt.want {
				t.Errorf("Normalize(%q, %d) = %q, want %q", tt.raw, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestNormalizeStrayAngleBracket(t *testing.T) {
	// Known limitation: a stray '<' followed later by '>' is treated as one
	// tag and removed. Verify the behavior is stable rather than "fixed".
	got := feed.Normalize("a < b and c > d", 100)
	if got != "a  d" {
		t.Fatalf("expected %q, got %q", "a  d", got)
	}
}

func TestExtract(t *testing.T) {
	parsed := &gofeed.Feed{
		Title: "Release Notes",
		Items: []*gofeed.Item{
			{
				Title:     "v1.2.0",
				Link:      "https://example.test/v1.2.0",
				Updated:   "2026-08-27T10:00:00Z",
				Published: "2026-08-26T10:00:00Z",
				Content:   "<p>Added <code>foo</code> helper</p>",
			},
			{
				Title:       "v1.1.0",
				Link:        "https://example.test/v1.1.0",
				Published:   "2026-08-20T09:00:00Z",
				Description: "Bug fixes only",
			},
		},
	}

	entries := feed.Extract(parsed, 10, 600)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Date != "2026-08-27" {
		t.Errorf("expected updated date to win, got %q", first.Date)
	}
	if first.Excerpt != "Added foo helper" {
		t.Errorf("unexpected excerpt: %q", first.Excerpt)
	}

	second := entries[1]
	if second.Date != "2026-08-20" {
		t.Errorf("expected published fallback, got %q", second.Date)
	}
	if second.Excerpt != "Bug fixes only" {
		t.Errorf("expected summary fallback, got %q", second.Excerpt)
	}
}

func TestExtractLimitsAndEmptyFeed(t *testing.T) {
	items := make([]*gofeed.Item, 15)
	for i := range items {
		items[i] = &gofeed.Item{Title: "entry", Description: "body"}
	}

	entries := feed.Extract(&gofeed.Feed{Items: items}, 10, 600)
	if len(entries) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(entries))
	}

	entries = feed.Extract(&gofeed.Feed{}, 10, 600)
	if len(entries) != 0 {
		t.Fatalf("expected empty slice for empty feed, got %d entries", len(entries))
	}
}

func TestExtractDefaultsAndPassthrough(t *testing.T) {
	parsed := &gofeed.Feed{
		Items: []*gofeed.Item{
			{Updated: "not-a-date", Link: "https://example.test"},
		},
	}

	entries := feed.Extract(parsed, 10, 600)
	if entries[0].Title != "No Title" {
		t.Errorf("expected title fallback, got %q", entries[0].Title)
	}
	// Malformed timestamps are not validated, only prefix-trimmed.
	if entries[0].Date != "not-a-date" {
		t.Errorf("expected malformed date to pass through, got %q", entries[0].Date)
	}

	// The prefix counts code points, so a multibyte timestamp is never
	// split mid-rune.
	parsed = &gofeed.Feed{
		Items: []*gofeed.Item{{Updated: "2026年08月28日T00:00"}},
	}
	entries = feed.Extract(parsed, 10, 600)
	if entries[0].Date != "2026年08月28" {
		t.Errorf("expected 10-rune date prefix, got %q", entries[0].Date)
	}
	if entries[0].Excerpt != "" {
		t.Errorf("expected empty excerpt when feed has no body, got %q", entries[0].Excerpt)
	}
}

func TestExtractExcerptBounds(t *testing.T) {
	parsed := &gofeed.Feed{
		Items: []*gofeed.Item{
			{Title: "long", Content: "<div>" + strings.Repeat("x", 1000) + "</div>"},
		},
	}

	entries := feed.Extract(parsed, 10, 600)
	if got := len([]rune(entries[0].Excerpt)); got != 600 {
		t.Fatalf("expected excerpt capped at 600 code points, got %d", got)
	}
	if strings.ContainsAny(entries[0].Excerpt, "<>") {
		t.Fatal("excerpt must not contain markup characters")
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	parsed := &gofeed.Feed{
		Items: []*gofeed.Item{
			{Title: "a", Updated: "2026-01-01T00:00:00Z", Content: "<p>one</p>"},
			{Title: "b", Published: "2026-01-02T00:00:00Z", Description: "two"},
		},
	}

	first := feed.Extract(parsed, 10, 600)
	second := feed.Extract(parsed, 10, 600)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated extraction of the same feed must yield identical entries")
	}
}
