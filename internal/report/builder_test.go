package report_test

import (
	"strings"
	"testing"

	"github.com/sdkwatch/sdkwatch/internal/report"
)

func TestBuildRewritesLinksAndEscapes(t *testing.T) {
	b, err := report.New()
	if err != nil {
		t.Fatal(err)
	}

	r, err := b.Build("2026-08-28", "New release: see [changelog](https://x.test) & <script>alert(1)</script>")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(r.HTMLBody, `<a href="https://x.test" target="_blank" rel="noopener noreferrer">changelog</a>`) {
		t.Error("markdown link not rewritten to a new-tab anchor")
	}
	if strings.Contains(r.HTMLBody, "<script>") {
		t.Error("model output must be escaped before embedding")
	}
	if r.PlainBody != "New release: see [changelog](https://x.test) & <script>alert(1)</script>" {
		t.Error("plain body must keep the raw answer")
	}
	if !strings.Contains(r.Subject, "2026-08-28") {
		t.Errorf("subject should carry the snapshot date, got %q", r.Subject)
	}
}

func TestBuildRejectsEmptyAnswer(t *testing.T) {
	b, err := report.New()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build("2026-08-28", "  \n"); err == nil {
		t.Fatal("expected error for empty report content")
	}
}

func TestSaveAndLatest(t *testing.T) {
	b, err := report.New()
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()

	first, err := b.Build("2026-08-27", "first report")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.Save(dir); err != nil {
		t.Fatal(err)
	}

	second, err := b.Build("2026-08-28", "second report")
	if err != nil {
		t.Fatal(err)
	}
	secondPath, err := second.Save(dir)
	if err != nil {
		t.Fatal(err)
	}

	latest, err := report.Latest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if latest != secondPath {
		t.Fatalf("expected latest report %s, got %s", secondPath, latest)
	}
}

func TestLatestEmptyDir(t *testing.T) {
	if _, err := report.Latest(t.TempDir()); err == nil {
		t.Fatal("expected error when no reports exist")
	}
}
