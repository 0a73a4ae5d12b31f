package providers

import (
	"strings"
	"testing"
)

func TestBuildMIME(t *testing.T) {
	msg := buildMIME("watch@example.test", "dev@example.test", "Report - 2026-08-28", "<p>html part</p>", "plain part")

	for _, want := range []string{
		"From: watch@example.test\r\n",
		"To: dev@example.test\r\n",
		"Subject: Report - 2026-08-28\r\n",
		"MIME-Version: 1.0\r\n",
		`multipart/alternative; boundary="` + mimeBoundary + `"`,
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\nplain part\r\n",
		"Content-Type: text/html; charset=\"utf-8\"\r\n\r\n<p>html part</p>\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q in:\n%s", want, msg)
		}
	}

	// multipart/alternative lists parts least-faithful first, so the plain
	// part must precede the HTML part.
	if strings.Index(msg, "plain part") > strings.Index(msg, "html part") {
		t.Error("plain part must come before the HTML part")
	}

	if !strings.HasSuffix(msg, "--"+mimeBoundary+"--\r\n") {
		t.Error("message must end with the closing boundary")
	}

	// Exactly two opening boundary delimiters, one per part.
	if got := strings.Count(msg, "--"+mimeBoundary+"\r\n"); got != 2 {
		t.Errorf("expected 2 part boundaries, got %d", got)
	}
}
