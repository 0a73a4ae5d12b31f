package notifier_test

import (
	"testing"
	"time"

	"github.com/sdkwatch/sdkwatch/internal/config"
	"github.com/sdkwatch/sdkwatch/internal/notifier"
	"github.com/sdkwatch/sdkwatch/internal/report"
)

// fakeSender captures the message instead of speaking SMTP.
type fakeSender struct {
	to, subject, htmlBody, plainBody string
}

func (f *fakeSender) Send(to, subject, htmlBody, plainBody string) error {
	f.to, f.subject, f.htmlBody, f.plainBody = to, subject, htmlBody, plainBody
	return nil
}

func TestSendReport(t *testing.T) {
	sender := &fakeSender{}
	n := notifier.New(sender)

	r := &report.Report{
		Subject:      "SDK Impact Report - 2026-08-28",
		HTMLBody:     "<html>body</html>",
		PlainBody:    "body",
		SnapshotDate: "2026-08-28",
		CreatedAt:    time.Now(),
	}

	if err := n.SendReport(r, "dev@example.test"); err != nil {
		t.Fatal(err)
	}

	if sender.to != "dev@example.test" {
		t.Errorf("sent to %q", sender.to)
	}
	if sender.subject != r.Subject {
		t.Errorf("subject %q, want %q", sender.subject, r.Subject)
	}
	if sender.htmlBody != r.HTMLBody || sender.plainBody != r.PlainBody {
		t.Error("report bodies must pass through unchanged")
	}
}

func TestNewFromConfigRequiresHost(t *testing.T) {
	if _, err := notifier.NewFromConfig(config.EmailConfig{}); err == nil {
		t.Fatal("expected error when smtp_host is not configured")
	}
}

func TestNewFromConfig(t *testing.T) {
	n, err := notifier.NewFromConfig(config.EmailConfig{
		SMTPHost: "smtp.example.test",
		SMTPPort: 587,
		FromAddr: "watch@example.test",
	})
	if err != nil {
		t.Fatal(err)
	}
	if n == nil {
		t.Fatal("expected a notifier")
	}
}
