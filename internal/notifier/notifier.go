package notifier

import (
	"fmt"

	"github.com/sdkwatch/sdkwatch/internal/config"
	"github.com/sdkwatch/sdkwatch/internal/notifier/providers"
	"github.com/sdkwatch/sdkwatch/internal/report"
)

// Notifier handles delivering impact reports
type Notifier struct {
	sender Sender
}

// Sender defines the interface for email sending
type Sender interface {
	Send(to, subject, htmlBody, plainBody string) error
}

// New creates a new notifier with the given sender
func New(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

// NewFromConfig creates a notifier based on configuration
func NewFromConfig(cfg config.EmailConfig) (*Notifier, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("email.smtp_host is not set")
	}

	sender := providers.NewSMTPSender(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.FromAddr,
	)
	return New(sender), nil
}

// SendReport sends an impact report email
func (n *Notifier) SendReport(r *report.Report, toAddr string) error {
	return n.sender.Send(toAddr, r.Subject, r.HTMLBody, r.PlainBody)
}
