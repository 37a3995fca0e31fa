package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// SendResult is the outcome of one recipient's delivery attempt.
// Err is nil on success.
type SendResult struct {
	Recipient string
	Err       error
}

// EmailConfig carries the SMTP settings NewEmailSender needs.
type EmailConfig struct {
	// Host and Port of the submission server. Port is normally 587.
	Host string
	Port int

	// Address is the sender address and doubles as the auth username.
	// Password is the matching app password.
	Address  string
	Password string
}

// EmailSender delivers individually addressed plain-text messages over
// SMTP. One transport session is opened per batch, not per recipient.
type EmailSender struct {
	client *mail.Client
	from   string
	log    *slog.Logger
}

// NewEmailSender builds the SMTP client. STARTTLS is mandatory and the
// LOGIN mechanism authenticates with the sender's own address.
func NewEmailSender(cfg EmailConfig, log *slog.Logger) (*EmailSender, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(cfg.Address),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("notify.NewEmailSender: %w", err)
	}
	return &EmailSender{client: client, from: cfg.Address, log: log}, nil
}

// SendEmail sends body to every recipient as its own message, all over a
// single SMTP session. One recipient's failure never blocks the rest: every
// recipient's outcome comes back in a SendResult, in recipients order, and
// failures are logged here as they are found.
func (s *EmailSender) SendEmail(ctx context.Context, recipients []string, subject, body string) []SendResult {
	results := make([]SendResult, len(recipients))
	msgs := make([]*mail.Msg, len(recipients))

	for i, rcpt := range recipients {
		results[i].Recipient = rcpt
		m := mail.NewMsg()
		if err := m.From(s.from); err != nil {
			results[i].Err = err
			continue
		}
		if err := m.To(rcpt); err != nil {
			// Unparsable address: recorded, the batch goes on without it.
			results[i].Err = err
			continue
		}
		m.Subject(subject)
		m.SetBodyString(mail.TypeTextPlain, body)
		msgs[i] = m
	}

	batch := make([]*mail.Msg, 0, len(msgs))
	for _, m := range msgs {
		if m != nil {
			batch = append(batch, m)
		}
	}

	if len(batch) > 0 {
		err := s.client.DialAndSendWithContext(ctx, batch...)

		attempted := false
		for i, m := range msgs {
			if m != nil && m.HasSendError() {
				results[i].Err = m.SendError()
				attempted = true
			}
		}
		// An error without any per-message send error means the session
		// never got that far (dial, STARTTLS, auth): it belongs to every
		// message in the batch.
		if err != nil && !attempted {
			for i, m := range msgs {
				if m != nil && results[i].Err == nil {
					results[i].Err = err
				}
			}
		}
	}

	for _, r := range results {
		if r.Err != nil {
			s.log.Error("email delivery failed", "recipient", r.Recipient, "error", r.Err)
		} else {
			s.log.Info("email sent", "recipient", r.Recipient)
		}
	}
	return results
}
