// Package notify delivers deal alerts over email, SMS, and WhatsApp.
//
// No channel ever aborts its caller: email reports one SendResult per
// recipient, the messaging channels log and return their error, and the
// workflow decides what a failure means (it logs and moves on).
package notify

import (
	"context"
	"log/slog"
)

// Config aggregates the channel settings NewDispatcher needs.
type Config struct {
	Email EmailConfig

	// Messaging configures the SMS channel. The WhatsApp channel reuses
	// its credentials and recipient, swapping only the sender number.
	Messaging    MessengerConfig
	WhatsAppFrom string
}

// Dispatcher fans one composed alert out over the configured channels.
type Dispatcher struct {
	email    *EmailSender
	sms      *Messenger
	whatsapp *Messenger
}

// NewDispatcher wires all three channels. Only the SMTP client can fail to
// construct (bad host and port combination); the messaging channels cannot.
func NewDispatcher(cfg Config, log *slog.Logger) (*Dispatcher, error) {
	email, err := NewEmailSender(cfg.Email, log)
	if err != nil {
		return nil, err
	}

	waCfg := cfg.Messaging
	waCfg.From = cfg.WhatsAppFrom

	return &Dispatcher{
		email:    email,
		sms:      NewSMSMessenger(cfg.Messaging, log),
		whatsapp: NewWhatsAppMessenger(waCfg, log),
	}, nil
}

// SendEmail delivers the alert to every recipient over SMTP; see
// EmailSender.SendEmail for the per-recipient semantics.
func (d *Dispatcher) SendEmail(ctx context.Context, recipients []string, subject, body string) []SendResult {
	return d.email.SendEmail(ctx, recipients, subject, body)
}

// SendSMS delivers the alert to the verified number over SMS.
func (d *Dispatcher) SendSMS(body string) error { return d.sms.Send(body) }

// SendWhatsApp delivers the alert to the verified number over WhatsApp.
func (d *Dispatcher) SendWhatsApp(body string) error { return d.whatsapp.Send(body) }
