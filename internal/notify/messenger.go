package notify

import (
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// AddressFormatter decorates a phone number for one messaging channel.
// SMS uses numbers as-is; WhatsApp needs a literal channel prefix.
type AddressFormatter func(number string) string

// SMSAddress returns the number unchanged.
func SMSAddress(number string) string { return number }

// WhatsAppAddress prefixes the number with the tag the messaging API
// expects, e.g. "whatsapp:+447700900001".
func WhatsAppAddress(number string) string { return "whatsapp:" + number }

// MessengerConfig carries the messaging API credentials and numbers.
type MessengerConfig struct {
	// AccountSID and AuthToken authenticate against the messaging API.
	AccountSID string
	AuthToken  string

	// From is the sending number owned by the account; To is the verified
	// recipient number. Both are given bare, without any channel prefix.
	From string
	To   string
}

// Messenger sends message bodies to one preconfigured recipient over a
// single messaging channel. SMS and WhatsApp share this type and differ
// only in sender number and address formatting: the channel is a
// parameter, not a separate implementation.
type Messenger struct {
	rest    *twilio.RestClient
	channel string
	from    string
	to      string
	format  AddressFormatter
	log     *slog.Logger
}

// NewSMSMessenger returns a Messenger for the SMS channel.
func NewSMSMessenger(cfg MessengerConfig, log *slog.Logger) *Messenger {
	return newMessenger("sms", cfg, SMSAddress, log)
}

// NewWhatsAppMessenger returns a Messenger for the WhatsApp channel.
// cfg.From must be the account's WhatsApp-enabled sender number.
func NewWhatsAppMessenger(cfg MessengerConfig, log *slog.Logger) *Messenger {
	return newMessenger("whatsapp", cfg, WhatsAppAddress, log)
}

func newMessenger(channel string, cfg MessengerConfig, format AddressFormatter, log *slog.Logger) *Messenger {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &Messenger{
		rest:    rest,
		channel: channel,
		from:    cfg.From,
		to:      cfg.To,
		format:  format,
		log:     log,
	}
}

// Send delivers body to the configured recipient. Failures are logged and
// returned; callers treat them as advisory and keep going. There is no
// context parameter because the generated messaging client is not
// context-aware.
func (m *Messenger) Send(body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(m.format(m.from))
	params.SetTo(m.format(m.to))
	params.SetBody(body)

	resp, err := m.rest.Api.CreateMessage(params)
	if err != nil {
		m.log.Error("message delivery failed", "channel", m.channel, "error", err)
		return fmt.Errorf("notify.Messenger.Send: %w", err)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	m.log.Info("message sent", "channel", m.channel, "sid", sid)
	return nil
}
