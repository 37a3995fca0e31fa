// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the deal finder.
// Values are populated by Load from environment variables.
type Config struct {
	// SheetyUsername and SheetyPassword authenticate requests against the
	// spreadsheet store's REST endpoints. Both required.
	SheetyUsername string
	SheetyPassword string

	// SheetyPricesEndpoint is the URL of the destinations (prices) table.
	// Required.
	SheetyPricesEndpoint string

	// SheetyUsersEndpoint is the URL of the customers (users) table.
	// Required.
	SheetyUsersEndpoint string

	// AmadeusAPIKey and AmadeusSecret are the flight API's OAuth2
	// client-credentials pair. Both required.
	AmadeusAPIKey string
	AmadeusSecret string

	// AmadeusBaseURL is the flight API host, scheme included. Defaults to
	// the sandbox host; point it at production to search live fares.
	AmadeusBaseURL string

	// SMTPHost is the mail submission host. Required.
	// SMTPPort defaults to 587 (STARTTLS submission).
	SMTPHost string
	SMTPPort int

	// EmailAddress is the sender address and SMTP username. Required.
	// EmailPassword is the matching app password. Required.
	EmailAddress  string
	EmailPassword string

	// Twilio account credentials and phone numbers for the SMS and
	// WhatsApp channels. All required even when the channels are disabled,
	// so that misconfiguration surfaces at startup rather than on the
	// first deal.
	TwilioSID            string
	TwilioAuthToken      string
	TwilioVirtualNumber  string
	TwilioVerifiedNumber string
	TwilioWhatsAppNumber string

	// OriginIATA is the fixed departure city code. Defaults to "LON".
	OriginIATA string

	// CurrencyCode is the ISO 4217 code searches and alerts use.
	// Defaults to "GBP".
	CurrencyCode string

	// EnableSMS and EnableWhatsApp switch the optional alert channels on.
	// Both default to false; email is always on.
	EnableSMS      bool
	EnableWhatsApp bool

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		AmadeusBaseURL: getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		OriginIATA:     getEnv("ORIGIN_CITY_IATA", "LON"),
		CurrencyCode:   getEnv("CURRENCY_CODE", "GBP"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		EnableSMS:      getBool("ENABLE_SMS", false),
		EnableWhatsApp: getBool("ENABLE_WHATSAPP", false),
	}

	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return Config{}, fmt.Errorf("SMTP_PORT must be an integer: %w", err)
	}
	cfg.SMTPPort = port

	required := []struct {
		name string
		dst  *string
	}{
		{"SHEETY_USERNAME", &cfg.SheetyUsername},
		{"SHEETY_PASSWORD", &cfg.SheetyPassword},
		{"SHEETY_PRICES_ENDPOINT", &cfg.SheetyPricesEndpoint},
		{"SHEETY_USERS_ENDPOINT", &cfg.SheetyUsersEndpoint},
		{"AMADEUS_API_KEY", &cfg.AmadeusAPIKey},
		{"AMADEUS_SECRET", &cfg.AmadeusSecret},
		{"EMAIL_PROVIDER_SMTP_ADDRESS", &cfg.SMTPHost},
		{"MY_EMAIL", &cfg.EmailAddress},
		{"MY_EMAIL_PASSWORD", &cfg.EmailPassword},
		{"TWILIO_SID", &cfg.TwilioSID},
		{"TWILIO_AUTH_TOKEN", &cfg.TwilioAuthToken},
		{"TWILIO_VIRTUAL_NUMBER", &cfg.TwilioVirtualNumber},
		{"TWILIO_VERIFIED_NUMBER", &cfg.TwilioVerifiedNumber},
		{"TWILIO_WHATSAPP_NUMBER", &cfg.TwilioWhatsAppNumber},
	}

	var missing []string
	for _, v := range required {
		*v.dst = os.Getenv(v.name)
		if *v.dst == "" {
			missing = append(missing, v.name)
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getBool parses the environment variable named by key as a boolean
// ("true", "1", "false", ...), or returns fallback if the variable is
// unset or unparsable.
func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
