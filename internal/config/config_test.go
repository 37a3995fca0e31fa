package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpalmeida/flight-deals/internal/config"
)

// requiredVars maps every required variable to a placeholder value.
var requiredVars = map[string]string{
	"SHEETY_USERNAME":             "sheety-user",
	"SHEETY_PASSWORD":             "sheety-pass",
	"SHEETY_PRICES_ENDPOINT":      "https://api.sheety.co/abc/flightDeals/prices",
	"SHEETY_USERS_ENDPOINT":       "https://api.sheety.co/abc/flightDeals/users",
	"AMADEUS_API_KEY":             "amadeus-key",
	"AMADEUS_SECRET":              "amadeus-secret",
	"EMAIL_PROVIDER_SMTP_ADDRESS": "smtp.gmail.com",
	"MY_EMAIL":                    "alerts@example.com",
	"MY_EMAIL_PASSWORD":           "app-password",
	"TWILIO_SID":                  "AC00000000000000000000000000000000",
	"TWILIO_AUTH_TOKEN":           "twilio-token",
	"TWILIO_VIRTUAL_NUMBER":       "+15550100001",
	"TWILIO_VERIFIED_NUMBER":      "+447700900001",
	"TWILIO_WHATSAPP_NUMBER":      "+14155238886",
}

// optionalVars is every variable Load treats as optional. Tests clear them
// explicitly so values leaking in from the host environment cannot skew
// default assertions.
var optionalVars = []string{
	"AMADEUS_BASE_URL",
	"SMTP_PORT",
	"ORIGIN_CITY_IATA",
	"CURRENCY_CODE",
	"ENABLE_SMS",
	"ENABLE_WHATSAPP",
	"LOG_LEVEL",
}

// setRequired sets every required variable to its placeholder.
func setRequired(t *testing.T) {
	t.Helper()
	for k, v := range requiredVars {
		t.Setenv(k, v)
	}
}

// clearOptional blanks every optional variable.
func clearOptional(t *testing.T) {
	t.Helper()
	for _, k := range optionalVars {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that optional env vars fall back to their
// defaults when only the required variables are provided.
func TestLoad_defaults(t *testing.T) {
	setRequired(t)
	clearOptional(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "https://test.api.amadeus.com", cfg.AmadeusBaseURL)
	require.Equal(t, 587, cfg.SMTPPort)
	require.Equal(t, "LON", cfg.OriginIATA)
	require.Equal(t, "GBP", cfg.CurrencyCode)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.EnableSMS)
	require.False(t, cfg.EnableWhatsApp)
}

// TestLoad_requiredValues verifies that required variables land on the
// matching Config fields.
func TestLoad_requiredValues(t *testing.T) {
	setRequired(t)
	clearOptional(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "sheety-user", cfg.SheetyUsername)
	require.Equal(t, "sheety-pass", cfg.SheetyPassword)
	require.Equal(t, "https://api.sheety.co/abc/flightDeals/prices", cfg.SheetyPricesEndpoint)
	require.Equal(t, "https://api.sheety.co/abc/flightDeals/users", cfg.SheetyUsersEndpoint)
	require.Equal(t, "amadeus-key", cfg.AmadeusAPIKey)
	require.Equal(t, "amadeus-secret", cfg.AmadeusSecret)
	require.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	require.Equal(t, "alerts@example.com", cfg.EmailAddress)
	require.Equal(t, "app-password", cfg.EmailPassword)
	require.Equal(t, "AC00000000000000000000000000000000", cfg.TwilioSID)
	require.Equal(t, "twilio-token", cfg.TwilioAuthToken)
	require.Equal(t, "+15550100001", cfg.TwilioVirtualNumber)
	require.Equal(t, "+447700900001", cfg.TwilioVerifiedNumber)
	require.Equal(t, "+14155238886", cfg.TwilioWhatsAppNumber)
}

// TestLoad_overrides verifies that all optional values can be overridden via
// env vars.
func TestLoad_overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("AMADEUS_BASE_URL", "https://api.amadeus.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("ORIGIN_CITY_IATA", "MAD")
	t.Setenv("CURRENCY_CODE", "EUR")
	t.Setenv("ENABLE_SMS", "true")
	t.Setenv("ENABLE_WHATSAPP", "1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "https://api.amadeus.com", cfg.AmadeusBaseURL)
	require.Equal(t, 2525, cfg.SMTPPort)
	require.Equal(t, "MAD", cfg.OriginIATA)
	require.Equal(t, "EUR", cfg.CurrencyCode)
	require.True(t, cfg.EnableSMS)
	require.True(t, cfg.EnableWhatsApp)
	require.Equal(t, "debug", cfg.LogLevel)
}

// TestLoad_missingRequired verifies that an error is returned when required
// variables are not set, and that the error message names every one of them.
func TestLoad_missingRequired(t *testing.T) {
	for k := range requiredVars {
		t.Setenv(k, "")
	}

	_, err := config.Load()

	require.Error(t, err)
	for k := range requiredVars {
		require.ErrorContains(t, err, k)
	}
}

// TestLoad_missingSingleVariable verifies that only the absent variable is
// reported when the rest of the environment is complete.
func TestLoad_missingSingleVariable(t *testing.T) {
	setRequired(t)
	t.Setenv("AMADEUS_SECRET", "")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "AMADEUS_SECRET")
	require.NotContains(t, err.Error(), "SHEETY_USERNAME")
}

// TestLoad_badSMTPPort verifies that a non-numeric SMTP_PORT is rejected.
func TestLoad_badSMTPPort(t *testing.T) {
	setRequired(t)
	t.Setenv("SMTP_PORT", "not-a-port")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "SMTP_PORT")
}
