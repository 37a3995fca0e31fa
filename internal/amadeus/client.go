// Package amadeus is the flight-offer API client: OAuth2 client-credentials
// authentication, city to IATA code resolution, and round-trip offer search.
//
// Resolution and search deliberately soft-fail. They log and return a
// sentinel value ("N/A", nil) instead of an error, because the workflow
// treats a missing code or a failed search as "skip this destination",
// never as a reason to abort the whole run.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// CodeUnresolved is returned by ResolveIATACode when no code could be
// determined. It is a real data value, not just an in-memory marker: the
// workflow writes it back to the sheet, so a failed lookup stays visible
// there until the row is fixed by hand.
const CodeUnresolved = "N/A"

const (
	tokenPath    = "/v1/security/oauth2/token"
	locationPath = "/v1/reference-data/locations/cities"
	offersPath   = "/v2/shopping/flight-offers"

	maxLocationResults = "2"
	maxOfferResults    = "10"
)

// Config carries the settings New needs to authenticate and search.
type Config struct {
	// APIKey and APISecret are the OAuth2 client-credentials pair.
	APIKey    string
	APISecret string

	// BaseURL is the API host, scheme included, no trailing slash.
	BaseURL string

	// Currency is the ISO 4217 code offers are priced in.
	Currency string
}

// Client is an authenticated flight-offer API client. The bearer token is
// obtained exactly once, in New, and reused for every call: there is no
// refresh, so a client that outlives the server-declared expiry (about 30
// minutes) must be rebuilt. A single deal-finding pass finishes well inside
// that window.
type Client struct {
	http     *http.Client
	baseURL  string
	currency string
	token    string
	log      *slog.Logger
}

// New exchanges the client credentials for a bearer token and returns an
// authenticated Client. Construction fails when the token endpoint cannot
// be reached or rejects the credentials, so a bad key surfaces before any
// search runs. Pass nil for httpClient to use http.DefaultClient.
func New(ctx context.Context, cfg Config, httpClient *http.Client, log *slog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.APIKey,
		ClientSecret: cfg.APISecret,
		TokenURL:     cfg.BaseURL + tokenPath,
		// The API wants credentials in the form body, not a basic-auth header.
		AuthStyle: oauth2.AuthStyleInParams,
	}
	tok, err := cc.Token(context.WithValue(ctx, oauth2.HTTPClient, httpClient))
	if err != nil {
		return nil, fmt.Errorf("amadeus.New: obtain token: %w", err)
	}
	// Log the expiry, never the token itself.
	log.Debug("flight API token obtained", "expires_at", tok.Expiry)

	return &Client{
		http:     httpClient,
		baseURL:  cfg.BaseURL,
		currency: cfg.Currency,
		token:    tok.AccessToken,
		log:      log,
	}, nil
}

// ResolveIATACode looks city up against the location endpoint and returns
// the IATA code of the first match (at most two matches are requested).
// Zero matches, a transport or HTTP failure, and a blank code field all
// return CodeUnresolved. Callers compare against the sentinel; they never
// handle an error here.
func (c *Client) ResolveIATACode(ctx context.Context, city string) string {
	q := url.Values{}
	q.Set("keyword", city)
	q.Set("max", maxLocationResults)
	q.Set("include", "AIRPORTS")

	var payload struct {
		Data []struct {
			IATACode string `json:"iataCode"`
		} `json:"data"`
	}
	if err := c.get(ctx, locationPath, q, &payload); err != nil {
		c.log.Warn("IATA lookup failed", "city", city, "error", err)
		return CodeUnresolved
	}
	if len(payload.Data) == 0 || payload.Data[0].IATACode == "" {
		c.log.Warn("no IATA code found", "city", city)
		return CodeUnresolved
	}
	return payload.Data[0].IATACode
}

// SearchOffers queries round-trip offers for one adult between two IATA
// codes, departing on windowStart and returning on windowEnd (sent as
// calendar dates), priced in the configured currency and capped at ten
// results. direct restricts the search to non-stop itineraries.
//
// Any failure, whether transport, HTTP status, or a malformed body, is
// logged and reported as nil: the explicit no-result signal the workflow
// expects.
func (c *Client) SearchOffers(ctx context.Context, origin, dest string, windowStart, windowEnd time.Time, direct bool) *OfferSet {
	q := url.Values{}
	q.Set("originLocationCode", origin)
	q.Set("destinationLocationCode", dest)
	q.Set("departureDate", windowStart.Format(time.DateOnly))
	q.Set("returnDate", windowEnd.Format(time.DateOnly))
	q.Set("adults", "1")
	q.Set("nonStop", strconv.FormatBool(direct))
	q.Set("currencyCode", c.currency)
	q.Set("max", maxOfferResults)

	var set OfferSet
	if err := c.get(ctx, offersPath, q, &set); err != nil {
		c.log.Error("offer search failed", "origin", origin, "destination", dest, "error", err)
		return nil
	}
	return &set
}

// get issues a bearer-authenticated GET against path and decodes the 2xx
// JSON response body into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
