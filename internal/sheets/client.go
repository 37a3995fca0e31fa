// Package sheets contains all data access against the remote spreadsheet
// store, a REST facade over two sheets: destinations ("prices") and
// customers ("users"). It plays the role a database repo would play in a
// served application. No business logic lives here, only HTTP and type
// mapping.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rpalmeida/flight-deals/internal/domain"
)

// Config carries the endpoint URLs and basic-auth credentials New needs.
type Config struct {
	// PricesURL is the destinations table endpoint. Row updates go to
	// PricesURL/{id}.
	PricesURL string

	// UsersURL is the customers table endpoint.
	UsersURL string

	// Username and Password are sent as HTTP basic auth on every request.
	Username string
	Password string
}

// Client performs authenticated reads and writes against the spreadsheet
// store. Every call re-fetches; the client holds no state beyond its
// configuration, so rows edited by hand between calls are picked up.
type Client struct {
	http      *http.Client
	pricesURL string
	usersURL  string
	username  string
	password  string
}

// New constructs a Client that speaks to the store through httpClient.
// Pass nil to use http.DefaultClient.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:      httpClient,
		pricesURL: cfg.PricesURL,
		usersURL:  cfg.UsersURL,
		username:  cfg.Username,
		password:  cfg.Password,
	}
}

// ListDestinations fetches every row of the destinations sheet, in sheet
// order. Returns an error wrapping domain.ErrTransport when the store
// answers non-2xx or cannot be reached.
func (c *Client) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	var payload struct {
		Prices []domain.Destination `json:"prices"`
	}
	if err := c.get(ctx, c.pricesURL, &payload); err != nil {
		return nil, fmt.Errorf("sheets.Client.ListDestinations: %w", err)
	}
	return payload.Prices, nil
}

// UpdateDestinationIATA overwrites the IATA code of the destination row
// identified by id. Only that one field is touched; city and lowest price
// are left alone. Repeated calls simply overwrite.
func (c *Client) UpdateDestinationIATA(ctx context.Context, id int64, code string) error {
	// The store keys update bodies by the singular sheet name.
	body, err := json.Marshal(map[string]map[string]string{
		"price": {"iataCode": code},
	})
	if err != nil {
		return fmt.Errorf("sheets.Client.UpdateDestinationIATA: marshal body: %w", err)
	}

	url := fmt.Sprintf("%s/%d", c.pricesURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sheets.Client.UpdateDestinationIATA: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sheets.Client.UpdateDestinationIATA: %w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("sheets.Client.UpdateDestinationIATA: %w", err)
	}
	return nil
}

// ListCustomers fetches every row of the customers sheet, in sheet order.
// Returns an error wrapping domain.ErrTransport when the store answers
// non-2xx or cannot be reached.
func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var payload struct {
		Users []domain.Customer `json:"users"`
	}
	if err := c.get(ctx, c.usersURL, &payload); err != nil {
		return nil, fmt.Errorf("sheets.Client.ListCustomers: %w", err)
	}
	return payload.Users, nil
}

// get issues an authenticated GET against url and decodes the 2xx JSON
// response body into out.
func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// checkStatus maps any non-2xx response to a domain.ErrTransport error
// carrying the status code and a bounded snippet of the body.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%w: status %d: %s", domain.ErrTransport, resp.StatusCode, strings.TrimSpace(string(snippet)))
}
