// Package service contains the deal-finding workflow: the one place where
// the spreadsheet store, the flight API, and the notification channels come
// together. No transport code lives here. The workflow depends on small
// interfaces and is unit-tested entirely with mocks.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rpalmeida/flight-deals/internal/amadeus"
	"github.com/rpalmeida/flight-deals/internal/domain"
	"github.com/rpalmeida/flight-deals/internal/notify"
)

// DestinationStore defines the spreadsheet operations the workflow depends
// on. The interface lives here, in the consumer package, so tests can
// inject a mock without a remote store.
type DestinationStore interface {
	// ListDestinations returns every tracked destination row in sheet order.
	ListDestinations(ctx context.Context) ([]domain.Destination, error)

	// UpdateDestinationIATA overwrites the IATA code of the row with the
	// given id.
	UpdateDestinationIATA(ctx context.Context, id int64, code string) error

	// ListCustomers returns every subscribed customer row.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// FlightSearcher defines the flight API operations the workflow depends on.
// Both soft-fail by contract: ResolveIATACode returns amadeus.CodeUnresolved
// and SearchOffers returns nil instead of surfacing an error.
type FlightSearcher interface {
	ResolveIATACode(ctx context.Context, city string) string
	SearchOffers(ctx context.Context, origin, dest string, windowStart, windowEnd time.Time, direct bool) *amadeus.OfferSet
}

// Notifier defines the outbound channels deals are dispatched to.
type Notifier interface {
	SendEmail(ctx context.Context, recipients []string, subject, body string) []notify.SendResult
	SendSMS(body string) error
	SendWhatsApp(body string) error
}

// emailSubject is the subject line of every deal alert.
const emailSubject = "Low price alert!"

// searchWindowDays is how far past today the return date of the searched
// round-trip window lies. The departure date is always tomorrow.
const searchWindowDays = 180

// DealFinder runs one pass over the tracked destinations: backfill missing
// IATA codes, find each destination's cheapest round trip, and alert every
// customer when a price undercuts the recorded threshold.
type DealFinder struct {
	store    DestinationStore
	flights  FlightSearcher
	notifier Notifier
	log      *slog.Logger

	origin     string
	currency   string
	directOnly bool
	smsOn      bool
	whatsappOn bool
	now        func() time.Time
}

// Option configures optional DealFinder behavior.
type Option func(*DealFinder)

// WithSMS switches the SMS channel on for deal alerts.
func WithSMS() Option {
	return func(d *DealFinder) { d.smsOn = true }
}

// WithWhatsApp switches the WhatsApp channel on for deal alerts.
func WithWhatsApp() Option {
	return func(d *DealFinder) { d.whatsappOn = true }
}

// WithDirectOnly controls whether searches are restricted to non-stop
// itineraries. The default is true.
func WithDirectOnly(direct bool) Option {
	return func(d *DealFinder) { d.directOnly = direct }
}

// WithNow overrides the clock the search window is derived from.
func WithNow(now func() time.Time) Option {
	return func(d *DealFinder) { d.now = now }
}

// NewDealFinder constructs the workflow. origin is the fixed departure IATA
// code, currency the ISO 4217 code alerts quote prices in. The currency
// must match the one the searcher prices offers in, or alerts will label
// amounts with the wrong unit.
func NewDealFinder(store DestinationStore, flights FlightSearcher, notifier Notifier, origin, currency string, log *slog.Logger, opts ...Option) *DealFinder {
	d := &DealFinder{
		store:      store,
		flights:    flights,
		notifier:   notifier,
		log:        log,
		origin:     origin,
		currency:   currency,
		directOnly: true,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes one complete deal-finding pass and returns when every
// destination has been considered. Spreadsheet failures abort the pass;
// flight-search and notification failures are logged and skipped, so one
// bad destination never starves the rest.
func (d *DealFinder) Run(ctx context.Context) error {
	destinations, err := d.store.ListDestinations(ctx)
	if err != nil {
		return fmt.Errorf("service.DealFinder.Run: %w", err)
	}
	if len(destinations) == 0 {
		d.log.Info("no destinations tracked, nothing to do")
		return nil
	}

	// A blank code on the first row means the sheet was just (re)seeded:
	// refresh the code of every row, not only the blank ones, so stale
	// codes are corrected in the same pass.
	if destinations[0].IATACode == "" {
		d.log.Info("backfilling IATA codes", "destinations", len(destinations))
		for i := range destinations {
			code := d.flights.ResolveIATACode(ctx, destinations[i].City)
			destinations[i].IATACode = code
			if err := d.store.UpdateDestinationIATA(ctx, destinations[i].ID, code); err != nil {
				return fmt.Errorf("service.DealFinder.Run: backfill %q: %w", destinations[i].City, err)
			}
			d.log.Debug("IATA code updated", "city", destinations[i].City, "iata", code)
		}
	}

	now := d.now()
	windowStart := now.AddDate(0, 0, 1)
	windowEnd := now.AddDate(0, 0, searchWindowDays)

	for _, dest := range destinations {
		d.log.Info("searching flights", "city", dest.City, "iata", dest.IATACode)

		// An unresolved ("N/A") code is searched like any other; the
		// search fails softly and the destination is skipped below.
		offers := d.flights.SearchOffers(ctx, d.origin, dest.IATACode, windowStart, windowEnd, d.directOnly)
		quote, ok := amadeus.Cheapest(offers)
		if !ok {
			d.log.Info("no flights found", "city", dest.City)
			continue
		}

		if quote.Price >= dest.LowestPrice {
			d.log.Info("no better deal", "city", dest.City, "price", quote.Price, "threshold", dest.LowestPrice)
			continue
		}

		d.log.Info("deal found", "city", dest.City, "price", quote.Price, "threshold", dest.LowestPrice)
		if err := d.dispatch(ctx, quote); err != nil {
			return fmt.Errorf("service.DealFinder.Run: %w", err)
		}
	}
	return nil
}

// dispatch fans one found deal out to every subscribed customer. Customers
// are fetched per deal, so a row added mid-pass still gets later alerts.
// Only the customer fetch can fail hard; channel failures are reported per
// recipient by the notifier and tolerated here.
func (d *DealFinder) dispatch(ctx context.Context, quote domain.OfferQuote) error {
	customers, err := d.store.ListCustomers(ctx)
	if err != nil {
		return err
	}

	recipients := make([]string, 0, len(customers))
	for _, c := range customers {
		recipients = append(recipients, c.Email)
	}

	body := dealMessage(quote, d.currency)

	results := d.notifier.SendEmail(ctx, recipients, emailSubject, body)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	d.log.Info("deal alert dispatched", "recipients", len(recipients), "failed", failed)

	if d.smsOn {
		if err := d.notifier.SendSMS(body); err != nil {
			d.log.Error("SMS dispatch failed", "error", err)
		}
	}
	if d.whatsappOn {
		if err := d.notifier.SendWhatsApp(body); err != nil {
			d.log.Error("WhatsApp dispatch failed", "error", err)
		}
	}
	return nil
}

// dealMessage composes the alert text. The stop-count line appears only for
// itineraries with at least one stop.
func dealMessage(q domain.OfferQuote, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Low price alert! Only %s %s to fly from %s to %s, from %s to %s.",
		currency, formatPrice(q.Price), q.OriginAirport, q.DestinationAirport, q.DepartDate, q.ReturnDate)
	if q.Stops > 0 {
		fmt.Fprintf(&b, "\nThe flight has %d stop(s).", q.Stops)
	}
	return b.String()
}

// formatPrice renders an amount without trailing zeros (45 rather than
// 45.000000), matching how prices read in a short alert.
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
