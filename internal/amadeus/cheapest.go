package amadeus

import (
	"math"
	"strconv"
	"strings"

	"github.com/rpalmeida/flight-deals/internal/domain"
)

// Cheapest reduces a raw offer set to its single lowest-priced quote.
// The boolean reports availability: a nil set, an empty set, and a set
// whose offers are all malformed yield (zero value, false).
//
// Ties keep the first-seen offer. A later offer replaces the incumbent
// only when it is strictly cheaper.
func Cheapest(set *OfferSet) (domain.OfferQuote, bool) {
	if set == nil {
		return domain.OfferQuote{}, false
	}

	var best domain.OfferQuote
	found := false
	for _, offer := range set.Data {
		q, ok := quoteFrom(offer)
		if !ok {
			continue
		}
		if !found || q.Price < best.Price {
			best = q
			found = true
		}
	}
	return best, found
}

// quoteFrom normalizes one raw offer. Offers missing either leg, offers
// with an empty segment list, and offers whose price fails to parse as a
// finite non-negative number are rejected rather than propagated.
func quoteFrom(o Offer) (domain.OfferQuote, bool) {
	if len(o.Itineraries) < 2 {
		return domain.OfferQuote{}, false
	}
	out, ret := o.Itineraries[0], o.Itineraries[1]
	if len(out.Segments) == 0 || len(ret.Segments) == 0 {
		return domain.OfferQuote{}, false
	}

	price, err := strconv.ParseFloat(o.Price.GrandTotal, 64)
	if err != nil || price < 0 || math.IsInf(price, 0) || math.IsNaN(price) {
		return domain.OfferQuote{}, false
	}

	// Stops are intermediate landings on the outbound leg, so the final
	// destination is the arrival of the leg's last segment.
	stops := len(out.Segments) - 1
	return domain.OfferQuote{
		Price:              price,
		OriginAirport:      out.Segments[0].Departure.IATACode,
		DestinationAirport: out.Segments[stops].Arrival.IATACode,
		DepartDate:         datePart(out.Segments[0].Departure.At),
		ReturnDate:         datePart(ret.Segments[0].Departure.At),
		Stops:              stops,
	}, true
}

// datePart returns the calendar-day portion of an ISO-8601 timestamp
// ("2026-09-14T06:25:00" becomes "2026-09-14").
func datePart(ts string) string {
	d, _, _ := strings.Cut(ts, "T")
	return d
}
