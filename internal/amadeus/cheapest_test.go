package amadeus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpalmeida/flight-deals/internal/amadeus"
	"github.com/rpalmeida/flight-deals/internal/domain"
)

// roundTrip builds one raw offer. The outbound leg flies the given airport
// path ("LON","PAR" is direct, "LON","AMS","PAR" has one stop); the return
// leg is a single segment back to the first airport.
func roundTrip(grandTotal string, path ...string) amadeus.Offer {
	segments := make([]amadeus.Segment, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		segments = append(segments, amadeus.Segment{
			Departure: amadeus.Endpoint{IATACode: path[i], At: "2026-09-14T06:25:00"},
			Arrival:   amadeus.Endpoint{IATACode: path[i+1], At: "2026-09-14T09:40:00"},
		})
	}
	return amadeus.Offer{
		Itineraries: []amadeus.Itinerary{
			{Segments: segments},
			{Segments: []amadeus.Segment{{
				Departure: amadeus.Endpoint{IATACode: path[len(path)-1], At: "2026-10-02T17:10:00"},
				Arrival:   amadeus.Endpoint{IATACode: path[0], At: "2026-10-02T19:05:00"},
			}}},
		},
		Price: amadeus.Price{GrandTotal: grandTotal},
	}
}

func set(offers ...amadeus.Offer) *amadeus.OfferSet {
	return &amadeus.OfferSet{Data: offers}
}

// TestCheapest_picksLowestPrice verifies that the minimum wins regardless of
// its position in the set.
func TestCheapest_picksLowestPrice(t *testing.T) {
	quote, ok := amadeus.Cheapest(set(
		roundTrip("52.10", "LON", "PAR"),
		roundTrip("45.00", "LON", "PAR"),
		roundTrip("61.30", "LON", "PAR"),
	))

	require.True(t, ok)
	assert.Equal(t, 45.00, quote.Price)
}

// TestCheapest_tieKeepsFirstOffer verifies tie-breaking: a later offer at
// the same price never displaces the incumbent.
func TestCheapest_tieKeepsFirstOffer(t *testing.T) {
	first := roundTrip("45.00", "LON", "PAR")
	second := roundTrip("45.00", "LON", "PAR")
	second.Itineraries[0].Segments[0].Departure.At = "2026-09-15T06:25:00"

	quote, ok := amadeus.Cheapest(set(first, second))

	require.True(t, ok)
	assert.Equal(t, "2026-09-14", quote.DepartDate)
}

// TestCheapest_normalizesFields verifies the full mapping from one raw
// direct offer to a quote.
func TestCheapest_normalizesFields(t *testing.T) {
	quote, ok := amadeus.Cheapest(set(roundTrip("54.00", "LON", "PAR")))

	require.True(t, ok)
	assert.Equal(t, domain.OfferQuote{
		Price:              54.00,
		OriginAirport:      "LON",
		DestinationAirport: "PAR",
		DepartDate:         "2026-09-14",
		ReturnDate:         "2026-10-02",
		Stops:              0,
	}, quote)
}

// TestCheapest_countsStopsOnOutboundLeg verifies that stops are intermediate
// landings on the outbound leg only and that the destination is the leg's
// final arrival, not an intermediate airport.
func TestCheapest_countsStopsOnOutboundLeg(t *testing.T) {
	quote, ok := amadeus.Cheapest(set(roundTrip("412.80", "LON", "AMS", "DXB", "SYD")))

	require.True(t, ok)
	assert.Equal(t, 2, quote.Stops)
	assert.Equal(t, "SYD", quote.DestinationAirport)
	assert.Equal(t, "LON", quote.OriginAirport)
}

// TestCheapest_nilSet verifies that a failed search (nil) reports
// unavailable instead of panicking.
func TestCheapest_nilSet(t *testing.T) {
	quote, ok := amadeus.Cheapest(nil)

	assert.False(t, ok)
	assert.Zero(t, quote)
}

// TestCheapest_emptySet verifies that zero offers report unavailable.
func TestCheapest_emptySet(t *testing.T) {
	_, ok := amadeus.Cheapest(set())

	assert.False(t, ok)
}

// TestCheapest_skipsMalformedOffers verifies that structurally broken
// offers are passed over without disturbing selection among the rest.
func TestCheapest_skipsMalformedOffers(t *testing.T) {
	oneWay := roundTrip("10.00", "LON", "PAR")
	oneWay.Itineraries = oneWay.Itineraries[:1] // missing the return leg

	noSegments := roundTrip("11.00", "LON", "PAR")
	noSegments.Itineraries[0].Segments = nil

	badPrice := roundTrip("n/a", "LON", "PAR")

	quote, ok := amadeus.Cheapest(set(oneWay, noSegments, badPrice, roundTrip("45.00", "LON", "PAR")))

	require.True(t, ok)
	assert.Equal(t, 45.00, quote.Price)
}

// TestCheapest_allOffersMalformed verifies that a set with nothing usable
// reports unavailable rather than a zero-priced quote.
func TestCheapest_allOffersMalformed(t *testing.T) {
	oneWay := roundTrip("10.00", "LON", "PAR")
	oneWay.Itineraries = oneWay.Itineraries[:1]

	_, ok := amadeus.Cheapest(set(oneWay, roundTrip("", "LON", "PAR")))

	assert.False(t, ok)
}

// TestCheapest_rejectsNonFinitePrices verifies that negative, NaN, and
// infinite grand totals never become the minimum.
func TestCheapest_rejectsNonFinitePrices(t *testing.T) {
	quote, ok := amadeus.Cheapest(set(
		roundTrip("-10.00", "LON", "PAR"),
		roundTrip("NaN", "LON", "PAR"),
		roundTrip("+Inf", "LON", "PAR"),
		roundTrip("45.00", "LON", "PAR"),
	))

	require.True(t, ok)
	assert.Equal(t, 45.00, quote.Price)
}

// TestCheapest_zeroPriceIsValid confirms that a free flight, however
// unlikely, is a legal minimum. Only negative prices are rejected.
func TestCheapest_zeroPriceIsValid(t *testing.T) {
	quote, ok := amadeus.Cheapest(set(
		roundTrip("0.00", "LON", "PAR"),
		roundTrip("45.00", "LON", "PAR"),
	))

	require.True(t, ok)
	assert.Equal(t, 0.00, quote.Price)
}
