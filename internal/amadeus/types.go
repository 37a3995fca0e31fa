package amadeus

// Wire types for the flight-offers search response. Only the fields the
// cheapest-offer selection reads are mirrored; the rest of the payload is
// ignored on decode.

// OfferSet is the raw result set of one offer search.
type OfferSet struct {
	Data []Offer `json:"data"`
}

// Offer is one priced round trip. Itinerary 0 is the outbound leg and
// itinerary 1 the return leg.
type Offer struct {
	Itineraries []Itinerary `json:"itineraries"`
	Price       Price       `json:"price"`
}

// Itinerary is one leg of travel, flown as one or more segments.
type Itinerary struct {
	Segments []Segment `json:"segments"`
}

// Segment is a single flight within an itinerary.
type Segment struct {
	Departure Endpoint `json:"departure"`
	Arrival   Endpoint `json:"arrival"`
}

// Endpoint is one end of a segment: the airport, and a local ISO-8601
// timestamp such as "2026-09-14T06:25:00".
type Endpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

// Price carries the offer's totals. The API serializes amounts as strings.
type Price struct {
	GrandTotal string `json:"grandTotal"`
}
