package domain

// OfferQuote is the normalized form of one round-trip flight offer: the
// only fields the alerting workflow reads out of a raw search result.
// Dates are calendar days in "YYYY-MM-DD" form, airports are IATA codes,
// and Stops counts intermediate landings on the outbound leg (0 = direct).
// Quotes are transient values, never persisted anywhere.
type OfferQuote struct {
	Price              float64
	OriginAirport      string
	DestinationAirport string
	DepartDate         string
	ReturnDate         string
	Stops              int
}
