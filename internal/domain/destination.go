// Package domain contains the core data types for the flight deal finder.
// This package has zero external dependencies and is imported by every other
// internal package (sheets, amadeus, notify, service).
package domain

// Destination is one tracked row of the remote price sheet: a city the
// finder watches, the IATA code searches run against, and the price a new
// offer must undercut before anyone is notified.
// JSON tags match the field names the spreadsheet store serves.
type Destination struct {
	ID          int64   `json:"id"`
	City        string  `json:"city"`
	IATACode    string  `json:"iataCode"` // empty until backfilled
	LowestPrice float64 `json:"lowestPrice"`
}
