package domain

// Customer is one subscriber row of the remote users sheet. Rows are
// read-only from this application's perspective; sign-up happens elsewhere.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
}
