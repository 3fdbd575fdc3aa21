package models

// UserSummary is the public view of an account attached to a booking
// response (the owner or the confirming admin).
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// BookingResponse is the API view of a booking with identities
// resolved and the canonical date/time pair surfaced.
type BookingResponse struct {
	Booking

	User              *UserSummary `json:"user,omitempty"`
	Confirmer         *UserSummary `json:"confirmer,omitempty"`
	FormattedDateTime string       `json:"formattedDateTime"`
	CanBeCancelled    bool         `json:"canBeCancelled"`
}

// Pagination describes the page window of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// BookingStats aggregates booking counts by status for a listing scope.
type BookingStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

// BookingListResult is the full listing payload: one page of bookings
// plus pagination and scope-wide statistics.
type BookingListResult struct {
	Bookings   []BookingResponse `json:"bookings"`
	Pagination Pagination        `json:"pagination"`
	Statistics BookingStats      `json:"statistics"`
}
