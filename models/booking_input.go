package models

// BookingCreateInput is the caller-supplied payload for a new booking.
// Exactly one complete date/time pair is required; the other pair is
// derived during normalization.
type BookingCreateInput struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	AppointmentType string `json:"appointmentType"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	PreferredDate   string `json:"preferredDate"`
	PreferredTime   string `json:"preferredTime"`
	AdditionalNotes string `json:"additionalNotes"`
}

// StatusUpdateInput is the admin payload for a status transition.
type StatusUpdateInput struct {
	Status             string  `json:"status"`
	AdminNotes         *string `json:"adminNotes"`
	ConfirmedDateTime  string  `json:"confirmedDateTime"`
	CancellationReason string `json:"cancellationReason"`
}

// OwnedUpdateInput is the owner payload for editing a pending booking.
// Only these fields may be patched; anything else is ignored.
type OwnedUpdateInput struct {
	FullName           string  `json:"fullName"`
	AdditionalNotes    *string `json:"additionalNotes"`
	CancellationReason string  `json:"cancellationReason"`
}

// BookingQuery captures list filters shared by the owner-scoped and
// admin listings.
type BookingQuery struct {
	// Owner scope; both empty means unscoped (admin listing).
	OwnerID    string
	OwnerEmail string

	Search    string        // case-insensitive substring over name/email/type/notes
	Status    BookingStatus // empty means all statuses
	SortBy    string        // whitelisted field name, default createdAt
	SortOrder string        // "asc" or "desc", default desc
	Page      int
	Limit     int
}

// Caller identifies who is invoking an operation.
type Caller struct {
	ID      string
	Email   string
	IsAdmin bool
}

// Authenticated reports whether the caller is signed in.
func (c Caller) Authenticated() bool {
	return c.ID != ""
}
