package models

import (
	"strings"
	"time"
)

// BookingStatus is the canonical, fixed-capitalization booking status.
// Input is parsed case-insensitively at the boundary; storage and
// comparisons always use the canonical form.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
	StatusCompleted BookingStatus = "Completed"
)

// ParseStatus resolves a raw status string to its canonical form.
// It returns false if the value is not a recognized status.
func ParseStatus(raw string) (BookingStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return StatusPending, true
	case "confirmed":
		return StatusConfirmed, true
	case "cancelled":
		return StatusCancelled, true
	case "completed":
		return StatusCompleted, true
	default:
		return "", false
	}
}

// Active reports whether the status still occupies its slot.
func (s BookingStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// AppointmentTypes is the fixed set of bookable appointment categories.
var AppointmentTypes = []string{
	"Counseling Session",
	"Medical Consultation",
	"Mental Health Support",
	"Mental Health Counseling",
	"Academic Counseling",
	"Academic Support",
	"Career Guidance",
}

// IsValidAppointmentType checks a requested type against the fixed set.
func IsValidAppointmentType(t string) bool {
	for _, v := range AppointmentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Booking represents one appointment request.
//
// A booking carries two representations of when it occurs: the legacy
// pair (Date "2006-01-02" + Time "15:04") and the newer pair
// (PreferredDate timestamp + PreferredTime). After normalization both
// pairs agree; the preferred pair is the source of truth.
type Booking struct {
	ID              string     `bson:"id" json:"id"`
	UserID          string     `bson:"user_id" json:"userId,omitempty"` // empty for guest bookings
	FullName        string     `bson:"full_name" json:"fullName"`
	Email           string     `bson:"email" json:"email"`
	AppointmentType string     `bson:"appointment_type" json:"appointmentType"`
	Date            string     `bson:"date" json:"date"`
	Time            string     `bson:"time" json:"time"`
	PreferredDate   *time.Time `bson:"preferred_date,omitempty" json:"preferredDate,omitempty"`
	PreferredTime   string     `bson:"preferred_time" json:"preferredTime,omitempty"`
	AdditionalNotes string     `bson:"additional_notes" json:"additionalNotes"`

	Status BookingStatus `bson:"status" json:"status"`

	// Confirmation metadata, set only on transition into Confirmed.
	ConfirmedBy       string     `bson:"confirmed_by,omitempty" json:"confirmedBy,omitempty"`
	ConfirmedAt       *time.Time `bson:"confirmed_at,omitempty" json:"confirmedAt,omitempty"`
	ConfirmedDateTime *time.Time `bson:"confirmed_date_time,omitempty" json:"confirmedDateTime,omitempty"`

	// Cancellation metadata, set only on transition into Cancelled.
	CancellationReason string `bson:"cancellation_reason" json:"cancellationReason,omitempty"`

	AdminNotes string `bson:"admin_notes" json:"adminNotes,omitempty"`

	// SlotKey is set while the booking is active and backs the unique
	// slot index; it is cleared on Cancelled/Completed so the slot can
	// be reused.
	SlotKey string `bson:"slot_key,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// OwnerKind discriminates the booking identity union.
type OwnerKind int

const (
	OwnerAccount OwnerKind = iota + 1 // linked to a registered account
	OwnerGuest                        // identified solely by email
)

// Owner is the identity a booking belongs to: either a registered
// account or a guest known only by email.
type Owner struct {
	Kind      OwnerKind
	AccountID string
	Email     string
}

// Owner resolves the identity union for this booking.
func (b *Booking) Owner() Owner {
	if b.UserID != "" {
		return Owner{Kind: OwnerAccount, AccountID: b.UserID, Email: b.Email}
	}
	return Owner{Kind: OwnerGuest, Email: b.Email}
}

// Matches reports whether the supplied caller identity owns this
// booking. Account bookings match on account id; guest bookings match
// on email, case-insensitively.
func (o Owner) Matches(accountID, email string) bool {
	switch o.Kind {
	case OwnerAccount:
		return accountID != "" && o.AccountID == accountID
	case OwnerGuest:
		return email != "" && strings.EqualFold(o.Email, email)
	default:
		return false
	}
}
