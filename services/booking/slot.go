package booking

import (
	"fmt"
	"time"

	"campuscare/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// cancelWindow is how far ahead of the appointment a cancellation
	// must happen.
	cancelWindow = 24 * time.Hour
)

// Normalize derives the missing date/time pair so both representations
// agree. The preferred (typed) pair is the source of truth when both
// are supplied. It fails when neither pair is complete, or when the
// legacy date string cannot be parsed. Normalizing twice is a no-op.
func Normalize(b *models.Booking) error {
	if b.PreferredDate != nil && b.PreferredTime != "" {
		day := truncateToDay(*b.PreferredDate)
		b.PreferredDate = &day
		b.Date = day.Format(dateLayout)
		b.Time = b.PreferredTime
		return nil
	}
	if b.Date != "" && b.Time != "" {
		parsed, err := time.ParseInLocation(dateLayout, b.Date, time.UTC)
		if err != nil {
			return NewValidationError(fmt.Sprintf("invalid booking date %q", b.Date))
		}
		b.PreferredDate = &parsed
		b.PreferredTime = b.Time
		return nil
	}
	return NewValidationError("a complete date and time pair is required")
}

// EffectiveDate returns the single authoritative calendar date used
// for past/future comparisons: the preferred date when present, else
// the legacy date string parsed. The second return is false when no
// well-formed date exists.
func EffectiveDate(b *models.Booking) (time.Time, bool) {
	if b.PreferredDate != nil {
		return truncateToDay(*b.PreferredDate), true
	}
	if b.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, b.Date, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

// EffectiveStart returns the appointment's start instant: the
// effective date plus the clock time when it parses, else the date at
// midnight. A malformed date fails closed.
func EffectiveStart(b *models.Booking) (time.Time, bool) {
	day, ok := EffectiveDate(b)
	if !ok {
		return time.Time{}, false
	}
	clock := b.PreferredTime
	if clock == "" {
		clock = b.Time
	}
	if t, err := time.Parse(timeLayout, clock); err == nil {
		return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), true
	}
	return day, true
}

// CanBeCancelled reports whether the booking is still active and its
// start is more than 24 hours away. Bookings without a well-formed
// date are not cancellable.
func CanBeCancelled(b *models.Booking) bool {
	if !b.Status.Active() {
		return false
	}
	start, ok := EffectiveStart(b)
	if !ok {
		return false
	}
	return time.Until(start) > cancelWindow
}

// BelongsTo reports whether the given caller identity owns the booking.
func BelongsTo(b *models.Booking, accountID, email string) bool {
	return b.Owner().Matches(accountID, email)
}

// SlotKeyFor builds the uniqueness key for a normalized booking's
// (date, time) slot.
func SlotKeyFor(b *models.Booking) string {
	return b.Date + "T" + b.Time
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
