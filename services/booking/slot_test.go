package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuscare/models"
)

func TestNormalizeLegacyPair(t *testing.T) {
	b := &models.Booking{Date: "2026-10-01", Time: "14:30"}

	require.NoError(t, Normalize(b))

	require.NotNil(t, b.PreferredDate)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), *b.PreferredDate)
	assert.Equal(t, "14:30", b.PreferredTime)
	assert.Equal(t, "2026-10-01", b.Date)
}

func TestNormalizePreferredPairWins(t *testing.T) {
	preferred := time.Date(2026, 11, 5, 16, 45, 0, 0, time.UTC)
	b := &models.Booking{
		Date:          "2026-10-01",
		Time:          "14:30",
		PreferredDate: &preferred,
		PreferredTime: "09:00",
	}

	require.NoError(t, Normalize(b))

	assert.Equal(t, "2026-11-05", b.Date)
	assert.Equal(t, "09:00", b.Time)
	assert.Equal(t, time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC), *b.PreferredDate)
}

func TestNormalizeIdempotent(t *testing.T) {
	b := &models.Booking{Date: "2026-10-01", Time: "14:30"}
	require.NoError(t, Normalize(b))
	first := *b

	require.NoError(t, Normalize(b))
	assert.Equal(t, first.Date, b.Date)
	assert.Equal(t, first.Time, b.Time)
	assert.Equal(t, first.PreferredTime, b.PreferredTime)
	assert.True(t, first.PreferredDate.Equal(*b.PreferredDate))
}

func TestNormalizeRejectsIncompleteAndMalformed(t *testing.T) {
	err := Normalize(&models.Booking{Time: "14:30"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, ErrKind(err))

	err = Normalize(&models.Booking{Date: "10/01/2026", Time: "14:30"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, ErrKind(err))
}

func TestEffectiveDateFromEitherPair(t *testing.T) {
	legacy := &models.Booking{Date: "2026-10-01", Time: "14:30"}
	preferred := time.Date(2026, 10, 1, 11, 0, 0, 0, time.UTC)
	typed := &models.Booking{PreferredDate: &preferred, PreferredTime: "14:30"}

	d1, ok := EffectiveDate(legacy)
	require.True(t, ok)
	d2, ok := EffectiveDate(typed)
	require.True(t, ok)
	assert.True(t, d1.Equal(d2))

	_, ok = EffectiveDate(&models.Booking{Date: "not-a-date"})
	assert.False(t, ok)
	_, ok = EffectiveDate(&models.Booking{})
	assert.False(t, ok)
}

func TestEffectiveStart(t *testing.T) {
	b := &models.Booking{Date: "2026-10-01", Time: "14:30"}
	start, ok := EffectiveStart(b)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 1, 14, 30, 0, 0, time.UTC), start)

	// Unparseable clock falls back to midnight.
	b = &models.Booking{Date: "2026-10-01", Time: "around noon"}
	start, ok = EffectiveStart(b)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), start)

	_, ok = EffectiveStart(&models.Booking{Date: "bad"})
	assert.False(t, ok)
}

func TestCanBeCancelled(t *testing.T) {
	farOut := time.Now().UTC().Add(72 * time.Hour).Format(dateLayout)
	soon := time.Now().UTC().Format(dateLayout)

	assert.True(t, CanBeCancelled(&models.Booking{
		Status: models.StatusPending, Date: farOut, Time: "10:00",
	}))
	assert.True(t, CanBeCancelled(&models.Booking{
		Status: models.StatusConfirmed, Date: farOut, Time: "10:00",
	}))

	// Inside the 24-hour window.
	assert.False(t, CanBeCancelled(&models.Booking{
		Status: models.StatusPending, Date: soon, Time: "23:59",
	}))

	// Inactive statuses are never cancellable.
	assert.False(t, CanBeCancelled(&models.Booking{
		Status: models.StatusCancelled, Date: farOut, Time: "10:00",
	}))
	assert.False(t, CanBeCancelled(&models.Booking{
		Status: models.StatusCompleted, Date: farOut, Time: "10:00",
	}))

	// No well-formed date.
	assert.False(t, CanBeCancelled(&models.Booking{
		Status: models.StatusPending, Date: "bad", Time: "10:00",
	}))
}

func TestOwnerMatching(t *testing.T) {
	account := &models.Booking{UserID: "u1", Email: "student@uni.edu"}
	assert.True(t, BelongsTo(account, "u1", ""))
	assert.False(t, BelongsTo(account, "u2", "student@uni.edu"))
	// Account bookings never match by email alone.
	assert.False(t, BelongsTo(account, "", "student@uni.edu"))

	guest := &models.Booking{Email: "Guest@Uni.edu"}
	assert.True(t, BelongsTo(guest, "", "guest@uni.edu"))
	assert.True(t, BelongsTo(guest, "u1", "GUEST@UNI.EDU"))
	assert.False(t, BelongsTo(guest, "u1", ""))
}

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]models.BookingStatus{
		"pending":     models.StatusPending,
		"Pending":     models.StatusPending,
		"CONFIRMED":   models.StatusConfirmed,
		" cancelled ": models.StatusCancelled,
		"completed":   models.StatusCompleted,
	} {
		got, ok := models.ParseStatus(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got)
	}

	_, ok := models.ParseStatus("rejected")
	assert.False(t, ok)
}

func TestSlotKeyFor(t *testing.T) {
	b := &models.Booking{Date: "2026-10-01", Time: "14:30"}
	assert.Equal(t, "2026-10-01T14:30", SlotKeyFor(b))
}
