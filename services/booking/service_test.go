package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "campuscare/database/repository/booking"
	"campuscare/models"
)

// memBookingRepo is an in-memory BookingRepository for service tests.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: map[string]*models.Booking{}}
}

func (r *memBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.SlotKey != "" {
		for _, existing := range r.bookings {
			if existing.SlotKey == b.SlotKey {
				return bookingRepo.ErrSlotTaken
			}
		}
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (r *memBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.SlotKey != "" {
		for id, existing := range r.bookings {
			if id != b.ID && existing.SlotKey == b.SlotKey {
				return bookingRepo.ErrSlotTaken
			}
		}
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *memBookingRepo) FindActiveBySlot(ctx context.Context, date, timeOfDay, excludeID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == excludeID || !b.Status.Active() {
			continue
		}
		if b.Date == date && (b.Time == timeOfDay || b.PreferredTime == timeOfDay) {
			clone := *b
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) ListPastConfirmed(ctx context.Context, before string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.StatusConfirmed && b.Date < before {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) List(ctx context.Context, q models.BookingQuery) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if q.OwnerID != "" || q.OwnerEmail != "" {
			if !BelongsTo(b, q.OwnerID, q.OwnerEmail) {
				continue
			}
		}
		if q.Status != "" && b.Status != q.Status {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(b.FullName), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *memBookingRepo) CountByStatus(ctx context.Context, ownerID, ownerEmail string) (models.BookingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats models.BookingStats
	for _, b := range r.bookings {
		if ownerID != "" || ownerEmail != "" {
			if !BelongsTo(b, ownerID, ownerEmail) {
				continue
			}
		}
		stats.Total++
		switch b.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusConfirmed:
			stats.Confirmed++
		case models.StatusCancelled:
			stats.Cancelled++
		case models.StatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}

func newTestService() (*DefaultBookingService, *memBookingRepo) {
	repo := newMemBookingRepo()
	return NewDefaultBookingService(repo, nil), repo
}

func futureDate(days int) string {
	return time.Now().UTC().Add(time.Duration(days) * 24 * time.Hour).Format(dateLayout)
}

func validInput(date, clock string) models.BookingCreateInput {
	return models.BookingCreateInput{
		FullName:        "Jamie Rivera",
		Email:           "Jamie@Uni.edu",
		AppointmentType: "Counseling Session",
		Date:            date,
		Time:            clock,
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name  string
		input models.BookingCreateInput
	}{
		{"missing required fields", models.BookingCreateInput{Date: futureDate(3), Time: "10:00"}},
		{"unknown appointment type", func() models.BookingCreateInput {
			in := validInput(futureDate(3), "10:00")
			in.AppointmentType = "Palm Reading"
			return in
		}()},
		{"missing date", func() models.BookingCreateInput {
			in := validInput("", "10:00")
			return in
		}()},
		{"missing time", func() models.BookingCreateInput {
			in := validInput(futureDate(3), "")
			return in
		}()},
		{"oversized notes", func() models.BookingCreateInput {
			in := validInput(futureDate(3), "10:00")
			in.AdditionalNotes = strings.Repeat("x", maxNotesLength+1)
			return in
		}()},
		{"past date", validInput("2020-01-01", "10:00")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input, models.Caller{})
			require.Error(t, err)
			assert.Equal(t, KindValidation, ErrKind(err))
		})
	}
}

func TestCreateGuestBooking(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, validInput(futureDate(3), "10:00"), models.Caller{})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, resp.Status)
	assert.Equal(t, "jamie@uni.edu", resp.Email)
	assert.Empty(t, resp.UserID)
	assert.True(t, resp.CanBeCancelled)

	stored, err := repo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.OwnerGuest, stored.Owner().Kind)
	assert.Equal(t, SlotKeyFor(stored), stored.SlotKey)
	require.NotNil(t, stored.PreferredDate)
	assert.Equal(t, stored.Time, stored.PreferredTime)
}

func TestCreateBindsAuthenticatedOwner(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	caller := models.Caller{ID: "u1", Email: "jamie@uni.edu"}
	resp, err := svc.Create(ctx, validInput(futureDate(3), "10:00"), caller)
	require.NoError(t, err)

	stored, _ := repo.GetByID(ctx, resp.ID)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, models.OwnerAccount, stored.Owner().Kind)
}

func TestCreateSlotConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	date := futureDate(3)

	_, err := svc.Create(ctx, validInput(date, "10:00"), models.Caller{})
	require.NoError(t, err)

	_, err = svc.Create(ctx, validInput(date, "10:00"), models.Caller{})
	require.Error(t, err)
	assert.Equal(t, KindConflict, ErrKind(err))

	// A different time on the same day is free.
	_, err = svc.Create(ctx, validInput(date, "11:00"), models.Caller{})
	assert.NoError(t, err)
}

func TestCreatePreferredPairEndToEnd(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	input := models.BookingCreateInput{
		FullName:        "Jamie Rivera",
		Email:           "jamie@uni.edu",
		AppointmentType: "Counseling Session",
		PreferredDate:   "2099-01-01",
		PreferredTime:   "10:00",
	}
	resp, err := svc.Create(ctx, input, models.Caller{})
	require.NoError(t, err)

	stored, _ := repo.GetByID(ctx, resp.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "2099-01-01", stored.Date)
	assert.Equal(t, "10:00", stored.Time)
	assert.Equal(t, "2099-01-01T10:00", stored.SlotKey)

	// The same slot requested through the legacy pair collides.
	_, err = svc.Create(ctx, validInput("2099-01-01", "10:00"), models.Caller{})
	require.Error(t, err)
	assert.Equal(t, KindConflict, ErrKind(err))

	// Cancelling frees it for the legacy-pair caller.
	_, err = svc.Cancel(ctx, resp.ID, models.Caller{Email: "jamie@uni.edu"}, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, validInput("2099-01-01", "10:00"), models.Caller{})
	assert.NoError(t, err)
}

func TestCreateRejectsMalformedPreferredDate(t *testing.T) {
	svc, _ := newTestService()

	input := models.BookingCreateInput{
		FullName:        "Jamie Rivera",
		Email:           "jamie@uni.edu",
		AppointmentType: "Counseling Session",
		PreferredDate:   "01-01-2099",
		PreferredTime:   "10:00",
	}
	_, err := svc.Create(context.Background(), input, models.Caller{})
	require.Error(t, err)
	assert.Equal(t, KindValidation, ErrKind(err))
}

func TestConcurrentCreateSameSlot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	date := futureDate(3)

	const callers = 8
	results := make(chan error, callers)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < callers; i++ {
		go func() {
			start.Wait()
			_, err := svc.Create(ctx, validInput(date, "10:00"), models.Caller{})
			results <- err
		}()
	}
	start.Done()

	succeeded, conflicted := 0, 0
	for i := 0; i < callers; i++ {
		err := <-results
		switch {
		case err == nil:
			succeeded++
		case ErrKind(err) == KindConflict:
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, conflicted)
}

func TestCompletePastSweep(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	past := &models.Booking{
		ID: "past", Email: "jamie@uni.edu", Status: models.StatusConfirmed,
		Date: "2020-01-01", Time: "10:00", SlotKey: "2020-01-01T10:00",
	}
	future := &models.Booking{
		ID: "future", Email: "jamie@uni.edu", Status: models.StatusConfirmed,
		Date: futureDate(3), Time: "10:00",
	}
	pending := &models.Booking{
		ID: "pending", Email: "jamie@uni.edu", Status: models.StatusPending,
		Date: "2020-01-02", Time: "10:00",
	}
	require.NoError(t, repo.Create(ctx, past))
	require.NoError(t, repo.Create(ctx, future))
	require.NoError(t, repo.Create(ctx, pending))

	count, err := svc.CompletePast(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	swept, _ := repo.GetByID(ctx, "past")
	assert.Equal(t, models.StatusCompleted, swept.Status)
	assert.Empty(t, swept.SlotKey)

	untouched, _ := repo.GetByID(ctx, "future")
	assert.Equal(t, models.StatusConfirmed, untouched.Status)
	stillPending, _ := repo.GetByID(ctx, "pending")
	assert.Equal(t, models.StatusPending, stillPending.Status)
}

func TestCancelFreesSlot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	date := futureDate(3)

	resp, err := svc.Create(ctx, validInput(date, "10:00"), models.Caller{})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, resp.ID, models.Caller{Email: "jamie@uni.edu"}, "schedule change")
	require.NoError(t, err)

	// The slot is bookable again.
	_, err = svc.Create(ctx, validInput(date, "10:00"), models.Caller{})
	assert.NoError(t, err)
}

func TestCancelAuthorization(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, validInput(futureDate(3), "10:00"), models.Caller{})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, resp.ID, models.Caller{ID: "intruder", Email: "other@uni.edu"}, "")
	require.Error(t, err)
	assert.Equal(t, KindAuthorization, ErrKind(err))

	// Admins may cancel any booking.
	out, err := svc.Cancel(ctx, resp.ID, models.Caller{ID: "adm", IsAdmin: true}, "staff unavailable")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, out.Status)
	assert.Equal(t, "staff unavailable", out.CancellationReason)
}

func TestCancelInsideWindowRejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Today's date is always inside the 24-hour window.
	resp, err := svc.Create(ctx, validInput(time.Now().UTC().Format(dateLayout), "23:59"), models.Caller{})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, resp.ID, models.Caller{Email: "jamie@uni.edu"}, "")
	require.Error(t, err)
	assert.Equal(t, KindValidation, ErrKind(err))
}

func TestUpdateStatus(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	admin := models.Caller{ID: "adm", IsAdmin: true}

	resp, err := svc.Create(ctx, validInput(futureDate(3), "10:00"), models.Caller{})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, resp.ID, models.StatusUpdateInput{Status: "confirmed"}, models.Caller{ID: "u1"})
	require.Error(t, err)
	assert.Equal(t, KindAuthorization, ErrKind(err))

	_, err = svc.UpdateStatus(ctx, resp.ID, models.StatusUpdateInput{Status: "approved"}, admin)
	require.Error(t, err)
	assert.Equal(t, KindValidation, ErrKind(err))

	_, err = svc.UpdateStatus(ctx, "missing", models.StatusUpdateInput{Status: "confirmed"}, admin)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, ErrKind(err))

	agreed := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	out, err := svc.UpdateStatus(ctx, resp.ID, models.StatusUpdateInput{
		Status:            "Confirmed",
		ConfirmedDateTime: agreed.Format(time.RFC3339),
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, out.Status)
	assert.Equal(t, "adm", out.ConfirmedBy)
	require.NotNil(t, out.ConfirmedAt)
	require.NotNil(t, out.ConfirmedDateTime)
	assert.True(t, out.ConfirmedDateTime.Equal(agreed))

	// Completing the booking releases its slot key.
	_, err = svc.UpdateStatus(ctx, resp.ID, models.StatusUpdateInput{Status: "completed"}, admin)
	require.NoError(t, err)
	stored, _ := repo.GetByID(ctx, resp.ID)
	assert.Empty(t, stored.SlotKey)
}

func TestUpdateOwned(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	owner := models.Caller{Email: "jamie@uni.edu"}

	resp, err := svc.Create(ctx, validInput(futureDate(3), "10:00"), models.Caller{})
	require.NoError(t, err)

	// Non-owners get a not-found, never an authorization hint.
	_, err = svc.UpdateOwned(ctx, resp.ID, models.OwnedUpdateInput{FullName: "X"}, models.Caller{Email: "other@uni.edu"})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, ErrKind(err))

	notes := "please schedule near the library"
	out, err := svc.UpdateOwned(ctx, resp.ID, models.OwnedUpdateInput{
		FullName:        "Jamie R.",
		AdditionalNotes: &notes,
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, "Jamie R.", out.FullName)
	assert.Equal(t, notes, out.AdditionalNotes)

	// Only pending bookings can be edited by their owner.
	_, err = svc.UpdateStatus(ctx, resp.ID, models.StatusUpdateInput{Status: "confirmed"}, models.Caller{ID: "adm", IsAdmin: true})
	require.NoError(t, err)
	_, err = svc.UpdateOwned(ctx, resp.ID, models.OwnedUpdateInput{FullName: "Again"}, owner)
	require.Error(t, err)
	assert.Equal(t, KindValidation, ErrKind(err))
}

func TestGetOwnedVisibility(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, validInput(futureDate(3), "10:00"), models.Caller{})
	require.NoError(t, err)

	_, err = svc.GetOwned(ctx, resp.ID, models.Caller{Email: "other@uni.edu"})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, ErrKind(err))

	out, err := svc.GetOwned(ctx, resp.ID, models.Caller{Email: "JAMIE@uni.edu"})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, out.ID)

	out, err = svc.GetOwned(ctx, resp.ID, models.Caller{ID: "adm", IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, out.ID)
}

func TestListScoping(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.ListMine(ctx, models.BookingQuery{}, models.Caller{})
	require.Error(t, err)
	assert.Equal(t, KindAuthorization, ErrKind(err))

	_, err = svc.ListAll(ctx, models.BookingQuery{}, models.Caller{ID: "u1"})
	require.Error(t, err)
	assert.Equal(t, KindAuthorization, ErrKind(err))

	_, err = svc.Create(ctx, validInput(futureDate(3), "10:00"), models.Caller{ID: "u1", Email: "jamie@uni.edu"})
	require.NoError(t, err)
	other := validInput(futureDate(3), "11:00")
	other.Email = "someone.else@uni.edu"
	_, err = svc.Create(ctx, other, models.Caller{})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, models.BookingQuery{}, models.Caller{ID: "u1", Email: "jamie@uni.edu"})
	require.NoError(t, err)
	assert.Len(t, mine.Bookings, 1)
	assert.Equal(t, int64(1), mine.Statistics.Total)
	assert.Equal(t, 1, mine.Pagination.Page)
	assert.Equal(t, 10, mine.Pagination.Limit)

	all, err := svc.ListAll(ctx, models.BookingQuery{}, models.Caller{ID: "adm", IsAdmin: true})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 2)
	assert.Equal(t, int64(2), all.Statistics.Total)
	assert.Equal(t, int64(2), all.Statistics.Pending)
}
