package bookingRepo

import (
	"context"
	"errors"

	"campuscare/models"
)

// ErrSlotTaken is returned when an insert or update collides with the
// unique active-slot index.
var ErrSlotTaken = errors.New("slot already taken")

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error

	// FindActiveBySlot returns the active (Pending/Confirmed) booking
	// occupying the given (date, time) slot under either date
	// representation, or nil when the slot is free. excludeID skips a
	// booking during updates.
	FindActiveBySlot(ctx context.Context, date, timeOfDay, excludeID string) (*models.Booking, error)

	// ListPastConfirmed returns Confirmed bookings dated strictly
	// before the given "2006-01-02" day.
	ListPastConfirmed(ctx context.Context, before string) ([]models.Booking, error)

	// List returns one page of bookings matching the query plus the
	// total match count.
	List(ctx context.Context, q models.BookingQuery) ([]models.Booking, int64, error)

	// CountByStatus aggregates booking counts by status. Empty owner
	// fields mean the global (admin) scope.
	CountByStatus(ctx context.Context, ownerID, ownerEmail string) (models.BookingStats, error)
}
