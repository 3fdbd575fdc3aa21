package booking

import (
	"context"

	bookingRepo "campuscare/database/repository/booking"
	userRepo "campuscare/database/repository/user"
	"campuscare/models"
)

// BookingService exposes the booking lifecycle with authorization and
// state-transition rules enforced centrally.
type BookingService interface {
	Create(ctx context.Context, input models.BookingCreateInput, caller models.Caller) (*models.BookingResponse, error)
	ListMine(ctx context.Context, q models.BookingQuery, caller models.Caller) (*models.BookingListResult, error)
	ListAll(ctx context.Context, q models.BookingQuery, caller models.Caller) (*models.BookingListResult, error)
	GetOwned(ctx context.Context, id string, caller models.Caller) (*models.BookingResponse, error)
	UpdateStatus(ctx context.Context, id string, input models.StatusUpdateInput, caller models.Caller) (*models.BookingResponse, error)
	Cancel(ctx context.Context, id string, caller models.Caller, reason string) (*models.BookingResponse, error)
	UpdateOwned(ctx context.Context, id string, input models.OwnedUpdateInput, caller models.Caller) (*models.BookingResponse, error)

	// CompletePast transitions Confirmed bookings whose date has passed
	// to Completed. Invoked by the background worker.
	CompletePast(ctx context.Context) (int, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo  bookingRepo.BookingRepository
	Users userRepo.UserRepository

	slots *slotLocker
}

// NewDefaultBookingService wires a booking service over the given repositories.
func NewDefaultBookingService(repo bookingRepo.BookingRepository, users userRepo.UserRepository) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:  repo,
		Users: users,
		slots: newSlotLocker(),
	}
}
