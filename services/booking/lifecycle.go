package booking

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	bookingRepo "campuscare/database/repository/booking"
	"campuscare/models"
	"campuscare/utils"
)

// UpdateStatus performs an admin status transition, recording
// confirmation or cancellation metadata as appropriate.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id string, input models.StatusUpdateInput, caller models.Caller) (*models.BookingResponse, error) {
	if !caller.IsAdmin {
		return nil, NewAuthorizationError("Admin access required")
	}

	status, ok := models.ParseStatus(input.Status)
	if !ok {
		return nil, NewValidationError("Invalid status value")
	}
	if input.AdminNotes != nil && len(*input.AdminNotes) > maxNotesLength {
		return nil, NewValidationError("Admin notes must be 500 characters or fewer")
	}

	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, NewNotFoundError("Booking not found")
	}

	b.Status = status
	if input.AdminNotes != nil {
		b.AdminNotes = *input.AdminNotes
	}

	switch status {
	case models.StatusConfirmed:
		now := time.Now()
		b.ConfirmedBy = caller.ID
		b.ConfirmedAt = &now
		if input.ConfirmedDateTime != "" {
			agreed, err := time.Parse(time.RFC3339, input.ConfirmedDateTime)
			if err != nil {
				return nil, NewValidationError("invalid confirmedDateTime; expected RFC3339")
			}
			b.ConfirmedDateTime = &agreed
		}
	case models.StatusCancelled:
		if input.CancellationReason != "" {
			b.CancellationReason = input.CancellationReason
		}
	}

	s.syncSlotKey(b)
	b.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, b); err != nil {
		if err == bookingRepo.ErrSlotTaken {
			return nil, NewConflictError("This time slot is already booked")
		}
		return nil, err
	}

	utils.GetLogger().Info("Booking status updated",
		zap.String("bookingID", b.ID),
		zap.String("status", string(status)),
		zap.String("admin", caller.ID),
	)

	return s.toResponse(ctx, b), nil
}

// Cancel cancels a booking on behalf of its owner or an admin,
// enforcing the 24-hour cancellation window.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string, caller models.Caller, reason string) (*models.BookingResponse, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, NewNotFoundError("Booking not found")
	}

	if !caller.IsAdmin && !BelongsTo(b, caller.ID, caller.Email) {
		return nil, NewAuthorizationError("Access denied")
	}
	if !CanBeCancelled(b) {
		return nil, NewValidationError("Booking cannot be cancelled at this time")
	}

	b.Status = models.StatusCancelled
	if reason != "" {
		b.CancellationReason = reason
	}
	s.syncSlotKey(b)
	b.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Booking cancelled",
		zap.String("bookingID", b.ID),
		zap.String("caller", caller.ID),
	)

	return s.toResponse(ctx, b), nil
}

// UpdateOwned lets the owner patch a still-pending booking. Only full
// name, additional notes and the cancellation-reason-to-be may change;
// anything else in the payload is ignored.
func (s *DefaultBookingService) UpdateOwned(ctx context.Context, id string, input models.OwnedUpdateInput, caller models.Caller) (*models.BookingResponse, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil || !BelongsTo(b, caller.ID, caller.Email) {
		// Do not reveal whether the booking exists to non-owners.
		return nil, NewNotFoundError("Booking not found or access denied")
	}

	if b.Status != models.StatusPending {
		return nil, NewValidationError("Only pending bookings can be updated")
	}
	if input.AdditionalNotes != nil && len(*input.AdditionalNotes) > maxNotesLength {
		return nil, NewValidationError("Additional notes must be 500 characters or fewer")
	}

	if name := strings.TrimSpace(input.FullName); name != "" {
		b.FullName = name
	}
	if input.AdditionalNotes != nil {
		b.AdditionalNotes = *input.AdditionalNotes
	}
	if input.CancellationReason != "" {
		b.CancellationReason = input.CancellationReason
	}
	b.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, b), nil
}

// GetOwned fetches a single booking visible to the caller. Non-owners
// get a not-found, never an authorization hint.
func (s *DefaultBookingService) GetOwned(ctx context.Context, id string, caller models.Caller) (*models.BookingResponse, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil || (!caller.IsAdmin && !BelongsTo(b, caller.ID, caller.Email)) {
		return nil, NewNotFoundError("Booking not found or access denied")
	}
	return s.toResponse(ctx, b), nil
}

// syncSlotKey keeps the uniqueness key in step with the status: set
// while the booking occupies its slot, cleared once it no longer does.
func (s *DefaultBookingService) syncSlotKey(b *models.Booking) {
	if b.Status.Active() {
		b.SlotKey = SlotKeyFor(b)
	} else {
		b.SlotKey = ""
	}
}
