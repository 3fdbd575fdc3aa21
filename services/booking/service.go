package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "campuscare/database/repository/booking"
	"campuscare/models"
	"campuscare/utils"
)

const maxNotesLength = 500

// Create validates a booking request, checks slot availability and
// persists the booking with the caller bound as owner (or as a guest
// by email when unauthenticated).
func (s *DefaultBookingService) Create(ctx context.Context, input models.BookingCreateInput, caller models.Caller) (*models.BookingResponse, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(input.FullName) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.AppointmentType) == "" {
		return nil, NewValidationError("Full name, email, and appointment type are required")
	}
	if !models.IsValidAppointmentType(input.AppointmentType) {
		return nil, NewValidationError("Unknown appointment type: " + input.AppointmentType)
	}
	if len(input.AdditionalNotes) > maxNotesLength {
		return nil, NewValidationError("Additional notes must be 500 characters or fewer")
	}
	if input.Date == "" && input.PreferredDate == "" {
		return nil, NewValidationError("Date is required")
	}
	if input.Time == "" && input.PreferredTime == "" {
		return nil, NewValidationError("Time is required")
	}

	b := &models.Booking{
		FullName:        strings.TrimSpace(input.FullName),
		Email:           strings.ToLower(strings.TrimSpace(input.Email)),
		AppointmentType: input.AppointmentType,
		Date:            input.Date,
		Time:            input.Time,
		PreferredTime:   input.PreferredTime,
		AdditionalNotes: input.AdditionalNotes,
		Status:          models.StatusPending,
	}
	if input.PreferredDate != "" {
		parsed, err := time.ParseInLocation(dateLayout, input.PreferredDate, time.UTC)
		if err != nil {
			return nil, NewValidationError("invalid preferred date " + input.PreferredDate)
		}
		b.PreferredDate = &parsed
	}
	if caller.Authenticated() {
		b.UserID = caller.ID
	}

	if err := Normalize(b); err != nil {
		return nil, err
	}

	day, ok := EffectiveDate(b)
	if !ok {
		return nil, NewValidationError("a valid booking date is required")
	}
	if day.Before(truncateToDay(time.Now())) {
		return nil, NewValidationError("Cannot book appointments for past dates")
	}

	// Serialize the availability check and insert per slot; the
	// sparse unique index on slot_key is the storage-side backstop.
	key := SlotKeyFor(b)
	release := s.slots.acquire(key)
	defer release()

	occupied, err := s.Repo.FindActiveBySlot(ctx, b.Date, b.Time, "")
	if err != nil {
		return nil, err
	}
	if occupied != nil {
		return nil, NewConflictError("This time slot is already booked")
	}

	now := time.Now()
	b.ID = uuid.New().String()
	b.SlotKey = key
	b.CreatedAt = now
	b.UpdatedAt = now

	if err := s.Repo.Create(ctx, b); err != nil {
		if err == bookingRepo.ErrSlotTaken {
			return nil, NewConflictError("This time slot is already booked")
		}
		return nil, err
	}

	owner := "guest " + b.Email
	if b.UserID != "" {
		owner = "user " + b.UserID
	}
	logger.Info("New booking created",
		zap.String("bookingID", b.ID),
		zap.String("owner", owner),
		zap.String("slot", key),
	)

	return s.toResponse(ctx, b), nil
}
