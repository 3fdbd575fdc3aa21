package booking

import (
	"context"

	"go.uber.org/zap"

	"campuscare/models"
	"campuscare/utils"
)

// toResponse builds the API view of a booking: canonical date/time
// surfaced, owner and confirmer identities resolved for display, and
// computed fields attached.
func (s *DefaultBookingService) toResponse(ctx context.Context, b *models.Booking) *models.BookingResponse {
	view := *b
	// Surface the canonical pair even for legacy rows that predate
	// normalization.
	_ = Normalize(&view)

	resp := &models.BookingResponse{
		Booking:           view,
		FormattedDateTime: view.Date + " at " + view.Time,
		CanBeCancelled:    CanBeCancelled(&view),
	}

	resp.User = s.lookupSummary(ctx, view.UserID)
	resp.Confirmer = s.lookupSummary(ctx, view.ConfirmedBy)
	return resp
}

func (s *DefaultBookingService) lookupSummary(ctx context.Context, userID string) *models.UserSummary {
	if userID == "" || s.Users == nil {
		return nil
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("failed to resolve user for booking response",
			zap.String("userID", userID), zap.Error(err))
		return nil
	}
	if u == nil {
		return nil
	}
	summary := u.Summary()
	return &summary
}
