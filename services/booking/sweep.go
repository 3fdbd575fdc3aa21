package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"campuscare/models"
	"campuscare/utils"
)

// CompletePast marks Confirmed bookings whose date has passed as
// Completed and releases their slot keys. It returns the number of
// bookings transitioned. Driven by the background worker; Pending
// bookings are left for admins to resolve.
func (s *DefaultBookingService) CompletePast(ctx context.Context) (int, error) {
	today := truncateToDay(time.Now()).Format(dateLayout)

	past, err := s.Repo.ListPastConfirmed(ctx, today)
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range past {
		b := &past[i]
		b.Status = models.StatusCompleted
		s.syncSlotKey(b)
		b.UpdatedAt = time.Now()
		if err := s.Repo.Update(ctx, b); err != nil {
			return completed, err
		}
		completed++
	}

	if completed > 0 {
		utils.GetLogger().Info("Completed past bookings",
			zap.Int("count", completed),
		)
	}
	return completed, nil
}
