package booking

import (
	"context"
	"math"

	"campuscare/models"
)

// ListMine returns the caller's bookings (account-linked plus guest
// bookings under the same email) with pagination and per-owner status
// statistics.
func (s *DefaultBookingService) ListMine(ctx context.Context, q models.BookingQuery, caller models.Caller) (*models.BookingListResult, error) {
	if !caller.Authenticated() {
		return nil, NewAuthorizationError("Authentication required")
	}
	q.OwnerID = caller.ID
	q.OwnerEmail = caller.Email
	return s.list(ctx, q)
}

// ListAll returns all bookings unscoped by owner. Admin only.
func (s *DefaultBookingService) ListAll(ctx context.Context, q models.BookingQuery, caller models.Caller) (*models.BookingListResult, error) {
	if !caller.IsAdmin {
		return nil, NewAuthorizationError("Admin access required")
	}
	q.OwnerID = ""
	q.OwnerEmail = ""
	return s.list(ctx, q)
}

func (s *DefaultBookingService) list(ctx context.Context, q models.BookingQuery) (*models.BookingListResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	bookings, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	stats, err := s.Repo.CountByStatus(ctx, q.OwnerID, q.OwnerEmail)
	if err != nil {
		return nil, err
	}

	responses := make([]models.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, *s.toResponse(ctx, &bookings[i]))
	}

	return &models.BookingListResult{
		Bookings: responses,
		Pagination: models.Pagination{
			Page:  q.Page,
			Limit: q.Limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(q.Limit))),
		},
		Statistics: stats,
	}, nil
}
