package payment

import (
	"context"

	"tradebridge/internal/domain"
)

type Service struct {
	bookings BookingMarker
}

func NewService(bookings BookingMarker) *Service {
	return &Service{bookings: bookings}
}

// Confirm records a successful provider checkout against the booking.
// Replaying the same session is a no-op, so provider retries are safe.
func (s *Service) Confirm(ctx context.Context, req CallbackRequest) (*domain.Booking, error) {
	return s.bookings.MarkPaid(ctx, req.BookingID, req.SessionID)
}
