package payment

import (
	"context"

	"tradebridge/internal/domain"
)

// BookingMarker settles a booking after the payment provider confirms the
// charge. The booking module owns the status transition and its idempotency.
type BookingMarker interface {
	MarkPaid(ctx context.Context, bookingID int64, paymentRef string) (*domain.Booking, error)
}
