package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradebridge/internal/domain"
)

// BookingRepository defines the store operations the lifecycle manager needs.
// All transition writes are conditional updates keyed on the expected current
// status, so concurrent actors cannot both apply conflicting transitions.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error)
	CheckAvailability(ctx context.Context, productID int64, start, end time.Time) (bool, error)
	UpdateStatusIf(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus, extra map[string]any) (bool, error)
	RedeemCollectionToken(ctx context.Context, id int64, digest string, flow domain.Flow, scannedBy uuid.UUID, now time.Time) (bool, error)
}

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

type NotificationSender interface {
	NotifyBookingRequested(ctx context.Context, lenderID uuid.UUID, bookingID int64, productName string, days int) error
	NotifyBookingDecided(ctx context.Context, borrowerID uuid.UUID, bookingID int64, approved bool) error
	NotifyBookingPaid(ctx context.Context, lenderID uuid.UUID, bookingID int64) error
	NotifyBookingCancelled(ctx context.Context, userID uuid.UUID, bookingID int64) error
	NotifyBookingCompleted(ctx context.Context, userID uuid.UUID, bookingID int64) error
}
