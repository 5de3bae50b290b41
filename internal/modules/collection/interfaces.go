package collection

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradebridge/internal/domain"
)

type BookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetCollectionToken(ctx context.Context, id int64, digest string, expiresAt time.Time) error
	ClearCollectionTokenIf(ctx context.Context, id int64, digest string) error
}

// Transitioner is the booking lifecycle manager's redemption entry point.
// It owns the status write; this service never mutates booking state itself.
type Transitioner interface {
	RedeemTransition(ctx context.Context, bookingID int64, flow domain.Flow, digest string, scannedBy uuid.UUID) (*domain.Booking, error)
}

type CodeRenderer interface {
	RenderDataURL(data string) (string, error)
}

type NotificationSender interface {
	NotifyHandoff(ctx context.Context, lenderID uuid.UUID, bookingID int64, flow domain.Flow, scannerName string) error
}
