package review

import (
	"context"

	"github.com/google/uuid"

	"tradebridge/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ListByProduct(ctx context.Context, productID int64, limit int) ([]domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID int64, reviewerID uuid.UUID) (bool, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
