package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradebridge/internal/domain"
)

type Service struct {
	reviews  ReviewRepository
	bookings BookingReader
}

func NewService(reviews ReviewRepository, bookings BookingReader) *Service {
	return &Service{reviews: reviews, bookings: bookings}
}

// Create records a rating for a finished rental. Only the borrower of a
// completed booking may review, once per booking.
func (s *Service) Create(ctx context.Context, reviewerID uuid.UUID, req CreateReviewRequest) (*domain.Review, error) {
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.BorrowerID != reviewerID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrNotCompleted
	}

	exists, err := s.reviews.ExistsForBooking(ctx, req.BookingID, reviewerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	rv := &domain.Review{
		ProductID:  b.ProductID,
		BookingID:  b.ID,
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) ListByProduct(ctx context.Context, productID int64, limit int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.reviews.ListByProduct(ctx, productID, limit)
}
