package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradebridge/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID int64, limit int) ([]domain.Review, error) {
	var out []domain.Review
	tx := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out)
	return out, tx.Error
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64, reviewerID uuid.UUID) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("booking_id = ? AND reviewer_id = ?", bookingID, reviewerID).
		Count(&cnt)
	return cnt > 0, tx.Error
}
