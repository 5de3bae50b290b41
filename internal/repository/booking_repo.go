package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradebridge/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Borrower").
		Preload("Lender").
		First(&b, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	tx := r.db.WithContext(ctx).
		Preload("Product").
		Where("borrower_id = ? OR lender_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out)
	return out, tx.Error
}

// CheckAvailability reports whether the product has no booking whose date
// range overlaps [start, end] in a status that still holds the dates.
func (r *BookingRepository) CheckAvailability(ctx context.Context, productID int64, start, end time.Time) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("product_id = ?", productID).
		Where("status IN ?", []string{"pending", "approved", "paid", "confirmed", "active"}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 0, nil
}

// UpdateStatusIf performs the transition as a single conditional update
// keyed on the expected current status. Returns false when the row was not
// in any of the expected statuses, leaving the booking unchanged.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus, extra map[string]any) (bool, error) {
	updates := map[string]any{"status": string(to)}
	for k, v := range extra {
		updates[k] = v
	}

	tx := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", id, statusStrings(from)).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// SetCollectionToken persists the token digest and expiry, overwriting any
// prior live token for the booking.
func (r *BookingRepository) SetCollectionToken(ctx context.Context, id int64, digest string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"collection_token_hash":       digest,
			"collection_token_expires_at": expiresAt,
		}).Error
}

// ClearCollectionTokenIf drops the stored digest/expiry only if the digest
// still matches, so a concurrent re-issue is not clobbered.
func (r *BookingRepository) ClearCollectionTokenIf(ctx context.Context, id int64, digest string) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND collection_token_hash = ?", id, digest).
		Updates(map[string]any{
			"collection_token_hash":       nil,
			"collection_token_expires_at": nil,
		}).Error
}

// RedeemCollectionToken clears the stored digest and applies the flow's
// state transition in one conditional update. The digest match in the WHERE
// clause makes redemption single-use: a concurrent redeemer (or a replayed
// token) observes zero affected rows.
func (r *BookingRepository) RedeemCollectionToken(ctx context.Context, id int64, digest string, flow domain.Flow, scannedBy uuid.UUID, now time.Time) (bool, error) {
	updates := map[string]any{
		"collection_token_hash":       nil,
		"collection_token_expires_at": nil,
	}

	var from []string
	switch flow {
	case domain.FlowBorrow:
		updates["status"] = string(domain.BookingActive)
		updates["collected_at"] = now
		updates["collected_by"] = scannedBy
		from = []string{"paid", "confirmed"}
	case domain.FlowReturn:
		updates["status"] = string(domain.BookingCompleted)
		from = []string{"active"}
	default:
		return false, fmt.Errorf("unknown flow %q", flow)
	}

	tx := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND collection_token_hash = ? AND status IN ?", id, digest, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func statusStrings(in []domain.BookingStatus) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}
