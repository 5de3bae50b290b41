package domain

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id" gorm:"index"`
	BookingID  int64     `json:"booking_id" gorm:"uniqueIndex:idx_reviews_booking_reviewer"`
	ReviewerID uuid.UUID `json:"reviewer_id" gorm:"type:uuid;uniqueIndex:idx_reviews_booking_reviewer"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}
