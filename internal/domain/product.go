package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          int64     `json:"id"`
	LenderID    uuid.UUID `json:"lender_id" gorm:"type:uuid" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition,omitempty"`
	PricePerDay float64   `json:"price_per_day" validate:"required,gte=0"`
	Value       float64   `json:"value,omitempty"`
	Available   bool      `json:"available"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Lender *User `json:"lender,omitempty" gorm:"foreignKey:LenderID"`
}
