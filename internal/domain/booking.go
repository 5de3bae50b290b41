package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingPaid      BookingStatus = "paid"
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether no further transition is defined for the status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingRejected || s == BookingCompleted || s == BookingCancelled
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Flow is the physical handoff direction a collection token authorizes.
type Flow string

const (
	FlowBorrow Flow = "borrow"
	FlowReturn Flow = "return"
)

func (f Flow) Valid() bool { return f == FlowBorrow || f == FlowReturn }

type Booking struct {
	ID              int64         `json:"id"`
	ProductID       int64         `json:"product_id" validate:"required"`
	BorrowerID      uuid.UUID     `json:"borrower_id" gorm:"type:uuid" validate:"required"`
	LenderID        uuid.UUID     `json:"lender_id" gorm:"type:uuid" validate:"required"`
	StartDate       time.Time     `json:"start_date" validate:"required"`
	EndDate         time.Time     `json:"end_date" validate:"required"`
	TotalAmount     float64       `json:"total_amount" validate:"gte=0"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	PaymentIntentID string        `json:"payment_intent_id,omitempty"`

	// Collection handoff bookkeeping. The token hash and its expiry are
	// always set and cleared together; CollectedAt is written exactly once,
	// on a successful borrow-flow redemption.
	CollectedAt              *time.Time `json:"collected_at,omitempty"`
	CollectedBy              *uuid.UUID `json:"collected_by,omitempty" gorm:"type:uuid"`
	CollectionTokenHash      *string    `json:"-"`
	CollectionTokenExpiresAt *time.Time `json:"-"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Product  *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Borrower *User    `json:"borrower,omitempty" gorm:"foreignKey:BorrowerID"`
	Lender   *User    `json:"lender,omitempty" gorm:"foreignKey:LenderID"`
}
