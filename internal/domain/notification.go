package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifBookingRequested NotificationType = "booking_requested"
	NotifBookingDecided   NotificationType = "booking_decided"
	NotifBookingPaid      NotificationType = "booking_paid"
	NotifItemCollected    NotificationType = "item_collected"
	NotifItemReturned     NotificationType = "item_returned"
	NotifBookingCancelled NotificationType = "booking_cancelled"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    uuid.UUID        `json:"user_id" gorm:"type:uuid;index"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message" gorm:"type:text"`
	Data      []byte           `json:"data,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
