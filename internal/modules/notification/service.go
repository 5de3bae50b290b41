package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tradebridge/internal/domain"
)

type Service struct {
	repo NotificationRepository
	hub  *Hub
}

func NewService(repo NotificationRepository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	items, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id int64, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *Service) notify(ctx context.Context, userID uuid.UUID, typ domain.NotificationType, title, message string) error {
	n := &domain.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	s.hub.Push(userID, n)
	return nil
}

func (s *Service) NotifyBookingRequested(ctx context.Context, lenderID uuid.UUID, bookingID int64, productName string, days int) error {
	return s.notify(ctx, lenderID, domain.NotifBookingRequested,
		"New booking request",
		fmt.Sprintf("Someone wants to rent %s for %d day(s) (booking #%d)", productName, days, bookingID))
}

func (s *Service) NotifyBookingDecided(ctx context.Context, borrowerID uuid.UUID, bookingID int64, approved bool) error {
	if approved {
		return s.notify(ctx, borrowerID, domain.NotifBookingDecided,
			"Booking approved",
			fmt.Sprintf("Your booking #%d was approved. You can proceed to payment.", bookingID))
	}
	return s.notify(ctx, borrowerID, domain.NotifBookingDecided,
		"Booking rejected",
		fmt.Sprintf("Your booking #%d was rejected by the owner.", bookingID))
}

func (s *Service) NotifyBookingPaid(ctx context.Context, lenderID uuid.UUID, bookingID int64) error {
	return s.notify(ctx, lenderID, domain.NotifBookingPaid,
		"Booking paid",
		fmt.Sprintf("Booking #%d has been paid. You can now issue a pickup code.", bookingID))
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, userID uuid.UUID, bookingID int64) error {
	return s.notify(ctx, userID, domain.NotifBookingCancelled,
		"Booking cancelled",
		fmt.Sprintf("Booking #%d was cancelled.", bookingID))
}

func (s *Service) NotifyBookingCompleted(ctx context.Context, userID uuid.UUID, bookingID int64) error {
	return s.notify(ctx, userID, domain.NotifItemReturned,
		"Booking completed",
		fmt.Sprintf("Booking #%d is complete. Thanks for using TradeBridge.", bookingID))
}

func (s *Service) NotifyHandoff(ctx context.Context, lenderID uuid.UUID, bookingID int64, flow domain.Flow, scannerName string) error {
	if flow == domain.FlowReturn {
		return s.notify(ctx, lenderID, domain.NotifItemReturned,
			"Item returned",
			fmt.Sprintf("%s returned the item for booking #%d.", scannerName, bookingID))
	}
	return s.notify(ctx, lenderID, domain.NotifItemCollected,
		"Item collected",
		fmt.Sprintf("%s collected the item for booking #%d.", scannerName, bookingID))
}
