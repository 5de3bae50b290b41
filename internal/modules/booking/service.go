package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"tradebridge/internal/domain"
)

// Service is the single owner of the booking state machine. Every status
// write goes through a conditional update here; no other component mutates
// booking status.
type Service struct {
	bookings BookingRepository
	products ProductRepository
	notifs   NotificationSender
}

func NewService(bookings BookingRepository, products ProductRepository, notifs NotificationSender) *Service {
	return &Service{
		bookings: bookings,
		products: products,
		notifs:   notifs,
	}
}

// RequestBooking creates a pending booking for the product and date range.
func (s *Service) RequestBooking(ctx context.Context, borrowerID uuid.UUID, req RequestBookingRequest) (*domain.Booking, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrValidation
	}

	p, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.LenderID == borrowerID {
		return nil, ErrValidation
	}

	ok, err := s.bookings.CheckAvailability(ctx, p.ID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAvailable
	}

	days := int(math.Ceil(req.EndDate.Sub(req.StartDate).Hours() / 24))
	if days < 1 {
		days = 1
	}

	b := &domain.Booking{
		ProductID:     p.ID,
		BorrowerID:    borrowerID,
		LenderID:      p.LenderID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalAmount:   float64(days) * p.PricePerDay,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentUnpaid,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23P01" {
			return nil, ErrNotAvailable
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingRequested(ctx, b.LenderID, b.ID, p.Name, days)
	}

	return b, nil
}

// Decide applies the lender's approve/reject decision on a pending booking.
func (s *Service) Decide(ctx context.Context, bookingID int64, actorID uuid.UUID, decision string) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.LenderID != actorID {
		return nil, ErrForbidden
	}

	var to domain.BookingStatus
	switch decision {
	case "approve":
		to = domain.BookingApproved
	case "reject":
		to = domain.BookingRejected
	default:
		return nil, ErrValidation
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, bookingID, []domain.BookingStatus{domain.BookingPending}, to, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingDecided(ctx, b.BorrowerID, b.ID, to == domain.BookingApproved)
	}

	return s.getBooking(ctx, bookingID)
}

// MarkPaid records a successful payment reported by the payment collaborator.
// Re-invocation with the same payment reference on an already-paid booking is
// a no-op success.
func (s *Service) MarkPaid(ctx context.Context, bookingID int64, paymentRef string) (*domain.Booking, error) {
	if paymentRef == "" {
		return nil, ErrValidation
	}

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BookingPaid {
		if b.PaymentIntentID == paymentRef {
			return b, nil
		}
		return nil, ErrInvalidState
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, bookingID,
		[]domain.BookingStatus{domain.BookingPending, domain.BookingApproved},
		domain.BookingPaid,
		map[string]any{
			"payment_status":    string(domain.PaymentPaid),
			"payment_intent_id": paymentRef,
		})
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race with another callback delivery; re-read and treat an
		// identical reference as the idempotent success case.
		b, err = s.getBooking(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if b.Status == domain.BookingPaid && b.PaymentIntentID == paymentRef {
			return b, nil
		}
		return nil, ErrInvalidState
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingPaid(ctx, b.LenderID, b.ID)
	}

	return s.getBooking(ctx, bookingID)
}

// RedeemTransition applies the state transition associated with a validated
// collection token. The digest match and the status change happen in a single
// conditional update, so the token cannot be consumed without effect and
// cannot drive the transition twice.
func (s *Service) RedeemTransition(ctx context.Context, bookingID int64, flow domain.Flow, digest string, scannedBy uuid.UUID) (*domain.Booking, error) {
	ok, err := s.bookings.RedeemCollectionToken(ctx, bookingID, digest, flow, scannedBy, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTokenMismatch
	}
	return s.getBooking(ctx, bookingID)
}

// Complete marks an active booking completed by explicit action of either party.
func (s *Service) Complete(ctx context.Context, bookingID int64, actorID uuid.UUID) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BorrowerID != actorID && b.LenderID != actorID {
		return nil, ErrForbidden
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, bookingID, []domain.BookingStatus{domain.BookingActive}, domain.BookingCompleted, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	if s.notifs != nil {
		other := b.LenderID
		if actorID == b.LenderID {
			other = b.BorrowerID
		}
		_ = s.notifs.NotifyBookingCompleted(ctx, other, b.ID)
	}

	return s.getBooking(ctx, bookingID)
}

// Cancel cancels a booking; only permitted while it is still pending.
func (s *Service) Cancel(ctx context.Context, bookingID int64, actorID uuid.UUID) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BorrowerID != actorID && b.LenderID != actorID {
		return nil, ErrForbidden
	}

	now := time.Now()
	ok, err := s.bookings.UpdateStatusIf(ctx, bookingID, []domain.BookingStatus{domain.BookingPending}, domain.BookingCancelled,
		map[string]any{"cancelled_at": now})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	if s.notifs != nil {
		other := b.LenderID
		if actorID == b.LenderID {
			other = b.BorrowerID
		}
		_ = s.notifs.NotifyBookingCancelled(ctx, other, b.ID)
	}

	return s.getBooking(ctx, bookingID)
}

// GetForUser returns the booking if the caller is one of its parties.
func (s *Service) GetForUser(ctx context.Context, bookingID int64, userID uuid.UUID) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BorrowerID != userID && b.LenderID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
