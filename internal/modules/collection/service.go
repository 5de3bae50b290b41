package collection

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradebridge/internal/domain"
	"tradebridge/internal/modules/booking"
	"tradebridge/internal/pkg/metrics"
)

// Service issues short-lived, single-use collection tokens and redeems them
// exactly once. A token binds one booking to one physical handoff (borrow or
// return); only its sha256 digest is persisted, so the store never holds a
// credential capable of producing valid tokens.
type Service struct {
	bookings BookingStore
	manager  Transitioner
	notifs   NotificationSender
	renderer CodeRenderer
	secret   []byte
	ttl      time.Duration
}

func NewService(bookings BookingStore, manager Transitioner, notifs NotificationSender, renderer CodeRenderer, secret string, ttl time.Duration) *Service {
	return &Service{
		bookings: bookings,
		manager:  manager,
		notifs:   notifs,
		renderer: renderer,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// IssueToken mints a signed token for the requested flow and persists its
// digest on the booking, invalidating any previously issued token.
func (s *Service) IssueToken(ctx context.Context, bookingID int64, requesterID uuid.UUID, flow domain.Flow) (*IssueResult, error) {
	if !flow.Valid() {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Both flows are lender-presents, borrower-scans.
	if b.LenderID != requesterID {
		return nil, ErrForbidden
	}

	switch flow {
	case domain.FlowBorrow:
		if b.Status != domain.BookingPaid && b.Status != domain.BookingConfirmed {
			return nil, ErrInvalidState
		}
	case domain.FlowReturn:
		if b.Status != domain.BookingActive || b.CollectedAt == nil {
			return nil, ErrInvalidState
		}
	}

	raw, err := signToken(s.secret, b.ID, flow, requesterID, s.ttl)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.ttl)
	if err := s.bookings.SetCollectionToken(ctx, b.ID, hashToken(raw), expiresAt); err != nil {
		return nil, err
	}

	dataURL, err := s.renderer.RenderDataURL(raw)
	if err != nil {
		return nil, err
	}

	metrics.CollectionTokensIssued.WithLabelValues(string(flow)).Inc()

	return &IssueResult{
		QRDataURL: dataURL,
		ExpiresIn: int(s.ttl.Seconds()),
		Flow:      flow,
		BookingID: b.ID,
	}, nil
}

// Redeem validates a scanned raw token and, if it is live, consumes it and
// drives the associated state transition. Digest clearing and the status
// change are one conditional update inside the lifecycle manager, so exactly
// one of any concurrent redemptions can succeed.
func (s *Service) Redeem(ctx context.Context, rawToken string, scannerID uuid.UUID) (*domain.Booking, error) {
	claims, err := verifyToken(s.secret, rawToken)
	if err != nil {
		s.countRedeem("unknown", err)
		return nil, err
	}

	flow := domain.Flow(claims.Flow)
	if claims.Action != actionCollect || claims.BookingID == 0 || !flow.Valid() {
		s.countRedeem(claims.Flow, ErrInvalidToken)
		return nil, ErrInvalidToken
	}

	b, err := s.bookings.GetByID(ctx, claims.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.countRedeem(claims.Flow, ErrNotFound)
			return nil, ErrNotFound
		}
		return nil, err
	}

	// The scanner must be the booking's borrower in both flows.
	if b.BorrowerID != scannerID {
		s.countRedeem(claims.Flow, ErrForbidden)
		return nil, ErrForbidden
	}

	digest := hashToken(rawToken)
	if b.CollectionTokenHash == nil || *b.CollectionTokenHash != digest {
		// Superseded by a newer issuance, already redeemed, or tampered.
		s.countRedeem(claims.Flow, ErrInvalidToken)
		return nil, ErrInvalidToken
	}

	if b.CollectionTokenExpiresAt == nil || b.CollectionTokenExpiresAt.Before(time.Now()) {
		_ = s.bookings.ClearCollectionTokenIf(ctx, b.ID, digest)
		s.countRedeem(claims.Flow, ErrExpired)
		return nil, ErrExpired
	}

	switch flow {
	case domain.FlowBorrow:
		if b.CollectedAt != nil {
			s.countRedeem(claims.Flow, ErrInvalidState)
			return nil, ErrInvalidState
		}
	case domain.FlowReturn:
		if b.CollectedAt == nil || b.Status == domain.BookingCompleted {
			s.countRedeem(claims.Flow, ErrInvalidState)
			return nil, ErrInvalidState
		}
	}

	updated, err := s.manager.RedeemTransition(ctx, b.ID, flow, digest, scannerID)
	if err != nil {
		if errors.Is(err, booking.ErrTokenMismatch) {
			// Lost a concurrent redemption race; the digest was already gone.
			s.countRedeem(claims.Flow, ErrInvalidToken)
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if s.notifs != nil {
		scannerName := ""
		if updated.Borrower != nil {
			scannerName = updated.Borrower.Name
		}
		_ = s.notifs.NotifyHandoff(ctx, updated.LenderID, updated.ID, flow, scannerName)
	}

	s.countRedeem(claims.Flow, nil)
	return updated, nil
}

func (s *Service) countRedeem(flow string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrExpired):
		result = "expired"
	case errors.Is(err, ErrForbidden):
		result = "forbidden"
	case errors.Is(err, ErrInvalidState):
		result = "invalid_state"
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	default:
		result = "invalid_token"
	}
	metrics.CollectionTokensRedeemed.WithLabelValues(flow, result).Inc()
}
