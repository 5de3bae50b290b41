package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tradebridge/internal/domain"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CheckAvailability(ctx context.Context, productID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, productID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatusIf(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus, extra map[string]any) (bool, error) {
	args := m.Called(ctx, id, from, to, extra)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) RedeemCollectionToken(ctx context.Context, id int64, digest string, flow domain.Flow, scannedBy uuid.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, id, digest, flow, scannedBy, now)
	return args.Bool(0), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBookingRequested(ctx context.Context, lenderID uuid.UUID, bookingID int64, productName string, days int) error {
	args := m.Called(ctx, lenderID, bookingID, productName, days)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingDecided(ctx context.Context, borrowerID uuid.UUID, bookingID int64, approved bool) error {
	args := m.Called(ctx, borrowerID, bookingID, approved)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingPaid(ctx context.Context, lenderID uuid.UUID, bookingID int64) error {
	args := m.Called(ctx, lenderID, bookingID)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingCancelled(ctx context.Context, userID uuid.UUID, bookingID int64) error {
	args := m.Called(ctx, userID, bookingID)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingCompleted(ctx context.Context, userID uuid.UUID, bookingID int64) error {
	args := m.Called(ctx, userID, bookingID)
	return args.Error(0)
}

func newTestService() (*Service, *MockBookingRepository, *MockProductRepository, *MockNotificationSender) {
	mockBookings := new(MockBookingRepository)
	mockProducts := new(MockProductRepository)
	mockNotifs := new(MockNotificationSender)
	return NewService(mockBookings, mockProducts, mockNotifs), mockBookings, mockProducts, mockNotifs
}

func TestService_RequestBooking_Success(t *testing.T) {
	service, mockBookings, mockProducts, mockNotifs := newTestService()

	lenderID := uuid.New()
	borrowerID := uuid.New()
	start := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	mockProducts.On("GetByID", mock.Anything, int64(10)).Return(&domain.Product{
		ID:          10,
		LenderID:    lenderID,
		Name:        "Cordless drill",
		PricePerDay: 8,
	}, nil)
	mockBookings.On("CheckAvailability", mock.Anything, int64(10), start, end).Return(true, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyBookingRequested", mock.Anything, lenderID, int64(999), "Cordless drill", 3).Return(nil)

	b, err := service.RequestBooking(context.Background(), borrowerID, RequestBookingRequest{
		ProductID: 10,
		StartDate: start,
		EndDate:   end,
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, 24.0, b.TotalAmount)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentUnpaid, b.PaymentStatus)
	mockBookings.AssertExpectations(t)
}

func TestService_RequestBooking_EndBeforeStart(t *testing.T) {
	service, _, _, _ := newTestService()

	start := time.Date(2026, 7, 3, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	_, err := service.RequestBooking(context.Background(), uuid.New(), RequestBookingRequest{
		ProductID: 10,
		StartDate: start,
		EndDate:   end,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_RequestBooking_OwnProduct(t *testing.T) {
	service, _, mockProducts, _ := newTestService()

	ownerID := uuid.New()
	mockProducts.On("GetByID", mock.Anything, int64(10)).Return(&domain.Product{
		ID:       10,
		LenderID: ownerID,
	}, nil)

	start := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	_, err := service.RequestBooking(context.Background(), ownerID, RequestBookingRequest{
		ProductID: 10,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 1),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_RequestBooking_Overlapping(t *testing.T) {
	service, mockBookings, mockProducts, _ := newTestService()

	mockProducts.On("GetByID", mock.Anything, int64(10)).Return(&domain.Product{
		ID:          10,
		LenderID:    uuid.New(),
		PricePerDay: 8,
	}, nil)
	mockBookings.On("CheckAvailability", mock.Anything, int64(10), mock.Anything, mock.Anything).Return(false, nil)

	start := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	_, err := service.RequestBooking(context.Background(), uuid.New(), RequestBookingRequest{
		ProductID: 10,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestService_Decide_Approve(t *testing.T) {
	service, mockBookings, _, mockNotifs := newTestService()

	lenderID := uuid.New()
	borrowerID := uuid.New()

	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:         1,
		BorrowerID: borrowerID,
		LenderID:   lenderID,
		Status:     domain.BookingPending,
	}, nil).Once()
	mockBookings.On("UpdateStatusIf", mock.Anything, int64(1),
		[]domain.BookingStatus{domain.BookingPending}, domain.BookingApproved, mock.Anything).Return(true, nil)
	mockNotifs.On("NotifyBookingDecided", mock.Anything, borrowerID, int64(1), true).Return(nil)
	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:         1,
		BorrowerID: borrowerID,
		LenderID:   lenderID,
		Status:     domain.BookingApproved,
	}, nil).Once()

	b, err := service.Decide(context.Background(), 1, lenderID, "approve")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, b.Status)
	mockBookings.AssertExpectations(t)
}

func TestService_Decide_NotTheLender(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:       1,
		LenderID: uuid.New(),
		Status:   domain.BookingPending,
	}, nil)

	_, err := service.Decide(context.Background(), 1, uuid.New(), "approve")

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Decide_AlreadyDecided(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	lenderID := uuid.New()
	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:       1,
		LenderID: lenderID,
		Status:   domain.BookingApproved,
	}, nil)
	mockBookings.On("UpdateStatusIf", mock.Anything, int64(1),
		[]domain.BookingStatus{domain.BookingPending}, domain.BookingRejected, mock.Anything).Return(false, nil)

	_, err := service.Decide(context.Background(), 1, lenderID, "reject")

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_MarkPaid_Success(t *testing.T) {
	service, mockBookings, _, mockNotifs := newTestService()

	lenderID := uuid.New()
	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:       1,
		LenderID: lenderID,
		Status:   domain.BookingApproved,
	}, nil).Once()
	mockBookings.On("UpdateStatusIf", mock.Anything, int64(1),
		[]domain.BookingStatus{domain.BookingPending, domain.BookingApproved},
		domain.BookingPaid, mock.Anything).Return(true, nil)
	mockNotifs.On("NotifyBookingPaid", mock.Anything, lenderID, int64(1)).Return(nil)
	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:              1,
		LenderID:        lenderID,
		Status:          domain.BookingPaid,
		PaymentStatus:   domain.PaymentPaid,
		PaymentIntentID: "sess_1",
	}, nil).Once()

	b, err := service.MarkPaid(context.Background(), 1, "sess_1")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPaid, b.Status)
	mockBookings.AssertExpectations(t)
}

func TestService_MarkPaid_ReplayedCallback(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:              1,
		Status:          domain.BookingPaid,
		PaymentStatus:   domain.PaymentPaid,
		PaymentIntentID: "sess_1",
	}, nil)

	b, err := service.MarkPaid(context.Background(), 1, "sess_1")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPaid, b.Status)
	// no UpdateStatusIf expectation: the replay must not touch the row
	mockBookings.AssertExpectations(t)
}

func TestService_MarkPaid_ConflictingReference(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:              1,
		Status:          domain.BookingPaid,
		PaymentIntentID: "sess_1",
	}, nil)

	_, err := service.MarkPaid(context.Background(), 1, "sess_other")

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_Cancel_Pending(t *testing.T) {
	service, mockBookings, _, mockNotifs := newTestService()

	borrowerID := uuid.New()
	lenderID := uuid.New()
	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:         1,
		BorrowerID: borrowerID,
		LenderID:   lenderID,
		Status:     domain.BookingPending,
	}, nil).Once()
	mockBookings.On("UpdateStatusIf", mock.Anything, int64(1),
		[]domain.BookingStatus{domain.BookingPending}, domain.BookingCancelled, mock.Anything).Return(true, nil)
	mockNotifs.On("NotifyBookingCancelled", mock.Anything, lenderID, int64(1)).Return(nil)
	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:         1,
		BorrowerID: borrowerID,
		LenderID:   lenderID,
		Status:     domain.BookingCancelled,
	}, nil).Once()

	b, err := service.Cancel(context.Background(), 1, borrowerID)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestService_Cancel_AfterPayment(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	borrowerID := uuid.New()
	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:         1,
		BorrowerID: borrowerID,
		LenderID:   uuid.New(),
		Status:     domain.BookingPaid,
	}, nil)
	mockBookings.On("UpdateStatusIf", mock.Anything, int64(1),
		[]domain.BookingStatus{domain.BookingPending}, domain.BookingCancelled, mock.Anything).Return(false, nil)

	_, err := service.Cancel(context.Background(), 1, borrowerID)

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_Complete_Stranger(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{
		ID:         1,
		BorrowerID: uuid.New(),
		LenderID:   uuid.New(),
		Status:     domain.BookingActive,
	}, nil)

	_, err := service.Complete(context.Background(), 1, uuid.New())

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_RedeemTransition_DigestGone(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	scannerID := uuid.New()
	mockBookings.On("RedeemCollectionToken", mock.Anything, int64(1), "digest", domain.FlowBorrow, scannerID, mock.Anything).
		Return(false, nil)

	_, err := service.RedeemTransition(context.Background(), 1, domain.FlowBorrow, "digest", scannerID)

	assert.ErrorIs(t, err, ErrTokenMismatch)
}
