package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tradebridge/internal/domain"
	"tradebridge/internal/modules/booking"
)

type MockBookingMarker struct {
	mock.Mock
}

func (m *MockBookingMarker) MarkPaid(ctx context.Context, bookingID int64, paymentRef string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, paymentRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func TestService_Confirm(t *testing.T) {
	mockBookings := new(MockBookingMarker)
	service := NewService(mockBookings)

	mockBookings.On("MarkPaid", mock.Anything, int64(42), "cs_123").Return(&domain.Booking{
		ID:     42,
		Status: domain.BookingPaid,
	}, nil)

	b, err := service.Confirm(context.Background(), CallbackRequest{BookingID: 42, SessionID: "cs_123"})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPaid, b.Status)
	mockBookings.AssertExpectations(t)
}

func TestService_Confirm_WrongState(t *testing.T) {
	mockBookings := new(MockBookingMarker)
	service := NewService(mockBookings)

	mockBookings.On("MarkPaid", mock.Anything, int64(42), "cs_123").Return(nil, booking.ErrInvalidState)

	_, err := service.Confirm(context.Background(), CallbackRequest{BookingID: 42, SessionID: "cs_123"})

	assert.ErrorIs(t, err, booking.ErrInvalidState)
}
