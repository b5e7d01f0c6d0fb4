package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tnb-api/core/errors"
	accountdto "tnb-api/modules/account/dto"
	bookingentity "tnb-api/modules/booking/entity"
	"tnb-api/modules/notification/tasks"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Insert(ctx context.Context, booking *bookingentity.Booking) (*bookingentity.Booking, error) {
	args := m.Called(ctx, booking)
	if b := args.Get(0); b != nil {
		return b.(*bookingentity.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*bookingentity.Booking, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*bookingentity.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) MarkPaid(ctx context.Context, id int64, sessionID, paymentIntentID string, paidAt time.Time) error {
	args := m.Called(ctx, id, sessionID, paymentIntentID, paidAt)
	return args.Error(0)
}

func (m *mockBookingRepo) LinkClient(ctx context.Context, id int64, clientID int64) error {
	args := m.Called(ctx, id, clientID)
	return args.Error(0)
}

func (m *mockBookingRepo) ListRange(ctx context.Context, from, to time.Time) ([]bookingentity.Booking, error) {
	args := m.Called(ctx, from, to)
	if b := args.Get(0); b != nil {
		return b.([]bookingentity.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status bookingentity.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) CreateOrGet(ctx context.Context, email, name string) (*accountdto.BookingAccount, *errors.AppError) {
	args := m.Called(ctx, email, name)
	var acc *accountdto.BookingAccount
	if a := args.Get(0); a != nil {
		acc = a.(*accountdto.BookingAccount)
	}
	if e := args.Get(1); e != nil {
		return acc, e.(*errors.AppError)
	}
	return acc, nil
}

func (m *mockAccountService) CreateBookingSession(ctx context.Context, bookingID int64) (string, *errors.AppError) {
	args := m.Called(ctx, bookingID)
	if e := args.Get(1); e != nil {
		return args.String(0), e.(*errors.AppError)
	}
	return args.String(0), nil
}

func (m *mockAccountService) GetSession(ctx context.Context, token string) (*accountdto.SessionResponse, *errors.AppError) {
	args := m.Called(ctx, token)
	var resp *accountdto.SessionResponse
	if r := args.Get(0); r != nil {
		resp = r.(*accountdto.SessionResponse)
	}
	if e := args.Get(1); e != nil {
		return resp, e.(*errors.AppError)
	}
	return resp, nil
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueBookingConfirmation(ctx context.Context, payload tasks.BookingConfirmationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func pendingBooking(id int64) *bookingentity.Booking {
	name := "Amy Chen"
	email := "amy@example.com"
	return &bookingentity.Booking{
		ID:              id,
		Status:          bookingentity.BookingStatusPending,
		PaymentStatus:   bookingentity.PaymentStatusPending,
		GuestName:       &name,
		GuestEmail:      &email,
		AppointmentDate: time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC),
		TotalPrice:      74.75,
	}
}

func completedEvent(bookingID string) CheckoutCompletedEvent {
	return CheckoutCompletedEvent{
		EventID:         "evt_123",
		SessionID:       "cs_test_123",
		PaymentIntentID: "pi_123",
		BookingID:       bookingID,
	}
}

func TestHandleCheckoutCompletedMarksPaidAndLinks(t *testing.T) {
	bookings := new(mockBookingRepo)
	accounts := new(mockAccountService)
	notifier := new(mockEnqueuer)
	svc := NewConfirmationService(bookings, accounts, notifier)

	bookings.On("GetByID", mock.Anything, int64(42)).Return(pendingBooking(42), nil)
	bookings.On("MarkPaid", mock.Anything, int64(42), "cs_test_123", "pi_123", mock.Anything).Return(nil)
	accounts.On("CreateOrGet", mock.Anything, "amy@example.com", "Amy Chen").
		Return(&accountdto.BookingAccount{UserID: 5, IsNewAccount: true}, nil)
	bookings.On("LinkClient", mock.Anything, int64(42), int64(5)).Return(nil)
	notifier.On("EnqueueBookingConfirmation", mock.Anything, mock.MatchedBy(func(p tasks.BookingConfirmationPayload) bool {
		return p.BookingID == 42 && p.GuestEmail == "amy@example.com"
	})).Return(nil)

	err := svc.HandleCheckoutCompleted(context.Background(), completedEvent("42"))

	assert.NoError(t, err)
	bookings.AssertExpectations(t)
	accounts.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestHandleCheckoutCompletedUnknownBookingIsNoOp(t *testing.T) {
	bookings := new(mockBookingRepo)
	accounts := new(mockAccountService)
	notifier := new(mockEnqueuer)
	svc := NewConfirmationService(bookings, accounts, notifier)

	bookings.On("GetByID", mock.Anything, int64(999)).Return(nil, nil)

	err := svc.HandleCheckoutCompleted(context.Background(), completedEvent("999"))

	assert.NoError(t, err)
	bookings.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCheckoutCompletedMalformedBookingIDIsNoOp(t *testing.T) {
	bookings := new(mockBookingRepo)
	svc := NewConfirmationService(bookings, new(mockAccountService), new(mockEnqueuer))

	for _, id := range []string{"", "abc"} {
		err := svc.HandleCheckoutCompleted(context.Background(), completedEvent(id))
		assert.NoError(t, err)
	}
	bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestHandleCheckoutCompletedAlreadyPaidIsIdempotent(t *testing.T) {
	bookings := new(mockBookingRepo)
	svc := NewConfirmationService(bookings, new(mockAccountService), new(mockEnqueuer))

	paid := pendingBooking(42)
	paid.PaymentStatus = bookingentity.PaymentStatusPaid
	paid.Status = bookingentity.BookingStatusConfirmed
	bookings.On("GetByID", mock.Anything, int64(42)).Return(paid, nil)

	err := svc.HandleCheckoutCompleted(context.Background(), completedEvent("42"))

	assert.NoError(t, err)
	bookings.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCheckoutCompletedLinkFailureDoesNotFail(t *testing.T) {
	bookings := new(mockBookingRepo)
	accounts := new(mockAccountService)
	notifier := new(mockEnqueuer)
	svc := NewConfirmationService(bookings, accounts, notifier)

	bookings.On("GetByID", mock.Anything, int64(42)).Return(pendingBooking(42), nil)
	bookings.On("MarkPaid", mock.Anything, int64(42), mock.Anything, mock.Anything, mock.Anything).Return(nil)
	accounts.On("CreateOrGet", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.NewAppError(errors.ErrInternalServer, "db down", nil))
	notifier.On("EnqueueBookingConfirmation", mock.Anything, mock.Anything).Return(nil)

	err := svc.HandleCheckoutCompleted(context.Background(), completedEvent("42"))

	assert.NoError(t, err)
	bookings.AssertNotCalled(t, "LinkClient", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCheckoutCompletedMarkPaidFailurePropagates(t *testing.T) {
	bookings := new(mockBookingRepo)
	accounts := new(mockAccountService)
	notifier := new(mockEnqueuer)
	svc := NewConfirmationService(bookings, accounts, notifier)

	bookings.On("GetByID", mock.Anything, int64(42)).Return(pendingBooking(42), nil)
	bookings.On("MarkPaid", mock.Anything, int64(42), mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("write failed"))

	err := svc.HandleCheckoutCompleted(context.Background(), completedEvent("42"))

	assert.Error(t, err)
	accounts.AssertNotCalled(t, "CreateOrGet", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "EnqueueBookingConfirmation", mock.Anything, mock.Anything)
}
