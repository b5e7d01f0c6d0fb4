package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tnb-api/core/errors"
	"tnb-api/modules/account/entity"
	bookingentity "tnb-api/modules/booking/entity"
)

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccountRepo) Insert(ctx context.Context, user *entity.User) (*entity.User, error) {
	args := m.Called(ctx, user)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) CreateSession(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockAccountRepo) FindUserBySessionToken(ctx context.Context, token string) (*entity.User, *entity.Session, error) {
	args := m.Called(ctx, token)
	var user *entity.User
	var session *entity.Session
	if u := args.Get(0); u != nil {
		user = u.(*entity.User)
	}
	if s := args.Get(1); s != nil {
		session = s.(*entity.Session)
	}
	return user, session, args.Error(2)
}

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

func TestCreateOrGetReturnsExistingAccount(t *testing.T) {
	accounts := new(mockAccountRepo)
	bookings := new(mockBookingRepo)
	svc := NewAccountService(accounts, bookings)

	existing := &entity.User{ID: 5, Username: "amychen", Email: "amy@example.com", UserType: entity.UserTypeClient}
	accounts.On("FindByEmail", mock.Anything, "amy@example.com").Return(existing, nil)

	result, appErr := svc.CreateOrGet(context.Background(), " Amy@Example.COM ", "Amy Chen")

	assert.Nil(t, appErr)
	assert.Equal(t, int64(5), result.UserID)
	assert.Equal(t, "amychen", result.Username)
	assert.False(t, result.IsNewAccount)
	accounts.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateOrGetCreatesNewAccount(t *testing.T) {
	accounts := new(mockAccountRepo)
	bookings := new(mockBookingRepo)
	svc := NewAccountService(accounts, bookings)

	accounts.On("FindByEmail", mock.Anything, "amy@example.com").Return(nil, nil)
	accounts.On("UsernameExists", mock.Anything, "amychen").Return(false, nil)
	accounts.On("Insert", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "amychen" && u.Email == "amy@example.com" && u.UserType == entity.UserTypeClient
	})).Return(&entity.User{ID: 8, Username: "amychen", Email: "amy@example.com", UserType: entity.UserTypeClient}, nil)

	result, appErr := svc.CreateOrGet(context.Background(), "amy@example.com", "Amy Chen")

	assert.Nil(t, appErr)
	assert.Equal(t, int64(8), result.UserID)
	assert.True(t, result.IsNewAccount)
}

func TestCreateOrGetRetriesUsernameOnCollision(t *testing.T) {
	accounts := new(mockAccountRepo)
	bookings := new(mockBookingRepo)
	svc := NewAccountService(accounts, bookings)

	accounts.On("FindByEmail", mock.Anything, "amy@example.com").Return(nil, nil)
	accounts.On("UsernameExists", mock.Anything, "amychen").Return(true, nil).Once()
	accounts.On("UsernameExists", mock.Anything, mock.MatchedBy(func(candidate string) bool {
		return len(candidate) > len("amychen") && candidate[:len("amychen")] == "amychen"
	})).Return(false, nil).Once()
	accounts.On("Insert", mock.Anything, mock.Anything).
		Return(&entity.User{ID: 9, Username: "amychen1a2b", Email: "amy@example.com"}, nil)

	result, appErr := svc.CreateOrGet(context.Background(), "amy@example.com", "Amy Chen")

	assert.Nil(t, appErr)
	assert.True(t, result.IsNewAccount)
}

func TestCreateOrGetUsernameExhaustion(t *testing.T) {
	accounts := new(mockAccountRepo)
	bookings := new(mockBookingRepo)
	svc := NewAccountService(accounts, bookings)

	accounts.On("FindByEmail", mock.Anything, "amy@example.com").Return(nil, nil)
	accounts.On("UsernameExists", mock.Anything, mock.Anything).Return(true, nil)

	result, appErr := svc.CreateOrGet(context.Background(), "amy@example.com", "Amy Chen")

	assert.Nil(t, result)
	if assert.NotNil(t, appErr) {
		assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
	}
	accounts.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateOrGetFallsBackToEmailLocalPart(t *testing.T) {
	accounts := new(mockAccountRepo)
	bookings := new(mockBookingRepo)
	svc := NewAccountService(accounts, bookings)

	accounts.On("FindByEmail", mock.Anything, "jo.bloggs@example.com").Return(nil, nil)
	accounts.On("UsernameExists", mock.Anything, "jobloggs").Return(false, nil)
	accounts.On("Insert", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "jobloggs"
	})).Return(&entity.User{ID: 10, Username: "jobloggs"}, nil)

	_, appErr := svc.CreateOrGet(context.Background(), "jo.bloggs@example.com", "   ")
	assert.Nil(t, appErr)
}

func TestCreateBookingSession(t *testing.T) {
	clientID := int64(5)

	tests := []struct {
		name      string
		bookingID int64
		booking   *bookingentity.Booking
		wantCode  errors.ErrorCode
	}{
		{
			name:      "linked booking issues a token",
			bookingID: 42,
			booking:   &bookingentity.Booking{ID: 42, ClientID: &clientID},
		},
		{
			name:      "unknown booking",
			bookingID: 99,
			booking:   nil,
			wantCode:  errors.ErrNotFound,
		},
		{
			name:      "booking without account",
			bookingID: 43,
			booking:   &bookingentity.Booking{ID: 43},
			wantCode:  errors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(mockAccountRepo)
			bookings := new(mockBookingRepo)
			svc := NewAccountService(accounts, bookings)

			bookings.On("GetByID", mock.Anything, tt.bookingID).Return(tt.booking, nil)
			accounts.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
				return s.UserID == clientID && len(s.Token) == 64 && s.ExpiresAt.After(time.Now().AddDate(0, 0, 29))
			})).Return(nil)

			token, appErr := svc.CreateBookingSession(context.Background(), tt.bookingID)

			if tt.wantCode != "" {
				assert.Empty(t, token)
				if assert.NotNil(t, appErr) {
					assert.Equal(t, tt.wantCode, appErr.Code)
				}
				return
			}

			assert.Nil(t, appErr)
			assert.Len(t, token, 64)
		})
	}
}

func TestGetSession(t *testing.T) {
	user := &entity.User{ID: 5, Username: "amychen", Email: "amy@example.com", UserType: entity.UserTypeClient}

	tests := []struct {
		name     string
		token    string
		user     *entity.User
		session  *entity.Session
		wantCode errors.ErrorCode
	}{
		{
			name:    "valid session",
			token:   "tok",
			user:    user,
			session: &entity.Session{UserID: 5, ExpiresAt: time.Now().Add(time.Hour)},
		},
		{
			name:     "expired session",
			token:    "tok",
			user:     user,
			session:  &entity.Session{UserID: 5, ExpiresAt: time.Now().Add(-time.Hour)},
			wantCode: errors.ErrUnauthorized,
		},
		{
			name:     "unknown token",
			token:    "tok",
			wantCode: errors.ErrUnauthorized,
		},
		{
			name:     "empty token",
			token:    "",
			wantCode: errors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(mockAccountRepo)
			bookings := new(mockBookingRepo)
			svc := NewAccountService(accounts, bookings)

			accounts.On("FindUserBySessionToken", mock.Anything, tt.token).Return(tt.user, tt.session, nil)

			resp, appErr := svc.GetSession(context.Background(), tt.token)

			if tt.wantCode != "" {
				assert.Nil(t, resp)
				if assert.NotNil(t, appErr) {
					assert.Equal(t, tt.wantCode, appErr.Code)
				}
				return
			}

			assert.Nil(t, appErr)
			assert.Equal(t, "amychen", resp.Username)
			assert.Equal(t, "client", resp.UserType)
		})
	}
}
