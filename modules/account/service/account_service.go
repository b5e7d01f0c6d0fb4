package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"tnb-api/core/constants"
	"tnb-api/core/errors"
	"tnb-api/core/logger"
	"tnb-api/core/utils"
	"tnb-api/modules/account/dto"
	"tnb-api/modules/account/entity"
	"tnb-api/modules/account/repository"
	bookingrepo "tnb-api/modules/booking/repository"
)

type AccountService interface {
	CreateOrGet(ctx context.Context, email, name string) (*dto.BookingAccount, *errors.AppError)
	CreateBookingSession(ctx context.Context, bookingID int64) (string, *errors.AppError)
	GetSession(ctx context.Context, token string) (*dto.SessionResponse, *errors.AppError)
}

type accountService struct {
	accounts repository.AccountRepositoryInterface
	bookings bookingrepo.BookingRepositoryInterface
}

func NewAccountService(accounts repository.AccountRepositoryInterface, bookings bookingrepo.BookingRepositoryInterface) AccountService {
	return &accountService{
		accounts: accounts,
		bookings: bookings,
	}
}

// CreateOrGet returns the account for an email, creating it on first sight.
// Idempotent by email: re-encountering the same address always yields the
// same account.
func (s *accountService) CreateOrGet(ctx context.Context, email, name string) (*dto.BookingAccount, *errors.AppError) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "email is required", nil)
	}

	existing, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("AccountService:CreateOrGet:FindByEmail", "email", email, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up account", err)
	}

	if existing != nil {
		logger.Info("AccountService:CreateOrGet:ExistingAccount", "email", email, "user_id", existing.ID)
		return &dto.BookingAccount{
			UserID:       existing.ID,
			Email:        existing.Email,
			Username:     existing.Username,
			IsNewAccount: false,
		}, nil
	}

	username, appErr := s.pickUsername(ctx, email, name)
	if appErr != nil {
		return nil, appErr
	}

	created, err := s.accounts.Insert(ctx, &entity.User{
		Username: username,
		Email:    email,
		UserType: entity.UserTypeClient,
	})
	if err != nil {
		logger.Error("AccountService:CreateOrGet:Insert", "email", email, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create account", err)
	}

	logger.Info("AccountService:CreateOrGet:AccountCreated",
		"email", email,
		"user_id", created.ID,
		"username", created.Username,
	)

	return &dto.BookingAccount{
		UserID:       created.ID,
		Email:        created.Email,
		Username:     created.Username,
		IsNewAccount: true,
	}, nil
}

// pickUsername derives a base username from the guest name, probes for
// uniqueness and appends a random suffix on collision, retrying up to the
// attempt budget before failing loudly.
func (s *accountService) pickUsername(ctx context.Context, email, name string) (string, *errors.AppError) {
	base := baseUsername(name)
	if base == "" {
		base = baseUsername(strings.SplitN(email, "@", 2)[0])
	}
	if base == "" {
		base = "client"
	}

	candidate := base
	for attempt := 0; attempt < constants.UsernameMaxAttempts; attempt++ {
		taken, err := s.accounts.UsernameExists(ctx, candidate)
		if err != nil {
			logger.Error("AccountService:pickUsername:UsernameExists", "candidate", candidate, "error", err)
			return "", errors.NewAppError(errors.ErrInternalServer, "failed to probe username", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + utils.GenerateSuffix(constants.UsernameSuffixAlphabet, constants.UsernameSuffixLength)
	}

	logger.Error("AccountService:pickUsername:Exhausted", "email", email, "base", base)
	return "", errors.NewAppError(errors.ErrAlreadyExists,
		fmt.Sprintf("could not find a free username after %d attempts", constants.UsernameMaxAttempts), nil)
}

// baseUsername lowercases and strips the name down to ASCII alphanumerics,
// capped at the username length limit.
func baseUsername(name string) string {
	cleaned := strings.ReplaceAll(slug.Make(name), "-", "")
	if len(cleaned) > constants.UsernameMaxLength {
		cleaned = cleaned[:constants.UsernameMaxLength]
	}
	return cleaned
}

// CreateBookingSession issues a session token for the account linked to a
// booking, signing the guest in right after checkout.
func (s *accountService) CreateBookingSession(ctx context.Context, bookingID int64) (string, *errors.AppError) {
	if bookingID <= 0 {
		return "", errors.NewAppError(errors.ErrInvalidInput, "booking_id is required", nil)
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		logger.Error("AccountService:CreateBookingSession:GetByID", "booking_id", bookingID, "error", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to load booking", err)
	}

	if booking == nil || booking.ClientID == nil {
		return "", errors.NewAppError(errors.ErrNotFound, "booking not found or no associated account", nil)
	}

	token := utils.GenerateToken(constants.SessionTokenLength)
	session := &entity.Session{
		UserID:    *booking.ClientID,
		Token:     token,
		ExpiresAt: time.Now().AddDate(0, 0, constants.SessionTTLDays),
	}

	if err := s.accounts.CreateSession(ctx, session); err != nil {
		logger.Error("AccountService:CreateBookingSession:CreateSession", "booking_id", bookingID, "user_id", *booking.ClientID, "error", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to create session", err)
	}

	return token, nil
}

// GetSession resolves a session token to the signed-in user.
func (s *accountService) GetSession(ctx context.Context, token string) (*dto.SessionResponse, *errors.AppError) {
	if token == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "no session", nil)
	}

	user, session, err := s.accounts.FindUserBySessionToken(ctx, token)
	if err != nil {
		logger.Error("AccountService:GetSession:FindUserBySessionToken", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load session", err)
	}

	if user == nil || session == nil || session.ExpiresAt.Before(time.Now()) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "no session", nil)
	}

	return &dto.SessionResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		UserType: string(user.UserType),
	}, nil
}
