package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tnb-api/core/config"
	"tnb-api/core/constants"
	"tnb-api/core/errors"
	"tnb-api/core/logger"
	"tnb-api/modules/admin/dto"
	availentity "tnb-api/modules/availability/entity"
	availrepo "tnb-api/modules/availability/repository"
	bookingentity "tnb-api/modules/booking/entity"
	bookingrepo "tnb-api/modules/booking/repository"
)

var weekdayNames = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

type AdminService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	ReplaceSchedule(ctx context.Context, req dto.ReplaceScheduleRequest) *errors.AppError
	AddTimeOff(ctx context.Context, req dto.TimeOffRequest) (*availentity.TimeOff, *errors.AppError)
	RemoveTimeOff(ctx context.Context, id int64) *errors.AppError
	ListTimeOff(ctx context.Context) ([]availentity.TimeOff, *errors.AppError)
	ListBookings(ctx context.Context, from, to string) ([]bookingentity.Booking, *errors.AppError)
	ChangeBookingStatus(ctx context.Context, id int64, status string) (*bookingentity.Booking, *errors.AppError)
}

type adminService struct {
	cfg          *config.Config
	availability availrepo.AvailabilityRepositoryInterface
	bookings     bookingrepo.BookingRepositoryInterface
}

func NewAdminService(
	cfg *config.Config,
	availability availrepo.AvailabilityRepositoryInterface,
	bookings bookingrepo.BookingRepositoryInterface,
) AdminService {
	return &adminService{
		cfg:          cfg,
		availability: availability,
		bookings:     bookings,
	}
}

// Login checks the operator credentials against the configured account and
// issues a short-lived HS256 token. Email comparison is case-insensitive.
func (s *adminService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	logger.Info("AdminService:Login:Start", "email", req.Email)

	if req.Email == "" || req.Password == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "email and password are required", nil)
	}

	if s.cfg.Admin.Email == "" || s.cfg.Admin.PasswordHash == "" {
		logger.Error("AdminService:Login:NotConfigured")
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid credentials", nil)
	}

	if !strings.EqualFold(req.Email, s.cfg.Admin.Email) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid credentials", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Admin.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("AdminService:Login:BadPassword", "email", req.Email)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid credentials", nil)
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.Auth.TokenTTLMinutes) * time.Minute)
	claims := jwt.MapClaims{
		"sub": s.cfg.Admin.Email,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		logger.Error("AdminService:Login:Sign", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue token", err)
	}

	logger.Info("AdminService:Login:Success", "email", req.Email)
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// ReplaceSchedule swaps the recurring weekly schedule for the submitted
// windows after validating each one.
func (s *adminService) ReplaceSchedule(ctx context.Context, req dto.ReplaceScheduleRequest) *errors.AppError {
	logger.Info("AdminService:ReplaceSchedule:Start", "windows", len(req.Windows))

	windows := make([]availentity.WeeklyAvailability, 0, len(req.Windows))
	for _, w := range req.Windows {
		day := strings.ToLower(strings.TrimSpace(w.DayOfWeek))
		if !weekdayNames[day] {
			return errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("invalid day of week: %s", w.DayOfWeek), nil)
		}

		start, err := time.Parse(constants.TimeFormat, w.StartTime)
		if err != nil {
			return errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("invalid start time for %s: %s", day, w.StartTime), err)
		}
		end, err := time.Parse(constants.TimeFormat, w.EndTime)
		if err != nil {
			return errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("invalid end time for %s: %s", day, w.EndTime), err)
		}
		if !start.Before(end) {
			return errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("start time must be before end time for %s", day), nil)
		}

		windows = append(windows, availentity.WeeklyAvailability{
			DayOfWeek: day,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			IsActive:  w.IsActive,
		})
	}

	if err := s.availability.ReplaceWeekly(ctx, windows); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to update schedule", err)
	}

	logger.Info("AdminService:ReplaceSchedule:Success", "windows", len(windows))
	return nil
}

func (s *adminService) AddTimeOff(ctx context.Context, req dto.TimeOffRequest) (*availentity.TimeOff, *errors.AppError) {
	start, err := time.Parse(constants.DateFormat, req.StartDate)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid start date, expected YYYY-MM-DD", err)
	}
	end, err := time.Parse(constants.DateFormat, req.EndDate)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid end date, expected YYYY-MM-DD", err)
	}
	if end.Before(start) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end date must not be before start date", nil)
	}

	created, err := s.availability.CreateTimeOff(ctx, &availentity.TimeOff{
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create time off", err)
	}

	logger.Info("AdminService:AddTimeOff:Success", "id", created.ID, "start", req.StartDate, "end", req.EndDate)
	return created, nil
}

func (s *adminService) RemoveTimeOff(ctx context.Context, id int64) *errors.AppError {
	if err := s.availability.DeleteTimeOff(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete time off", err)
	}
	return nil
}

func (s *adminService) ListTimeOff(ctx context.Context) ([]availentity.TimeOff, *errors.AppError) {
	ranges, err := s.availability.ListTimeOff(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list time off", err)
	}
	return ranges, nil
}

// ListBookings returns bookings in the inclusive [from, to] date range.
// Either bound may be empty; defaults cover the surrounding month.
func (s *adminService) ListBookings(ctx context.Context, from, to string) ([]bookingentity.Booking, *errors.AppError) {
	now := time.Now()
	fromTime := now.AddDate(0, 0, -7)
	toTime := now.AddDate(0, 1, 0)

	if from != "" {
		parsed, err := time.Parse(constants.DateFormat, from)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid from date, expected YYYY-MM-DD", err)
		}
		fromTime = parsed
	}
	if to != "" {
		parsed, err := time.Parse(constants.DateFormat, to)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid to date, expected YYYY-MM-DD", err)
		}
		toTime = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	bookings, err := s.bookings.ListRange(ctx, fromTime, toTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list bookings", err)
	}
	return bookings, nil
}

// ChangeBookingStatus applies one step of the booking status machine.
// Terminal states are final; completed requires the booking to be paid.
func (s *adminService) ChangeBookingStatus(ctx context.Context, id int64, status string) (*bookingentity.Booking, *errors.AppError) {
	target := bookingentity.BookingStatus(status)
	if !isValidStatus(target) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("invalid status: %s", status), nil)
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}

	if booking.Status == target {
		return booking, nil
	}

	if !canTransition(booking.Status, target) {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("cannot change booking from %s to %s", booking.Status, target), nil)
	}

	if target == bookingentity.BookingStatusCompleted && booking.PaymentStatus != bookingentity.PaymentStatusPaid {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "cannot complete an unpaid booking", nil)
	}

	if err := s.bookings.UpdateStatus(ctx, id, target); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update booking status", err)
	}

	logger.Info("AdminService:ChangeBookingStatus:Success", "id", id, "from", booking.Status, "to", target)
	booking.Status = target
	return booking, nil
}
