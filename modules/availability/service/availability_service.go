package service

import (
	"context"
	"strings"
	"time"

	"tnb-api/core/constants"
	"tnb-api/core/errors"
	"tnb-api/core/logger"
	"tnb-api/core/metrics"
	"tnb-api/modules/availability/dto"
	"tnb-api/modules/availability/entity"
	"tnb-api/modules/availability/repository"
)

type AvailabilityService interface {
	GetDayAvailability(ctx context.Context, date time.Time) (*dto.DayAvailabilityResponse, *errors.AppError)
}

type availabilityService struct {
	repo repository.AvailabilityRepositoryInterface
	calc *SlotCalculator
}

func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface) AvailabilityService {
	return &availabilityService{
		repo: repo,
		calc: NewSlotCalculator(),
	}
}

// GetDayAvailability computes the free slots for a date from the recurring
// weekly schedule, time-off ranges and existing bookings.
func (s *availabilityService) GetDayAvailability(ctx context.Context, date time.Time) (*dto.DayAvailabilityResponse, *errors.AppError) {
	dayOfWeek := strings.ToLower(date.Weekday().String())

	window, err := s.repo.GetActiveWindow(ctx, dayOfWeek)
	if err != nil {
		logger.Error("AvailabilityService:GetDayAvailability:GetActiveWindow", "day", dayOfWeek, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load schedule", err)
	}

	if window == nil {
		metrics.IncSlotRequest(entity.ReasonNoSchedule)
		return &dto.DayAvailabilityResponse{
			Date:      date.Format(constants.DateFormat),
			Available: false,
			Reason:    entity.ReasonNoSchedule,
			Message:   "No availability set for this day",
			DayOfWeek: dayOfWeek,
			TimeSlots: []string{},
		}, nil
	}

	blocked, err := s.repo.IsBlocked(ctx, date)
	if err != nil {
		logger.Error("AvailabilityService:GetDayAvailability:IsBlocked", "date", date, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load time off", err)
	}

	if blocked {
		metrics.IncSlotRequest(entity.ReasonBlocked)
		return &dto.DayAvailabilityResponse{
			Date:      date.Format(constants.DateFormat),
			Available: false,
			Reason:    entity.ReasonBlocked,
			Message:   "This date is blocked",
			DayOfWeek: dayOfWeek,
			TimeSlots: []string{},
		}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	booked, err := s.repo.FindBookedIntervals(ctx, dayStart, dayEnd)
	if err != nil {
		logger.Error("AvailabilityService:GetDayAvailability:FindBookedIntervals", "date", date, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load bookings", err)
	}

	slots, calcErr := s.calc.FreeSlots(date, window.StartTime, window.EndTime, booked)
	if calcErr != nil {
		logger.Error("AvailabilityService:GetDayAvailability:FreeSlots", "date", date, "error", calcErr)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to compute slots", calcErr)
	}

	metrics.IncSlotRequest("ok")
	return &dto.DayAvailabilityResponse{
		Date:      date.Format(constants.DateFormat),
		Available: len(slots) > 0,
		DayOfWeek: dayOfWeek,
		WorkingHours: &dto.WorkingHours{
			Start: window.StartTime,
			End:   window.EndTime,
		},
		TimeSlots: FormatSlots(slots),
	}, nil
}
