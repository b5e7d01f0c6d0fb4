package repository

import (
	"context"
	"database/sql"
	"time"

	"tnb-api/core/database"
	"tnb-api/core/logger"
	"tnb-api/modules/availability/entity"
)

// AvailabilityRepository handles schedule and time-off database operations
type AvailabilityRepository struct {
	DB database.IDatabase
}

func NewAvailabilityRepository(db database.IDatabase) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

// AvailabilityRepositoryInterface defines the repository contract
type AvailabilityRepositoryInterface interface {
	GetActiveWindow(ctx context.Context, dayOfWeek string) (*entity.WeeklyAvailability, error)
	IsBlocked(ctx context.Context, date time.Time) (bool, error)
	FindBookedIntervals(ctx context.Context, dayStart, dayEnd time.Time) ([]entity.BookedInterval, error)

	ReplaceWeekly(ctx context.Context, windows []entity.WeeklyAvailability) error
	CreateTimeOff(ctx context.Context, timeOff *entity.TimeOff) (*entity.TimeOff, error)
	DeleteTimeOff(ctx context.Context, id int64) error
	ListTimeOff(ctx context.Context) ([]entity.TimeOff, error)
}

// GetActiveWindow returns the active weekly window for a lowercase weekday
// name, or nil when none is configured.
func (r *AvailabilityRepository) GetActiveWindow(ctx context.Context, dayOfWeek string) (*entity.WeeklyAvailability, error) {
	query := `
		SELECT id, day_of_week, start_time, end_time, is_active, created_at, updated_at
		FROM weekly_availability
		WHERE day_of_week = $1
		  AND is_active = true
		ORDER BY start_time ASC
		LIMIT 1
	`

	var window entity.WeeklyAvailability
	err := r.DB.GetContext(ctx, &window, query, dayOfWeek)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetActiveWindow", err)
		return nil, err
	}

	return &window, nil
}

// IsBlocked reports whether the date falls inside any time-off range
// (inclusive on both ends).
func (r *AvailabilityRepository) IsBlocked(ctx context.Context, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM time_off
			WHERE $1::date BETWEEN start_date::date AND end_date::date
		)
	`

	var blocked bool
	err := r.DB.QueryRowContext(ctx, query, date).Scan(&blocked)
	if err != nil {
		logger.Error("AvailabilityRepository:IsBlocked", err)
		return false, err
	}

	return blocked, nil
}

// FindBookedIntervals returns the appointment intervals occupying the day.
// Cancelled and no-show bookings do not hold their slot.
func (r *AvailabilityRepository) FindBookedIntervals(ctx context.Context, dayStart, dayEnd time.Time) ([]entity.BookedInterval, error) {
	query := `
		SELECT appointment_date, duration
		FROM bookings
		WHERE appointment_date >= $1
		  AND appointment_date <= $2
		  AND status NOT IN ('cancelled', 'no_show')
	`

	var intervals []entity.BookedInterval
	err := r.DB.SelectContext(ctx, &intervals, query, dayStart, dayEnd)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.BookedInterval{}, nil
		}
		logger.Error("AvailabilityRepository:FindBookedIntervals", err)
		return nil, err
	}

	return intervals, nil
}

// ReplaceWeekly swaps the whole recurring schedule in one transaction.
func (r *AvailabilityRepository) ReplaceWeekly(ctx context.Context, windows []entity.WeeklyAvailability) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("AvailabilityRepository:ReplaceWeekly:Begin", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM weekly_availability`); err != nil {
		logger.Error("AvailabilityRepository:ReplaceWeekly:Delete", err)
		return err
	}

	insert := `
		INSERT INTO weekly_availability (day_of_week, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4)
	`
	for _, w := range windows {
		if _, err := tx.ExecContext(ctx, insert, w.DayOfWeek, w.StartTime, w.EndTime, w.IsActive); err != nil {
			logger.Error("AvailabilityRepository:ReplaceWeekly:Insert", "day", w.DayOfWeek, "error", err)
			return err
		}
	}

	return tx.Commit()
}

func (r *AvailabilityRepository) CreateTimeOff(ctx context.Context, timeOff *entity.TimeOff) (*entity.TimeOff, error) {
	query := `
		INSERT INTO time_off (start_date, end_date, reason)
		VALUES ($1, $2, $3)
		RETURNING id, start_date, end_date, reason, created_at
	`

	var created entity.TimeOff
	err := r.DB.GetContext(ctx, &created, query, timeOff.StartDate, timeOff.EndDate, timeOff.Reason)
	if err != nil {
		logger.Error("AvailabilityRepository:CreateTimeOff", err)
		return nil, err
	}

	return &created, nil
}

func (r *AvailabilityRepository) DeleteTimeOff(ctx context.Context, id int64) error {
	query := `DELETE FROM time_off WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("AvailabilityRepository:DeleteTimeOff", "id", id, "error", err)
		return err
	}
	return nil
}

func (r *AvailabilityRepository) ListTimeOff(ctx context.Context) ([]entity.TimeOff, error) {
	query := `
		SELECT id, start_date, end_date, reason, created_at
		FROM time_off
		ORDER BY start_date ASC
	`

	var ranges []entity.TimeOff
	err := r.DB.SelectContext(ctx, &ranges, query)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.TimeOff{}, nil
		}
		logger.Error("AvailabilityRepository:ListTimeOff", err)
		return nil, err
	}

	return ranges, nil
}
