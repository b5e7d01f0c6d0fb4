package entity

import "time"

// Availability reasons returned when a date has no bookable slots.
const (
	ReasonNoSchedule = "no_schedule"
	ReasonBlocked    = "blocked"
)

// WeeklyAvailability is one recurring working window, keyed by lowercase
// weekday name ("monday".."sunday"). Times are "HH:MM" wall-clock strings.
type WeeklyAvailability struct {
	ID        int64     `db:"id" json:"id"`
	DayOfWeek string    `db:"day_of_week" json:"day_of_week"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TimeOff blocks an inclusive date range regardless of the weekly schedule.
type TimeOff struct {
	ID        int64     `db:"id" json:"id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Reason    *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// BookedInterval is the slice of a booking the slot calculator cares about.
type BookedInterval struct {
	AppointmentDate time.Time `db:"appointment_date"`
	Duration        int       `db:"duration"` // minutes
}
