package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// WeeklyWindowRequest is one recurring working window in a schedule update.
type WeeklyWindowRequest struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

// ReplaceScheduleRequest replaces the entire weekly schedule.
type ReplaceScheduleRequest struct {
	Windows []WeeklyWindowRequest `json:"windows"`
}

type TimeOffRequest struct {
	StartDate string  `json:"start_date"` // YYYY-MM-DD
	EndDate   string  `json:"end_date"`   // YYYY-MM-DD
	Reason    *string `json:"reason,omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}
