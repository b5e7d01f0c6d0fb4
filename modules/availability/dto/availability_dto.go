package dto

type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayAvailabilityResponse is the payload of GET /availability. When the date
// is not bookable, Reason distinguishes a missing schedule from a time-off
// block.
type DayAvailabilityResponse struct {
	Date         string        `json:"date"`
	Available    bool          `json:"available"`
	Reason       string        `json:"reason,omitempty"`
	Message      string        `json:"message,omitempty"`
	DayOfWeek    string        `json:"day_of_week,omitempty"`
	WorkingHours *WorkingHours `json:"working_hours,omitempty"`
	TimeSlots    []string      `json:"time_slots"`
}
