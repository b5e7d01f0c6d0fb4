package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeBookingConfirmation = "booking:confirmation"

// BookingConfirmationPayload carries what the confirmation email needs.
type BookingConfirmationPayload struct {
	BookingID       int64     `json:"booking_id"`
	GuestName       string    `json:"guest_name"`
	GuestEmail      string    `json:"guest_email"`
	AppointmentDate time.Time `json:"appointment_date"`
	TotalPrice      float64   `json:"total_price"`
}

func NewBookingConfirmationTask(payload BookingConfirmationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingConfirmation, data), nil
}
