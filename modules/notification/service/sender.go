package service

import (
	"context"
	"fmt"

	"tnb-api/modules/notification/tasks"

	"tnb-api/core/logger"
)

// LogSender records deliveries in the log. Stands in until an email
// provider is wired up.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, recipient, subject, body string) error {
	logger.Info("LogSender:Send",
		"recipient", recipient,
		"subject", subject,
		"body", body,
	)
	return nil
}

func renderConfirmation(p tasks.BookingConfirmationPayload) string {
	return fmt.Sprintf(
		"Hi %s, your appointment on %s is confirmed. Total paid: £%.2f. Booking reference: %d.",
		p.GuestName,
		p.AppointmentDate.Format("Monday, 2 January 2006 at 3:04 PM"),
		p.TotalPrice,
		p.BookingID,
	)
}
