package service

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"tnb-api/core/logger"
	"tnb-api/modules/notification/tasks"
)

// Enqueuer schedules notification work without blocking the caller.
type Enqueuer interface {
	EnqueueBookingConfirmation(ctx context.Context, payload tasks.BookingConfirmationPayload) error
}

// Sender delivers a rendered notification. The default implementation only
// logs; SMTP delivery plugs in behind the same interface.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// AsynqEnqueuer pushes notification tasks onto the redis-backed queue.
type AsynqEnqueuer struct {
	client *asynq.Client
}

func NewAsynqEnqueuer(client *asynq.Client) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: client}
}

func (e *AsynqEnqueuer) EnqueueBookingConfirmation(ctx context.Context, payload tasks.BookingConfirmationPayload) error {
	task, err := tasks.NewBookingConfirmationTask(payload)
	if err != nil {
		return err
	}

	info, err := e.client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	if err != nil {
		logger.Error("AsynqEnqueuer:EnqueueBookingConfirmation", "booking_id", payload.BookingID, "error", err)
		return err
	}

	logger.Info("AsynqEnqueuer:EnqueueBookingConfirmation:Queued",
		"booking_id", payload.BookingID,
		"task_id", info.ID,
	)
	return nil
}

// ConfirmationHandler consumes booking-confirmation tasks.
type ConfirmationHandler struct {
	sender Sender
}

func NewConfirmationHandler(sender Sender) *ConfirmationHandler {
	return &ConfirmationHandler{sender: sender}
}

func (h *ConfirmationHandler) HandleBookingConfirmation(ctx context.Context, t *asynq.Task) error {
	var payload tasks.BookingConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("ConfirmationHandler:HandleBookingConfirmation:Unmarshal", "error", err)
		return err
	}

	subject := "Your appointment is confirmed"
	body := renderConfirmation(payload)

	if err := h.sender.Send(ctx, payload.GuestEmail, subject, body); err != nil {
		logger.Error("ConfirmationHandler:HandleBookingConfirmation:Send",
			"booking_id", payload.BookingID,
			"guest_email", payload.GuestEmail,
			"error", err,
		)
		return err
	}

	return nil
}
