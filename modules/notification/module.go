package notification

import (
	"github.com/hibiken/asynq"

	"tnb-api/modules/notification/service"
	"tnb-api/modules/notification/tasks"
)

// Init wires the notification enqueuer and registers task handlers on the
// worker mux.
func Init(client *asynq.Client, mux *asynq.ServeMux) service.Enqueuer {
	sender := service.NewLogSender()
	handler := service.NewConfirmationHandler(sender)
	mux.HandleFunc(tasks.TypeBookingConfirmation, handler.HandleBookingConfirmation)

	return service.NewAsynqEnqueuer(client)
}
