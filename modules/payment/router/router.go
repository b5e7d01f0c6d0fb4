package router

import (
	"github.com/labstack/echo/v4"

	"tnb-api/modules/payment/controller"
)

type PaymentRouter struct {
	webhookController *controller.WebhookController
}

func NewPaymentRouter(webhookController *controller.WebhookController) *PaymentRouter {
	return &PaymentRouter{webhookController: webhookController}
}

func (r *PaymentRouter) Setup(e *echo.Echo) {
	group := e.Group("/api/v1/webhooks")
	group.POST("/stripe", r.webhookController.HandleStripeWebhook)
}
