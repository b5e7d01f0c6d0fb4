package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	basecontroller "tnb-api/core/controller"
	"tnb-api/core/errors"
	"tnb-api/core/logger"
	"tnb-api/core/metrics"
	"tnb-api/modules/payment/service"
)

type WebhookController struct {
	basecontroller.BaseController
	webhookSecret string
	confirmations service.ConfirmationService
	deduper       service.EventDeduper
}

func NewWebhookController(webhookSecret string, confirmations service.ConfirmationService, deduper service.EventDeduper) *WebhookController {
	return &WebhookController{
		BaseController: basecontroller.NewBaseController(),
		webhookSecret:  webhookSecret,
		confirmations:  confirmations,
		deduper:        deduper,
	}
}

// HandleStripeWebhook verifies the event signature and dispatches
// checkout.session.completed to the confirmation service. Any event that
// passes signature verification is acknowledged with 200 so Stripe does
// not retry it; processing failures are logged and retried via replay.
func (wc *WebhookController) HandleStripeWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		logger.Error("WebhookController:HandleStripeWebhook:ReadBody", "error", err)
		return wc.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "unable to read request body", err))
	}

	sigHeader := c.Request().Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, wc.webhookSecret)
	if err != nil {
		logger.Warn("WebhookController:HandleStripeWebhook:BadSignature", "error", err)
		metrics.IncWebhookEvent("unknown", "bad_signature")
		return wc.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "invalid webhook signature", err))
	}

	if event.Type != "checkout.session.completed" {
		metrics.IncWebhookEvent(string(event.Type), "ignored")
		return wc.ack(c)
	}

	if wc.deduper != nil && wc.deduper.AlreadyProcessed(c.Request().Context(), event.ID) {
		logger.Info("WebhookController:HandleStripeWebhook:Duplicate", "event_id", event.ID)
		metrics.IncWebhookEvent(string(event.Type), "duplicate")
		return wc.ack(c)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		logger.Error("WebhookController:HandleStripeWebhook:Unmarshal", "event_id", event.ID, "error", err)
		metrics.IncWebhookEvent(string(event.Type), "malformed")
		return wc.ack(c)
	}

	evt := service.CheckoutCompletedEvent{
		EventID:   event.ID,
		SessionID: session.ID,
		BookingID: session.Metadata["booking_id"],
	}
	if session.PaymentIntent != nil {
		evt.PaymentIntentID = session.PaymentIntent.ID
	}

	if err := wc.confirmations.HandleCheckoutCompleted(c.Request().Context(), evt); err != nil {
		metrics.IncWebhookEvent(string(event.Type), "error")
	} else {
		metrics.IncWebhookEvent(string(event.Type), "processed")
	}

	return wc.ack(c)
}

func (wc *WebhookController) ack(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
