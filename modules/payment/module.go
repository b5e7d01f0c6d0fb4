package payment

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"tnb-api/core/config"
	accountsvc "tnb-api/modules/account/service"
	bookingrepo "tnb-api/modules/booking/repository"
	notifsvc "tnb-api/modules/notification/service"
	"tnb-api/modules/payment/controller"
	"tnb-api/modules/payment/router"
	"tnb-api/modules/payment/service"
)

// NewCheckoutClient builds the Stripe client used by the booking module.
// Separate from Init because checkout creation and webhook handling sit on
// opposite sides of the booking repository.
func NewCheckoutClient(cfg *config.Config) service.CheckoutClient {
	return service.NewStripeClient(cfg.Stripe, cfg.Server.BaseURL)
}

// Init wires the webhook endpoint.
func Init(
	e *echo.Echo,
	cfg *config.Config,
	bookings bookingrepo.BookingRepositoryInterface,
	accounts accountsvc.AccountService,
	notifier notifsvc.Enqueuer,
	rdb *redis.Client,
) {
	var deduper service.EventDeduper
	if rdb != nil {
		deduper = service.NewRedisDeduper(rdb)
	}

	confirmations := service.NewConfirmationService(bookings, accounts, notifier)
	ctrl := controller.NewWebhookController(cfg.Stripe.WebhookSecret, confirmations, deduper)
	rtr := router.NewPaymentRouter(ctrl)
	rtr.Setup(e)
}
