package booking

import (
	"github.com/labstack/echo/v4"

	"tnb-api/core/database"
	"tnb-api/modules/booking/controller"
	"tnb-api/modules/booking/repository"
	"tnb-api/modules/booking/router"
	"tnb-api/modules/booking/service"
	catalogrepo "tnb-api/modules/catalog/repository"
	paymentsvc "tnb-api/modules/payment/service"
)

// Init initializes the booking module and registers routes. The repository
// is returned for the payment webhook and the admin module.
func Init(e *echo.Echo, db database.IDatabase, services catalogrepo.ServiceRepositoryInterface, checkout paymentsvc.CheckoutClient) *repository.BookingRepository {
	repo := repository.NewBookingRepository(db)
	svc := service.NewBookingService(services, repo, checkout)
	ctrl := controller.NewBookingController(svc)
	rtr := router.NewBookingRouter(ctrl)

	rtr.Setup(e)
	return repo
}
