package account

import (
	"github.com/labstack/echo/v4"

	"tnb-api/core/database"
	"tnb-api/modules/account/controller"
	"tnb-api/modules/account/repository"
	"tnb-api/modules/account/router"
	"tnb-api/modules/account/service"
	bookingrepo "tnb-api/modules/booking/repository"
)

// Init initializes the account module and registers routes. The service is
// returned so the payment webhook can reconcile guest accounts.
func Init(e *echo.Echo, db database.IDatabase, bookings bookingrepo.BookingRepositoryInterface) service.AccountService {
	repo := repository.NewAccountRepository(db)
	svc := service.NewAccountService(repo, bookings)
	ctrl := controller.NewAccountController(svc)
	rtr := router.NewAccountRouter(ctrl)

	rtr.Setup(e)
	return svc
}
