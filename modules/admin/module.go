package admin

import (
	"github.com/labstack/echo/v4"

	"tnb-api/core/config"
	"tnb-api/core/middleware"
	"tnb-api/modules/admin/controller"
	"tnb-api/modules/admin/router"
	"tnb-api/modules/admin/service"
	availrepo "tnb-api/modules/availability/repository"
	bookingrepo "tnb-api/modules/booking/repository"
)

// Init wires the admin endpoints behind JWT auth.
func Init(
	e *echo.Echo,
	cfg *config.Config,
	availability availrepo.AvailabilityRepositoryInterface,
	bookings bookingrepo.BookingRepositoryInterface,
) {
	svc := service.NewAdminService(cfg, availability, bookings)
	ctrl := controller.NewAdminController(svc)
	mw := middleware.NewMiddleware(cfg.Auth.JWTSecret)
	rtr := router.NewAdminRouter(ctrl, mw)

	rtr.Setup(e)
}
