package router

import (
	"github.com/labstack/echo/v4"

	"tnb-api/modules/account/controller"
)

// AccountRouter handles auth/session routes
type AccountRouter struct {
	AccountController *controller.AccountController
}

func NewAccountRouter(accountController *controller.AccountController) *AccountRouter {
	return &AccountRouter{
		AccountController: accountController,
	}
}

// Setup registers auth routes
func (r *AccountRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	auth := v1.Group("/auth")

	auth.POST("/booking-session", r.AccountController.CreateBookingSession)
	auth.GET("/session", r.AccountController.GetSession)
}
