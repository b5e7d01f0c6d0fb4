package router

import (
	"github.com/labstack/echo/v4"

	"tnb-api/modules/booking/controller"
)

// BookingRouter handles booking routes
type BookingRouter struct {
	BookingController *controller.BookingController
}

func NewBookingRouter(bookingController *controller.BookingController) *BookingRouter {
	return &BookingRouter{
		BookingController: bookingController,
	}
}

// Setup registers booking routes
func (r *BookingRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.POST("/bookings/checkout", r.BookingController.Checkout)
}
