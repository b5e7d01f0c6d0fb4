package controller

import (
	"github.com/labstack/echo/v4"

	"tnb-api/core/controller"
	"tnb-api/core/errors"
	"tnb-api/modules/booking/dto"
	"tnb-api/modules/booking/service"
)

type BookingController struct {
	controller.BaseController
	BookingService service.BookingService
}

func NewBookingController(svc service.BookingService) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		BookingService: svc,
	}
}

// Checkout creates a pending booking and a Stripe checkout session.
// POST /api/v1/bookings/checkout
func (bc *BookingController) Checkout(c echo.Context) error {
	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return bc.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	result, appErr := bc.BookingService.Checkout(c.Request().Context(), &req)
	if appErr != nil {
		return bc.ErrorResponse(c, appErr)
	}

	return bc.SuccessResponse(c, result, "checkout session created")
}
