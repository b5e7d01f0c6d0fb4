package controller

import (
	"time"

	"github.com/labstack/echo/v4"

	"tnb-api/core/constants"
	"tnb-api/core/controller"
	"tnb-api/core/errors"
	"tnb-api/modules/availability/service"
)

type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityService
}

func NewAvailabilityController(svc service.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// GetAvailability returns the free slots for a date.
// GET /api/v1/availability?date=YYYY-MM-DD
func (ac *AvailabilityController) GetAvailability(c echo.Context) error {
	dateParam := c.QueryParam("date")
	if dateParam == "" {
		return ac.BadRequest(errors.ErrInvalidInput, "date parameter is required")
	}

	date, err := time.Parse(constants.DateFormat, dateParam)
	if err != nil {
		return ac.BadRequest(errors.ErrInvalidInput, "date must be formatted YYYY-MM-DD")
	}

	result, appErr := ac.AvailabilityService.GetDayAvailability(c.Request().Context(), date)
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}

	return ac.SuccessResponse(c, result, "availability computed")
}
