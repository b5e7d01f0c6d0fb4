package controller

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"tnb-api/core/controller"
	"tnb-api/core/errors"
	"tnb-api/modules/admin/dto"
	"tnb-api/modules/admin/service"
)

type AdminController struct {
	controller.BaseController
	AdminService service.AdminService
}

func NewAdminController(svc service.AdminService) *AdminController {
	return &AdminController{
		BaseController: controller.NewBaseController(),
		AdminService:   svc,
	}
}

// Login issues an admin bearer token.
// POST /api/v1/admin/login
func (ac *AdminController) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return ac.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	result, appErr := ac.AdminService.Login(c.Request().Context(), req)
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}

	return ac.SuccessResponse(c, result, "login successful")
}

// ReplaceSchedule replaces the whole weekly schedule.
// PUT /api/v1/admin/availability
func (ac *AdminController) ReplaceSchedule(c echo.Context) error {
	var req dto.ReplaceScheduleRequest
	if err := c.Bind(&req); err != nil {
		return ac.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	if appErr := ac.AdminService.ReplaceSchedule(c.Request().Context(), req); appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}

	return ac.SuccessResponse(c, nil, "schedule updated")
}

// AddTimeOff blocks a date range.
// POST /api/v1/admin/time-off
func (ac *AdminController) AddTimeOff(c echo.Context) error {
	var req dto.TimeOffRequest
	if err := c.Bind(&req); err != nil {
		return ac.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	created, appErr := ac.AdminService.AddTimeOff(c.Request().Context(), req)
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}

	return ac.SuccessResponse(c, created, "time off created")
}

// RemoveTimeOff unblocks a date range.
// DELETE /api/v1/admin/time-off/:id
func (ac *AdminController) RemoveTimeOff(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return ac.BadRequest(errors.ErrInvalidInput, "invalid time off id")
	}

	if appErr := ac.AdminService.RemoveTimeOff(c.Request().Context(), id); appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}

	return ac.SuccessResponse(c, nil, "time off deleted")
}

// ListTimeOff lists blocked date ranges.
// GET /api/v1/admin/time-off
func (ac *AdminController) ListTimeOff(c echo.Context) error {
	ranges, appErr := ac.AdminService.ListTimeOff(c.Request().Context())
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}

	return ac.SuccessResponse(c, ranges, "time off listed")
}

// ListBookings lists bookings in a date range.
// GET /api/v1/admin/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ac *AdminController) ListBookings(c echo.Context) error {
	bookings, appErr := ac.AdminService.ListBookings(c.Request().Context(), c.QueryParam("from"), c.QueryParam("to"))
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}

	return ac.SuccessResponse(c, bookings, "bookings listed")
}

// UpdateBookingStatus moves a booking through its status machine.
// PATCH /api/v1/admin/bookings/:id/status
func (ac *AdminController) UpdateBookingStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return ac.BadRequest(errors.ErrInvalidInput, "invalid booking id")
	}

	var req dto.UpdateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return ac.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	booking, appErr := ac.AdminService.ChangeBookingStatus(c.Request().Context(), id, req.Status)
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}

	return ac.SuccessResponse(c, booking, "booking status updated")
}
