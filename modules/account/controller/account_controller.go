package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"tnb-api/core/constants"
	"tnb-api/core/controller"
	"tnb-api/core/errors"
	"tnb-api/modules/account/dto"
	"tnb-api/modules/account/service"
)

const sessionCookieName = "session_token"

type AccountController struct {
	controller.BaseController
	AccountService service.AccountService
}

func NewAccountController(svc service.AccountService) *AccountController {
	return &AccountController{
		BaseController: controller.NewBaseController(),
		AccountService: svc,
	}
}

// CreateBookingSession signs the guest in after a successful booking.
// POST /api/v1/auth/booking-session
func (ac *AccountController) CreateBookingSession(c echo.Context) error {
	var req dto.BookingSessionRequest
	if err := c.Bind(&req); err != nil {
		return ac.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	if req.BookingID == 0 {
		return ac.BadRequest(errors.ErrInvalidInput, "booking_id is required")
	}

	token, appErr := ac.AccountService.CreateBookingSession(c.Request().Context(), req.BookingID)
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().AddDate(0, 0, constants.SessionTTLDays),
	})

	return ac.SuccessResponse(c, nil, "session created")
}

// GetSession resolves the current session cookie or bearer token.
// GET /api/v1/auth/session
func (ac *AccountController) GetSession(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}
	if token == "" {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}

	user, appErr := ac.AccountService.GetSession(c.Request().Context(), token)
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}

	return ac.SuccessResponse(c, user, "session resolved")
}
