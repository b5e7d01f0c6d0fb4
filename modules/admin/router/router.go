package router

import (
	"github.com/labstack/echo/v4"

	"tnb-api/core/middleware"
	"tnb-api/modules/admin/controller"
)

type AdminRouter struct {
	adminController *controller.AdminController
	middleware      *middleware.Middleware
}

func NewAdminRouter(adminController *controller.AdminController, mw *middleware.Middleware) *AdminRouter {
	return &AdminRouter{adminController: adminController, middleware: mw}
}

func (r *AdminRouter) Setup(e *echo.Echo) {
	group := e.Group("/api/v1/admin")
	group.POST("/login", r.adminController.Login)

	protected := group.Group("", r.middleware.AuthMiddleware())
	protected.PUT("/availability", r.adminController.ReplaceSchedule)
	protected.GET("/time-off", r.adminController.ListTimeOff)
	protected.POST("/time-off", r.adminController.AddTimeOff)
	protected.DELETE("/time-off/:id", r.adminController.RemoveTimeOff)
	protected.GET("/bookings", r.adminController.ListBookings)
	protected.PATCH("/bookings/:id/status", r.adminController.UpdateBookingStatus)
}
