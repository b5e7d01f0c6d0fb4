package router

import (
	"github.com/labstack/echo/v4"

	"tnb-api/modules/availability/controller"
)

// AvailabilityRouter handles availability routes
type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

func NewAvailabilityRouter(availabilityController *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{
		AvailabilityController: availabilityController,
	}
}

// Setup registers availability routes
func (r *AvailabilityRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.GET("/availability", r.AvailabilityController.GetAvailability)
}
