package availability

import (
	"github.com/labstack/echo/v4"

	"tnb-api/core/database"
	"tnb-api/modules/availability/controller"
	"tnb-api/modules/availability/repository"
	"tnb-api/modules/availability/router"
	"tnb-api/modules/availability/service"
)

// Init initializes the availability module and registers routes. The
// repository is returned so the admin module can manage the schedule.
func Init(e *echo.Echo, db database.IDatabase) *repository.AvailabilityRepository {
	repo := repository.NewAvailabilityRepository(db)
	svc := service.NewAvailabilityService(repo)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e)
	return repo
}
