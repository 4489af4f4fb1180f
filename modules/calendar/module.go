package calendar

import (
	"github.com/labstack/echo/v4"

	"github.com/Ridhima028/ai-calendar-assistant/core/config"
	"github.com/Ridhima028/ai-calendar-assistant/core/middleware"
	authservice "github.com/Ridhima028/ai-calendar-assistant/modules/auth/service"
	"github.com/Ridhima028/ai-calendar-assistant/modules/calendar/controller"
	"github.com/Ridhima028/ai-calendar-assistant/modules/calendar/router"
	"github.com/Ridhima028/ai-calendar-assistant/modules/calendar/service"
)

func Init(e *echo.Echo, auth authservice.AuthServiceInterface, mw *middleware.Middleware) service.CalendarService {
	svc := service.NewCalendarService(auth, config.Get().Calendar.Timezone)
	ctrl := controller.NewCalendarController(svc)

	router.NewCalendarRouter(ctrl).Setup(e, mw)
	return svc
}
