package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ridhima028/ai-calendar-assistant/core/constants"
	basecontroller "github.com/Ridhima028/ai-calendar-assistant/core/controller"
	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/middleware"
	"github.com/Ridhima028/ai-calendar-assistant/modules/calendar/dto"
	"github.com/Ridhima028/ai-calendar-assistant/modules/calendar/service"
)

type CalendarController struct {
	basecontroller.BaseController
	service service.CalendarService
}

func NewCalendarController(svc service.CalendarService) *CalendarController {
	return &CalendarController{
		BaseController: basecontroller.NewBaseController(),
		service:        svc,
	}
}

// ListEvents returns upcoming events for the dashboard widget.
// GET /api/v1/events
func (c *CalendarController) ListEvents(ctx echo.Context) error {
	state := middleware.GetState(ctx)
	if state == nil || !state.Authenticated() {
		return c.Unauthorized(errors.ErrUnauthorized, "Not authenticated. Please login with Google Calendar.", nil)
	}

	now := time.Now().UTC()
	timeMin := now.AddDate(0, 0, -constants.ListEventsPastDays).Format(time.RFC3339)
	timeMax := now.AddDate(0, 0, constants.ListEventsFutureDays).Format(time.RFC3339)

	events, appErr := c.service.ListEvents(ctx.Request().Context(), state.Credentials, timeMin, timeMax, constants.MaxListedEvents)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusOK, dto.EventListResponse{Events: events})
}
