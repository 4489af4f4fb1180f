package chat

import (
	"github.com/labstack/echo/v4"

	"github.com/Ridhima028/ai-calendar-assistant/core/config"
	"github.com/Ridhima028/ai-calendar-assistant/core/database"
	"github.com/Ridhima028/ai-calendar-assistant/core/middleware"
	calendarservice "github.com/Ridhima028/ai-calendar-assistant/modules/calendar/service"
	"github.com/Ridhima028/ai-calendar-assistant/modules/chat/controller"
	"github.com/Ridhima028/ai-calendar-assistant/modules/chat/router"
	"github.com/Ridhima028/ai-calendar-assistant/modules/chat/service"
	historyrepository "github.com/Ridhima028/ai-calendar-assistant/modules/history/repository"
	historyservice "github.com/Ridhima028/ai-calendar-assistant/modules/history/service"
	nlpservice "github.com/Ridhima028/ai-calendar-assistant/modules/nlp/service"
	ragservice "github.com/Ridhima028/ai-calendar-assistant/modules/rag/service"
)

func Init(
	e *echo.Echo,
	db database.Database,
	mw *middleware.Middleware,
	gemini nlpservice.GeminiClient,
	calendar calendarservice.CalendarService,
	answers ragservice.AnswerService,
) {
	cfg := config.Get()

	intents := nlpservice.NewIntentService(gemini, cfg.Gemini)
	events := nlpservice.NewEventParser(gemini, cfg.Calendar)
	deletes := nlpservice.NewDeleteParser(gemini)

	historyRepo := historyrepository.NewHistoryRepository(db)
	history := historyservice.NewHistoryService(historyRepo)

	svc := service.NewChatService(intents, events, deletes, calendar, answers)
	ctrl := controller.NewChatController(svc, mw, history)

	router.NewChatRouter(ctrl).Setup(e, mw)
}
