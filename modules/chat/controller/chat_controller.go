package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ridhima028/ai-calendar-assistant/core/controller"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/middleware"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
	"github.com/Ridhima028/ai-calendar-assistant/modules/chat/dto"
	chatservice "github.com/Ridhima028/ai-calendar-assistant/modules/chat/service"
	historyentity "github.com/Ridhima028/ai-calendar-assistant/modules/history/entity"
	historyservice "github.com/Ridhima028/ai-calendar-assistant/modules/history/service"
)

type ChatController struct {
	controller.BaseController
	service  chatservice.ChatService
	sessions *middleware.Middleware
	history  historyservice.HistoryService
}

func NewChatController(svc chatservice.ChatService, sessions *middleware.Middleware, history historyservice.HistoryService) *ChatController {
	return &ChatController{
		BaseController: controller.NewBaseController(),
		service:        svc,
		sessions:       sessions,
		history:        history,
	}
}

// Chat handles one conversational turn. The response body is always the
// chat wire shape, including on auth and validation failures, so clients
// have a single surface to render.
func (ctl *ChatController) Chat(c echo.Context) error {
	state := middleware.GetState(c)
	if state == nil || !state.Authenticated() {
		return c.JSON(http.StatusUnauthorized, dto.ChatResponse{
			Error: "Not authenticated. Please login with Google Calendar.",
		})
	}

	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, dto.ChatResponse{Error: "message is required"})
	}

	ctx := c.Request().Context()
	result := ctl.dispatchSafe(ctx, state, req.Message)

	if err := ctl.sessions.Save(ctx, state); err != nil {
		logger.Error("ChatController:Chat:SaveSession:Error", "error", err, "session_id", state.ID)
	}

	ctl.history.Record(ctx, state.ID, historyentity.RoleUser, req.Message)
	ctl.history.Record(ctx, state.ID, historyentity.RoleAssistant, transcriptText(result))

	return c.JSON(http.StatusOK, result)
}

// dispatchSafe is the panic boundary around message handling. Whatever goes
// wrong inside a single turn must not take the server down or leak internals.
func (ctl *ChatController) dispatchSafe(ctx context.Context, state *session.State, message string) (result *dto.ChatResponse) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("ChatController:Dispatch:Panic", "panic", r)
			result = &dto.ChatResponse{Error: "Something went wrong processing your message. Please try again."}
		}
	}()
	return ctl.service.Dispatch(ctx, state, message)
}

func (ctl *ChatController) History(c echo.Context) error {
	state := middleware.GetState(c)
	if state == nil {
		return c.JSON(http.StatusUnauthorized, dto.ChatResponse{Error: "No active session."})
	}

	messages, err := ctl.history.List(c.Request().Context(), state.ID)
	if err != nil {
		return ctl.ErrorResponse(c, err)
	}
	return ctl.SuccessResponse(c, messages, "chat history retrieved")
}

func transcriptText(result *dto.ChatResponse) string {
	if result.Error != "" {
		return result.Error
	}
	return result.Response
}
