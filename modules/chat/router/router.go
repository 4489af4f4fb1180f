package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Ridhima028/ai-calendar-assistant/core/middleware"
	"github.com/Ridhima028/ai-calendar-assistant/modules/chat/controller"
)

type ChatRouter struct {
	controller *controller.ChatController
}

func NewChatRouter(ctrl *controller.ChatController) *ChatRouter {
	return &ChatRouter{controller: ctrl}
}

func (r *ChatRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	v1.Use(mw.Session())

	v1.POST("/chat", r.controller.Chat)
	v1.GET("/chat/history", r.controller.History)
}
