package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Ridhima028/ai-calendar-assistant/core/middleware"
	"github.com/Ridhima028/ai-calendar-assistant/modules/auth/controller"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(ctrl *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: ctrl}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	auth := e.Group("/auth")
	auth.Use(mw.Session())

	auth.GET("/login", r.controller.Login)
	auth.GET("/callback", r.controller.Callback)
	auth.GET("/logout", r.controller.Logout)
}
