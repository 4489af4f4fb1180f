package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Ridhima028/ai-calendar-assistant/core/config"
	"github.com/Ridhima028/ai-calendar-assistant/core/database"
	"github.com/Ridhima028/ai-calendar-assistant/core/middleware"
	"github.com/Ridhima028/ai-calendar-assistant/modules/auth/controller"
	"github.com/Ridhima028/ai-calendar-assistant/modules/auth/repository"
	"github.com/Ridhima028/ai-calendar-assistant/modules/auth/router"
	"github.com/Ridhima028/ai-calendar-assistant/modules/auth/service"
)

func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewAuthRepository(db)
	authService := service.NewAuthService(config.Get().GoogleAPI)
	ctrl := controller.NewAuthController(authService, repo, mw)

	router.NewAuthRouter(ctrl).Setup(e, mw)
}

// GetService returns an AuthService for use by other modules.
func GetService() service.AuthServiceInterface {
	return service.NewAuthService(config.Get().GoogleAPI)
}
