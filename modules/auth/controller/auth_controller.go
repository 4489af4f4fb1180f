package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ridhima028/ai-calendar-assistant/core/constants"
	basecontroller "github.com/Ridhima028/ai-calendar-assistant/core/controller"
	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/middleware"
	"github.com/Ridhima028/ai-calendar-assistant/core/utils"
	"github.com/Ridhima028/ai-calendar-assistant/modules/auth/repository"
	"github.com/Ridhima028/ai-calendar-assistant/modules/auth/service"
)

type AuthController struct {
	basecontroller.BaseController
	AuthService service.AuthServiceInterface
	Repo        repository.AuthRepositoryInterface
	Sessions    *middleware.Middleware
}

func NewAuthController(authService service.AuthServiceInterface, repo repository.AuthRepositoryInterface, sessions *middleware.Middleware) *AuthController {
	return &AuthController{
		BaseController: basecontroller.NewBaseController(),
		AuthService:    authService,
		Repo:           repo,
		Sessions:       sessions,
	}
}

// Login starts the Google consent flow.
// GET /auth/login
func (controller *AuthController) Login(c echo.Context) error {
	ctx := c.Request().Context()

	state := utils.GenerateStateToken()
	if err := controller.Repo.SaveOAuthState(ctx, state, time.Now().Add(constants.OAuthStateTTL)); err != nil {
		return controller.InternalServerError(errors.ErrInternalServer, "Failed to start login", nil)
	}

	// Expired rows accumulate otherwise; cheap to do here.
	if err := controller.Repo.CleanupExpiredOAuthStates(ctx); err != nil {
		logger.Warn("AuthController:Login:CleanupExpiredOAuthStates:Error", "error", err)
	}

	return c.Redirect(http.StatusFound, controller.AuthService.AuthURL(state))
}

// Callback completes the code exchange and stores credentials in the session.
// GET /auth/callback
func (controller *AuthController) Callback(c echo.Context) error {
	ctx := c.Request().Context()

	state := c.QueryParam("state")
	if state == "" {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Missing state parameter", nil)
	}

	saved, err := controller.Repo.GetOAuthState(ctx, state)
	if err != nil {
		return controller.InternalServerError(errors.ErrInternalServer, "Failed to validate state", nil)
	}
	if saved == nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Session expired. Please login again.", nil)
	}

	code := c.QueryParam("code")
	if code == "" {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Missing authorization code", nil)
	}

	creds, appErr := controller.AuthService.Exchange(ctx, code)
	if appErr != nil {
		logger.Error("AuthController:Callback:Exchange:Error", "error", appErr)
		if delErr := controller.Repo.DeleteOAuthState(ctx, state); delErr != nil {
			logger.Warn("AuthController:Callback:DeleteOAuthState:Error", "error", delErr)
		}
		return controller.BadRequest(errors.ErrUnauthorized, "Authentication failed", nil)
	}

	if delErr := controller.Repo.DeleteOAuthState(ctx, state); delErr != nil {
		logger.Warn("AuthController:Callback:DeleteOAuthState:Error", "error", delErr)
	}

	sessState := middleware.GetState(c)
	if sessState == nil {
		return controller.InternalServerError(errors.ErrInternalServer, "Session unavailable", nil)
	}

	sessState.Credentials = creds
	if err := controller.Sessions.Save(ctx, sessState); err != nil {
		logger.Error("AuthController:Callback:SaveSession:Error", "error", err)
		return controller.InternalServerError(errors.ErrInternalServer, "Failed to persist session", nil)
	}

	logger.Info("AuthController:Callback:Authenticated", "session_id", sessState.ID)
	return c.Redirect(http.StatusFound, "/")
}

// Logout clears the session.
// GET /auth/logout
func (controller *AuthController) Logout(c echo.Context) error {
	sessState := middleware.GetState(c)
	if sessState != nil {
		if err := controller.Sessions.Destroy(c, sessState); err != nil {
			logger.Error("AuthController:Logout:Destroy:Error", "error", err)
		}
	}
	return c.Redirect(http.StatusFound, "/")
}
