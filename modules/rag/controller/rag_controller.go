package controller

import (
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	basecontroller "github.com/Ridhima028/ai-calendar-assistant/core/controller"
	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/modules/rag/worker"
)

type RAGController struct {
	basecontroller.BaseController
	tasks *asynq.Client
}

func NewRAGController(tasks *asynq.Client) *RAGController {
	return &RAGController{
		BaseController: basecontroller.NewBaseController(),
		tasks:          tasks,
	}
}

// Reindex enqueues a corpus rebuild.
// POST /api/v1/rag/reindex
func (c *RAGController) Reindex(ctx echo.Context) error {
	info, err := c.tasks.EnqueueContext(ctx.Request().Context(), worker.NewReindexTask())
	if err != nil {
		logger.Error("RAGController:Reindex:Enqueue:Error", "error", err)
		return c.InternalServerError(errors.ErrInternalServer, "Failed to enqueue reindex", nil)
	}

	return ctx.JSON(http.StatusAccepted, map[string]string{
		"task_id": info.ID,
		"state":   info.State.String(),
	})
}
