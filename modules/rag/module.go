package rag

import (
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"github.com/Ridhima028/ai-calendar-assistant/core/config"
	nlpservice "github.com/Ridhima028/ai-calendar-assistant/modules/nlp/service"
	"github.com/Ridhima028/ai-calendar-assistant/modules/rag/controller"
	"github.com/Ridhima028/ai-calendar-assistant/modules/rag/service"
)

// Init wires the Q&A chain and its admin endpoint. The returned store is
// registered with the asynq worker by the server.
func Init(e *echo.Echo, gemini nlpservice.GeminiClient, tasks *asynq.Client) (*service.Store, service.AnswerService) {
	store := service.NewStore(config.Get().RAG)
	answerService := service.NewRAGService(store, gemini)
	ctrl := controller.NewRAGController(tasks)

	e.POST("/api/v1/rag/reindex", ctrl.Reindex)

	return store, answerService
}
