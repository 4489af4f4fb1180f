package worker

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/Ridhima028/ai-calendar-assistant/core/constants"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/modules/rag/service"
)

// NewReindexTask builds the corpus-reload task. It carries no payload; the
// handler always rebuilds the full index.
func NewReindexTask() *asynq.Task {
	return asynq.NewTask(constants.TaskRAGReindex, nil)
}

type ReindexHandler struct {
	store *service.Store
}

func NewReindexHandler(store *service.Store) *ReindexHandler {
	return &ReindexHandler{store: store}
}

func (h *ReindexHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	logger.Info("RAGWorker:Reindex:Start")
	if err := h.store.Reload(ctx); err != nil {
		logger.Error("RAGWorker:Reindex:Error", "error", err)
		return err
	}
	logger.Info("RAGWorker:Reindex:Done", "documents", h.store.Size())
	return nil
}
