package service

import (
	"context"

	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/modules/history/entity"
	"github.com/Ridhima028/ai-calendar-assistant/modules/history/repository"
)

const defaultHistoryLimit = 100

// HistoryService records and replays per-session chat transcripts. Recording
// failures never interrupt a chat turn.
type HistoryService interface {
	Record(ctx context.Context, sessionID, role, content string)
	List(ctx context.Context, sessionID string) ([]entity.ChatMessage, error)
}

type historyService struct {
	repo repository.HistoryRepositoryInterface
}

func NewHistoryService(repo repository.HistoryRepositoryInterface) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) Record(ctx context.Context, sessionID, role, content string) {
	if content == "" {
		return
	}

	err := s.repo.Insert(ctx, &entity.ChatMessage{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	})
	if err != nil {
		logger.Warn("HistoryService:Record:Error", "error", err, "session_id", sessionID)
	}
}

func (s *historyService) List(ctx context.Context, sessionID string) ([]entity.ChatMessage, error) {
	return s.repo.ListBySession(ctx, sessionID, defaultHistoryLimit)
}
