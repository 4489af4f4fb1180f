package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ridhima028/ai-calendar-assistant/core/database"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/modules/history/entity"
)

type HistoryRepositoryInterface interface {
	Insert(ctx context.Context, msg *entity.ChatMessage) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]entity.ChatMessage, error)
}

type HistoryRepository struct {
	DB database.IDatabase
}

func NewHistoryRepository(db database.Database) *HistoryRepository {
	return &HistoryRepository{DB: &db}
}

func (r *HistoryRepository) Insert(ctx context.Context, msg *entity.ChatMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	query := `
		INSERT INTO chat_messages (id, session_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	err := r.DB.ExecContext(ctx, query, msg.ID, msg.SessionID, msg.Role, msg.Content)
	if err != nil {
		logger.Error("HistoryRepository:Insert:Error", "error", err, "session_id", msg.SessionID)
		return err
	}
	return nil
}

// ListBySession returns the most recent messages for a session in
// chronological order.
func (r *HistoryRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]entity.ChatMessage, error) {
	var messages []entity.ChatMessage
	query := `
		SELECT id, session_id, role, content, created_at
		FROM (
			SELECT id, session_id, role, content, created_at
			FROM chat_messages
			WHERE session_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`
	err := r.DB.SelectContext(ctx, &messages, query, sessionID, limit)
	if err != nil {
		logger.Error("HistoryRepository:ListBySession:Error", "error", err, "session_id", sessionID)
		return nil, err
	}
	return messages, nil
}
