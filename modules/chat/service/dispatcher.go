package service

import (
	"context"
	"time"

	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
	calendarservice "github.com/Ridhima028/ai-calendar-assistant/modules/calendar/service"
	"github.com/Ridhima028/ai-calendar-assistant/modules/chat/dto"
	nlpdto "github.com/Ridhima028/ai-calendar-assistant/modules/nlp/dto"
	nlpservice "github.com/Ridhima028/ai-calendar-assistant/modules/nlp/service"
	ragservice "github.com/Ridhima028/ai-calendar-assistant/modules/rag/service"
)

type ChatService interface {
	Dispatch(ctx context.Context, state *session.State, message string) *dto.ChatResponse
}

type chatService struct {
	intents  nlpservice.IntentClassifier
	events   nlpservice.EventParser
	deletes  nlpservice.DeleteParser
	calendar calendarservice.CalendarService
	answers  ragservice.AnswerService
	now      func() time.Time
}

func NewChatService(
	intents nlpservice.IntentClassifier,
	events nlpservice.EventParser,
	deletes nlpservice.DeleteParser,
	calendar calendarservice.CalendarService,
	answers ragservice.AnswerService,
) ChatService {
	return &chatService{
		intents:  intents,
		events:   events,
		deletes:  deletes,
		calendar: calendar,
		answers:  answers,
		now:      time.Now,
	}
}

// Dispatch routes one user message. A pending conflict resolution always
// takes the message first; the intent classifier is never consulted while a
// resolution is outstanding. The caller persists the mutated state.
func (s *chatService) Dispatch(ctx context.Context, state *session.State, message string) *dto.ChatResponse {
	if state.HasPending() {
		result := s.resolveConflict(ctx, state, message)
		if !result.ConflictPending {
			state.ClearPending()
		}
		return result
	}

	intent, appErr := s.intents.Classify(ctx, message)
	if appErr != nil {
		logger.Error("ChatService:Dispatch:Classify:Error", "error", appErr)
		return &dto.ChatResponse{Error: "Could not understand your message. Please try again."}
	}

	switch intent {
	case nlpdto.IntentCreateEvent:
		result := s.handleCreate(ctx, state, message)
		if result.ConflictDetected && result.PendingEvent != nil {
			state.InstallPending(*result.PendingEvent, result.Conflicts)
		}
		return result
	case nlpdto.IntentDeleteEvent:
		return s.handleDelete(ctx, state, message)
	case nlpdto.IntentQuery:
		return s.handleQuery(ctx, message)
	default:
		logger.Warn("ChatService:Dispatch:UnsupportedIntent", "intent", intent)
		return &dto.ChatResponse{Error: "Sorry, I can't handle that request yet. Try creating, deleting or asking about events."}
	}
}

func (s *chatService) handleQuery(ctx context.Context, message string) *dto.ChatResponse {
	answer, appErr := s.answers.Answer(ctx, message)
	if appErr != nil {
		logger.Error("ChatService:HandleQuery:Error", "error", appErr)
		return &dto.ChatResponse{Error: "Could not answer your question. Please try again."}
	}
	return &dto.ChatResponse{Response: answer}
}
