package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
	"github.com/Ridhima028/ai-calendar-assistant/modules/chat/dto"
)

// resolveConflict interprets the user's reply to an outstanding conflict
// prompt. Keyword checks run in precedence order: a reply containing both
// "delete" and "create" wins over "anyway", which wins over "cancel". An
// unrecognized reply re-prompts and leaves the pending state in place.
func (s *chatService) resolveConflict(ctx context.Context, state *session.State, message string) *dto.ChatResponse {
	reply := strings.ToLower(strings.TrimSpace(message))
	pending := state.Pending

	switch {
	case strings.Contains(reply, "delete") && strings.Contains(reply, "create"):
		return s.deleteAndCreate(ctx, state, pending)
	case strings.Contains(reply, "anyway"):
		return s.createAnyway(ctx, state, pending)
	case strings.Contains(reply, "cancel"):
		return &dto.ChatResponse{Response: "Event creation cancelled. No changes made to your calendar."}
	default:
		return &dto.ChatResponse{
			Response: "I didn't understand your choice. Please reply with:\n" +
				"- 'delete and create' to remove the conflicting events and create the new one\n" +
				"- 'create anyway' to double book\n" +
				"- 'cancel' to keep your calendar unchanged",
			ConflictPending: true,
		}
	}
}

// deleteAndCreate removes the conflicting events best-effort, then creates
// the held candidate. Individual delete failures are logged and skipped;
// there is no rollback of deletions already applied if creation then fails.
func (s *chatService) deleteAndCreate(ctx context.Context, state *session.State, pending *session.PendingResolution) *dto.ChatResponse {
	deleted := 0
	for _, conflict := range pending.Conflicts {
		if conflict.ID == "" {
			continue
		}
		if appErr := s.calendar.DeleteEvent(ctx, state.Credentials, conflict.ID); appErr != nil {
			logger.Warn("ChatService:DeleteAndCreate:DeleteConflict:Error", "eventId", conflict.ID, "error", appErr)
			continue
		}
		deleted++
	}

	candidate := pending.Candidate
	created, appErr := s.calendar.CreateEvent(ctx, state.Credentials, candidate.Title, candidate.Start, candidate.End, candidate.Description)
	if appErr != nil {
		logger.Error("ChatService:DeleteAndCreate:CreateEvent:Error", "error", appErr)
		return &dto.ChatResponse{
			Error: fmt.Sprintf("Removed %d conflicting event(s) but failed to create the new event: %s", deleted, appErr.Message),
		}
	}

	return &dto.ChatResponse{
		Response: fmt.Sprintf("Deleted %d conflicting event(s) and created: %s", deleted, candidate.Title),
		EventCreated: &dto.CreatedEvent{
			ID:          created.ID,
			Name:        candidate.Title,
			Start:       candidate.Start,
			Description: candidate.Description,
		},
	}
}

func (s *chatService) createAnyway(ctx context.Context, state *session.State, pending *session.PendingResolution) *dto.ChatResponse {
	candidate := pending.Candidate
	created, appErr := s.calendar.CreateEvent(ctx, state.Credentials, candidate.Title, candidate.Start, candidate.End, candidate.Description)
	if appErr != nil {
		logger.Error("ChatService:CreateAnyway:CreateEvent:Error", "error", appErr)
		return &dto.ChatResponse{Error: "Failed to create event: " + appErr.Message}
	}
	return &dto.ChatResponse{
		Response: fmt.Sprintf("Created event (double booked): %s", candidate.Title),
		EventCreated: &dto.CreatedEvent{
			ID:          created.ID,
			Name:        candidate.Title,
			Start:       candidate.Start,
			Description: candidate.Description,
		},
	}
}
