package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
	"github.com/Ridhima028/ai-calendar-assistant/modules/chat/dto"
)

func (s *chatService) handleCreate(ctx context.Context, state *session.State, message string) *dto.ChatResponse {
	fields, appErr := s.events.Parse(ctx, message)
	if appErr != nil {
		logger.Warn("ChatService:HandleCreate:Parse:Error", "error", appErr)
		return &dto.ChatResponse{Error: appErr.Message}
	}

	conflicts := s.detectConflicts(ctx, state.Credentials, fields.Start, fields.End)
	if len(conflicts) > 0 {
		candidate := session.CandidateEvent{
			Title:       fields.Title,
			Start:       fields.Start,
			End:         fields.End,
			Description: fields.Description,
		}
		return &dto.ChatResponse{
			Response:         formatConflictPrompt(conflicts),
			ConflictDetected: true,
			Conflicts:        conflicts,
			PendingEvent:     &candidate,
		}
	}

	created, appErr := s.calendar.CreateEvent(ctx, state.Credentials, fields.Title, fields.Start, fields.End, fields.Description)
	if appErr != nil {
		logger.Error("ChatService:HandleCreate:CreateEvent:Error", "error", appErr)
		return &dto.ChatResponse{Error: "Failed to create event: " + appErr.Message}
	}

	return &dto.ChatResponse{
		Response: fmt.Sprintf("Created event: %s", fields.Title),
		EventCreated: &dto.CreatedEvent{
			ID:          created.ID,
			Name:        fields.Title,
			Start:       fields.Start,
			Description: fields.Description,
		},
	}
}

func formatConflictPrompt(conflicts []session.Conflict) string {
	var b strings.Builder
	b.WriteString("Time conflict detected!\n\nExisting events:\n")
	for _, conflict := range conflicts {
		title := conflict.Title
		if title == "" {
			title = "Untitled Event"
		}
		fmt.Fprintf(&b, "- %s (%s to %s)\n", title, conflict.Start, conflict.End)
	}
	b.WriteString("\nWould you like me to:\n")
	b.WriteString("1. Delete the existing event(s) and create the new one?\n")
	b.WriteString("2. Create the new event anyway (double booking)?\n")
	b.WriteString("3. Cancel?\n\n")
	b.WriteString("Please reply with 'delete and create', 'create anyway', or 'cancel'.")
	return b.String()
}
