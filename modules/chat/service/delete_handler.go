package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ridhima028/ai-calendar-assistant/core/constants"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
	calendardto "github.com/Ridhima028/ai-calendar-assistant/modules/calendar/dto"
	"github.com/Ridhima028/ai-calendar-assistant/modules/chat/dto"
)

func (s *chatService) handleDelete(ctx context.Context, state *session.State, message string) *dto.ChatResponse {
	query, appErr := s.deletes.Parse(ctx, message)
	if appErr != nil {
		logger.Warn("ChatService:HandleDelete:Parse:Error", "error", appErr)
		return &dto.ChatResponse{Error: "Could not understand which event to delete. Please try again."}
	}

	now := s.now()
	timeMin := now.AddDate(0, 0, -constants.ListEventsPastDays).UTC().Format(time.RFC3339)
	timeMax := now.AddDate(0, 0, constants.ListEventsFutureDays).UTC().Format(time.RFC3339)

	events, appErr := s.calendar.ListEvents(ctx, state.Credentials, timeMin, timeMax, constants.MaxListedEvents)
	if appErr != nil {
		logger.Error("ChatService:HandleDelete:ListEvents:Error", "error", appErr)
		events = nil
	}
	if len(events) == 0 {
		return &dto.ChatResponse{Response: "No events found in your calendar. Make sure you're logged in and have events scheduled."}
	}

	matches := MatchEvents(events, *query, now)
	switch len(matches) {
	case 0:
		return &dto.ChatResponse{Response: "No matching events found. Please be more specific about which event to delete."}
	case 1:
		return s.deleteMatched(ctx, state, matches[0])
	default:
		return &dto.ChatResponse{Response: formatDisambiguation(matches)}
	}
}

func (s *chatService) deleteMatched(ctx context.Context, state *session.State, event calendardto.Event) *dto.ChatResponse {
	if appErr := s.calendar.DeleteEvent(ctx, state.Credentials, event.ID); appErr != nil {
		logger.Error("ChatService:DeleteMatched:Error", "eventId", event.ID, "error", appErr)
		return &dto.ChatResponse{Error: "Failed to delete event: " + appErr.Message}
	}
	return &dto.ChatResponse{Response: fmt.Sprintf("Deleted event: %s", eventTitle(event))}
}

func formatDisambiguation(matches []calendardto.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matching events:\n", len(matches))
	for i, event := range matches {
		if i == constants.MaxDisambiguationMatches {
			break
		}
		fmt.Fprintf(&b, "- %s at %s\n", eventTitle(event), eventStart(event))
	}
	b.WriteString("\nPlease be more specific about which one to delete.")
	return b.String()
}

func eventTitle(event calendardto.Event) string {
	if event.Summary == "" {
		return "Untitled Event"
	}
	return event.Summary
}

func eventStart(event calendardto.Event) string {
	if event.Start.DateTime != "" {
		return event.Start.DateTime
	}
	if event.Start.Date != "" {
		return event.Start.Date
	}
	return "Unknown time"
}
