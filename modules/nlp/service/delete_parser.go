package service

import (
	"context"
	"encoding/json"

	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/modules/nlp/dto"
)

const deletePrompt = `You are a calendar event deletion parser.

Extract the event details to delete from the user's message.

Return ONLY valid JSON in this format:
{
  "event_title": "title or keywords to search for",
  "time_reference": "today/tomorrow/specific date if mentioned",
  "time": "specific time if mentioned (e.g., 3pm, 14:00)"
}

Examples:
- "Delete my 3pm event today" -> {"event_title": "", "time_reference": "today", "time": "3pm"}
- "Delete the meeting tomorrow" -> {"event_title": "meeting", "time_reference": "tomorrow", "time": ""}
- "Delete group discussion meet" -> {"event_title": "group discussion meet", "time_reference": "", "time": ""}

User message: `

// DeleteParser extracts loose search criteria from a delete-intent message.
// Every field may come back empty.
type DeleteParser interface {
	Parse(ctx context.Context, message string) (*dto.DeleteQuery, *errors.AppError)
}

type deleteParser struct {
	gemini GeminiClient
}

func NewDeleteParser(gemini GeminiClient) DeleteParser {
	return &deleteParser{gemini: gemini}
}

func (p *deleteParser) Parse(ctx context.Context, message string) (*dto.DeleteQuery, *errors.AppError) {
	raw, appErr := p.gemini.GenerateContent(ctx, deletePrompt+message)
	if appErr != nil {
		return nil, appErr
	}

	var query dto.DeleteQuery
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &query); err != nil {
		logger.Error("DeleteParser:Parse:Unmarshal:Error", "error", err, "raw", raw)
		return nil, errors.NewAppError(errors.ErrParseFailure, "could not understand delete request", err)
	}

	return &query, nil
}
