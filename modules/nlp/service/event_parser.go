package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ridhima028/ai-calendar-assistant/core/config"
	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/modules/nlp/dto"
)

// EventParser extracts structured event fields from a create-intent message.
type EventParser interface {
	Parse(ctx context.Context, message string) (*dto.EventFields, *errors.AppError)
}

type eventParser struct {
	gemini   GeminiClient
	timezone string
	now      func() time.Time
}

func NewEventParser(gemini GeminiClient, cfg config.CalendarConfig) EventParser {
	return &eventParser{
		gemini:   gemini,
		timezone: cfg.Timezone,
		now:      time.Now,
	}
}

// eventPrompt carries the current date so relative references like "tomorrow"
// resolve to absolute dates on the model side.
func (p *eventParser) eventPrompt() string {
	loc, err := time.LoadLocation(p.timezone)
	if err != nil {
		loc = time.UTC
	}
	today := p.now().In(loc)
	tomorrow := today.AddDate(0, 0, 1)

	return fmt.Sprintf(`You are a calendar assistant.

Convert the user sentence into STRICT JSON.
Do NOT explain anything.
Do NOT add markdown.

Important: Today is %s (a %s)

Rules:
- If user says "tomorrow", use %s
- If user says "today", use %s
- If duration not mentioned, assume 1 hour
- Output time in ISO format: YYYY-MM-DDTHH:MM:SS
- Assume timezone %s
- For relative dates like "tomorrow 9pm", calculate the absolute date

Return ONLY this JSON format (no markdown, no code blocks):
{
  "title": "",
  "start": "",
  "end": ""
}

User sentence:
`,
		today.Format("2006-01-02"), today.Format("Monday"),
		tomorrow.Format("2006-01-02"), today.Format("2006-01-02"),
		p.timezone)
}

func (p *eventParser) Parse(ctx context.Context, message string) (*dto.EventFields, *errors.AppError) {
	raw, appErr := p.gemini.GenerateContent(ctx, p.eventPrompt()+message)
	if appErr != nil {
		return nil, appErr
	}

	var fields dto.EventFields
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &fields); err != nil {
		logger.Error("EventParser:Parse:Unmarshal:Error", "error", err, "raw", raw)
		return nil, errors.NewAppError(errors.ErrParseFailure, "could not understand event details", err)
	}

	// All three fields are required; anything less is a parse failure.
	if fields.Title == "" || fields.Start == "" || fields.End == "" {
		logger.Warn("EventParser:Parse:MissingFields", "raw", raw)
		return nil, errors.NewAppError(errors.ErrParseFailure, "missing required event details (title, start, or end)", nil)
	}

	return &fields, nil
}
