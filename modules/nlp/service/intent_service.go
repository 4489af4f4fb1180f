package service

import (
	"context"
	"encoding/json"

	"github.com/Ridhima028/ai-calendar-assistant/core/config"
	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/modules/nlp/dto"
)

const intentPrompt = `You are an intent classifier for a calendar chatbot.

Classify the user's message into ONE of the following intents:

- create_event
- update_event
- delete_event
- query

Return ONLY valid JSON in this format:

{
  "intent": "<one_of_the_above>"
}

User message:
`

// IntentClassifier maps a free-text chat message to exactly one intent label.
type IntentClassifier interface {
	Classify(ctx context.Context, message string) (string, *errors.AppError)
}

type intentService struct {
	gemini   GeminiClient
	override string
}

func NewIntentService(gemini GeminiClient, cfg config.GeminiConfig) IntentClassifier {
	return &intentService{
		gemini:   gemini,
		override: cfg.IntentOverride,
	}
}

func (s *intentService) Classify(ctx context.Context, message string) (string, *errors.AppError) {
	if s.override != "" {
		return s.override, nil
	}

	raw, appErr := s.gemini.GenerateContent(ctx, intentPrompt+message)
	if appErr != nil {
		return "", appErr
	}

	var result dto.IntentResult
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &result); err != nil {
		logger.Error("IntentService:Classify:Unmarshal:Error", "error", err, "raw", raw)
		return "", errors.NewAppError(errors.ErrParseFailure, "invalid classifier response", err)
	}

	if result.Intent == "" {
		return "", errors.NewAppError(errors.ErrParseFailure, "classifier returned no intent", nil)
	}

	return result.Intent, nil
}
