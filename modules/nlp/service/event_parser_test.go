package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
)

func newTestEventParser(gemini GeminiClient) *eventParser {
	return &eventParser{
		gemini:   gemini,
		timezone: "UTC",
		now: func() time.Time {
			return time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
		},
	}
}

func TestEventParserParse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  bool
	}{
		{"complete", `{"title": "Dentist", "start": "2025-06-11T15:00:00", "end": "2025-06-11T16:00:00"}`, false},
		{"fenced", "```json\n{\"title\": \"Dentist\", \"start\": \"2025-06-11T15:00:00\", \"end\": \"2025-06-11T16:00:00\"}\n```", false},
		{"missing title", `{"title": "", "start": "2025-06-11T15:00:00", "end": "2025-06-11T16:00:00"}`, true},
		{"missing end", `{"title": "Dentist", "start": "2025-06-11T15:00:00", "end": ""}`, true},
		{"not json", "I scheduled it for you!", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := newTestEventParser(&stubGemini{response: tt.response})
			fields, appErr := parser.Parse(context.Background(), "dentist tomorrow at 3pm")
			if tt.wantErr {
				if appErr == nil {
					t.Fatal("expected parse failure")
				}
				if appErr.Code != errors.ErrParseFailure {
					t.Fatalf("error code = %s, want %s", appErr.Code, errors.ErrParseFailure)
				}
				return
			}
			if appErr != nil {
				t.Fatalf("unexpected error %v", appErr)
			}
			if fields.Title != "Dentist" {
				t.Fatalf("title = %q", fields.Title)
			}
		})
	}
}

func TestEventPromptCarriesDateContext(t *testing.T) {
	gemini := &stubGemini{response: `{"title": "x", "start": "s", "end": "e"}`}
	parser := newTestEventParser(gemini)

	if _, appErr := parser.Parse(context.Background(), "lunch tomorrow"); appErr != nil {
		t.Fatalf("unexpected error %v", appErr)
	}
	if len(gemini.prompts) != 1 {
		t.Fatalf("expected one Gemini call, got %d", len(gemini.prompts))
	}
	prompt := gemini.prompts[0]
	if !strings.Contains(prompt, "2025-06-10") {
		t.Errorf("prompt missing today's date: %q", prompt)
	}
	if !strings.Contains(prompt, "2025-06-11") {
		t.Errorf("prompt missing tomorrow's date: %q", prompt)
	}
	if !strings.Contains(prompt, "lunch tomorrow") {
		t.Errorf("prompt missing user message")
	}
}
