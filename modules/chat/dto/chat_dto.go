package dto

import "github.com/Ridhima028/ai-calendar-assistant/core/session"

type ChatRequest struct {
	Message string `json:"message"`
}

type CreatedEvent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Start       string `json:"start"`
	Description string `json:"description,omitempty"`
}

// ChatResponse is the wire shape of one chat turn. ConflictPending marks a
// non-terminal resolver outcome: the dispatcher keeps the pending state and
// the next message is re-evaluated against it.
type ChatResponse struct {
	Response         string                  `json:"response,omitempty"`
	Error            string                  `json:"error,omitempty"`
	ConflictDetected bool                    `json:"conflict_detected,omitempty"`
	Conflicts        []session.Conflict      `json:"conflicts,omitempty"`
	PendingEvent     *session.CandidateEvent `json:"pending_event,omitempty"`
	EventCreated     *CreatedEvent           `json:"event_created,omitempty"`
	ConflictPending  bool                    `json:"conflict_pending,omitempty"`
}
