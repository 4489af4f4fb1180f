package session

import "time"

// Credentials is the Google OAuth material stored per session.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Email        string    `json:"email,omitempty"`
}

// CandidateEvent is a not-yet-created event produced by the create handler.
// It is either committed to the calendar or discarded, never modified.
type CandidateEvent struct {
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description,omitempty"`
}

// Conflict is an existing calendar event whose interval overlaps a
// candidate's interval.
type Conflict struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// PendingResolution captures an unresolved create-vs-conflict decision. While
// it is set, the next user message is interpreted as a resolution reply, not
// as a fresh intent.
type PendingResolution struct {
	Candidate CandidateEvent `json:"pending_event"`
	Conflicts []Conflict     `json:"conflicts"`
}

// State is everything carried for one chat session across stateless request
// cycles. At most one PendingResolution exists at any time.
type State struct {
	ID          string             `json:"id"`
	Credentials *Credentials       `json:"credentials,omitempty"`
	Pending     *PendingResolution `json:"pending,omitempty"`
}

func (s *State) Authenticated() bool {
	return s != nil && s.Credentials != nil && s.Credentials.AccessToken != ""
}

func (s *State) HasPending() bool {
	return s != nil && s.Pending != nil
}

// InstallPending records a detected conflict set for the next round trip.
func (s *State) InstallPending(candidate CandidateEvent, conflicts []Conflict) {
	s.Pending = &PendingResolution{
		Candidate: candidate,
		Conflicts: conflicts,
	}
}

// ClearPending drops the pending resolution after a terminal outcome.
func (s *State) ClearPending() {
	s.Pending = nil
}
