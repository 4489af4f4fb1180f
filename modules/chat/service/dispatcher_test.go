package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
	calendardto "github.com/Ridhima028/ai-calendar-assistant/modules/calendar/dto"
	nlpdto "github.com/Ridhima028/ai-calendar-assistant/modules/nlp/dto"
)

type fakeClassifier struct {
	intent string
	err    *errors.AppError
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, message string) (string, *errors.AppError) {
	f.calls++
	return f.intent, f.err
}

type fakeEventParser struct {
	fields *nlpdto.EventFields
	err    *errors.AppError
}

func (f *fakeEventParser) Parse(ctx context.Context, message string) (*nlpdto.EventFields, *errors.AppError) {
	return f.fields, f.err
}

type fakeDeleteParser struct {
	query *nlpdto.DeleteQuery
	err   *errors.AppError
}

func (f *fakeDeleteParser) Parse(ctx context.Context, message string) (*nlpdto.DeleteQuery, *errors.AppError) {
	return f.query, f.err
}

type fakeAnswerer struct {
	answer string
	err    *errors.AppError
}

func (f *fakeAnswerer) Answer(ctx context.Context, question string) (string, *errors.AppError) {
	return f.answer, f.err
}

type fakeCalendar struct {
	events    []calendardto.Event
	listErr   *errors.AppError
	created   []calendardto.Event
	createErr *errors.AppError
	deleted   []string
	deleteErr map[string]*errors.AppError
}

func (f *fakeCalendar) ListEvents(ctx context.Context, creds *session.Credentials, timeMin, timeMax string, maxResults int) ([]calendardto.Event, *errors.AppError) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, creds *session.Credentials, title, start, end, description string) (*calendardto.Event, *errors.AppError) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	event := calendardto.Event{
		ID:      "created-1",
		Summary: title,
		Start:   calendardto.EventTime{DateTime: start},
		End:     calendardto.EventTime{DateTime: end},
	}
	f.created = append(f.created, event)
	return &event, nil
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, creds *session.Credentials, eventID string) *errors.AppError {
	if err, ok := f.deleteErr[eventID]; ok {
		return err
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
}

func newTestService(classifier *fakeClassifier, events *fakeEventParser, deletes *fakeDeleteParser, cal *fakeCalendar, answers *fakeAnswerer) *chatService {
	return &chatService{
		intents:  classifier,
		events:   events,
		deletes:  deletes,
		calendar: cal,
		answers:  answers,
		now:      fixedNow,
	}
}

func authedState() *session.State {
	return &session.State{
		ID:          "sid-1",
		Credentials: &session.Credentials{AccessToken: "tok"},
	}
}

func TestDispatchSkipsClassifierWhilePending(t *testing.T) {
	classifier := &fakeClassifier{intent: nlpdto.IntentCreateEvent}
	cal := &fakeCalendar{}
	svc := newTestService(classifier, &fakeEventParser{}, &fakeDeleteParser{}, cal, &fakeAnswerer{})

	state := authedState()
	state.InstallPending(
		session.CandidateEvent{Title: "Standup", Start: "2025-06-11T10:00:00Z", End: "2025-06-11T10:30:00Z"},
		[]session.Conflict{{ID: "ev-1", Title: "Review"}},
	)

	result := svc.Dispatch(context.Background(), state, "cancel")
	if classifier.calls != 0 {
		t.Fatalf("classifier consulted %d times while resolution pending", classifier.calls)
	}
	if result.Response == "" || !strings.Contains(result.Response, "cancelled") {
		t.Fatalf("unexpected cancel response %q", result.Response)
	}
	if state.HasPending() {
		t.Fatal("pending state not cleared after cancel")
	}
}

func TestDispatchUnsupportedIntent(t *testing.T) {
	for _, intent := range []string{nlpdto.IntentUpdateEvent, "garbage", ""} {
		classifier := &fakeClassifier{intent: intent}
		svc := newTestService(classifier, &fakeEventParser{}, &fakeDeleteParser{}, &fakeCalendar{}, &fakeAnswerer{})

		result := svc.Dispatch(context.Background(), authedState(), "move my meeting to 4pm")
		if result.Error == "" {
			t.Fatalf("intent %q: expected error response", intent)
		}
		if result.EventCreated != nil || result.ConflictDetected {
			t.Fatalf("intent %q: side-effect fields set on error response", intent)
		}
	}
}

func TestDispatchCreateWithoutConflict(t *testing.T) {
	classifier := &fakeClassifier{intent: nlpdto.IntentCreateEvent}
	parser := &fakeEventParser{fields: &nlpdto.EventFields{
		Title: "Dentist",
		Start: "2025-06-12T15:00:00Z",
		End:   "2025-06-12T16:00:00Z",
	}}
	cal := &fakeCalendar{}
	svc := newTestService(classifier, parser, &fakeDeleteParser{}, cal, &fakeAnswerer{})

	state := authedState()
	result := svc.Dispatch(context.Background(), state, "dentist tomorrow at 3pm")
	if result.Error != "" {
		t.Fatalf("unexpected error %q", result.Error)
	}
	if result.EventCreated == nil || result.EventCreated.Name != "Dentist" {
		t.Fatalf("event_created missing or wrong: %+v", result.EventCreated)
	}
	if state.HasPending() {
		t.Fatal("pending state installed without a conflict")
	}
	if len(cal.created) != 1 {
		t.Fatalf("expected 1 created event, got %d", len(cal.created))
	}
}

func TestDispatchCreateInstallsPendingOnConflict(t *testing.T) {
	classifier := &fakeClassifier{intent: nlpdto.IntentCreateEvent}
	parser := &fakeEventParser{fields: &nlpdto.EventFields{
		Title: "Sync",
		Start: "2025-06-12T10:30:00Z",
		End:   "2025-06-12T11:30:00Z",
	}}
	cal := &fakeCalendar{events: []calendardto.Event{{
		ID:      "ev-9",
		Summary: "Planning",
		Start:   calendardto.EventTime{DateTime: "2025-06-12T10:00:00Z"},
		End:     calendardto.EventTime{DateTime: "2025-06-12T11:00:00Z"},
	}}}
	svc := newTestService(classifier, parser, &fakeDeleteParser{}, cal, &fakeAnswerer{})

	state := authedState()
	result := svc.Dispatch(context.Background(), state, "sync at 10:30")
	if !result.ConflictDetected {
		t.Fatal("conflict not detected")
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].ID != "ev-9" {
		t.Fatalf("unexpected conflicts %+v", result.Conflicts)
	}
	if !state.HasPending() {
		t.Fatal("pending resolution not installed")
	}
	if state.Pending.Candidate.Title != "Sync" {
		t.Fatalf("wrong held candidate %+v", state.Pending.Candidate)
	}
	if len(cal.created) != 0 {
		t.Fatal("event created despite conflict")
	}
}

func TestDispatchClassifierFailure(t *testing.T) {
	classifier := &fakeClassifier{err: errors.NewAppError(errors.ErrInternalServer, "gemini down", nil)}
	svc := newTestService(classifier, &fakeEventParser{}, &fakeDeleteParser{}, &fakeCalendar{}, &fakeAnswerer{})

	result := svc.Dispatch(context.Background(), authedState(), "hello")
	if result.Error == "" {
		t.Fatal("expected error response when classification fails")
	}
}

func TestDispatchQuery(t *testing.T) {
	classifier := &fakeClassifier{intent: nlpdto.IntentQuery}
	svc := newTestService(classifier, &fakeEventParser{}, &fakeDeleteParser{}, &fakeCalendar{}, &fakeAnswerer{answer: "You are free on Friday."})

	result := svc.Dispatch(context.Background(), authedState(), "when am I free?")
	if result.Response != "You are free on Friday." {
		t.Fatalf("unexpected answer %q", result.Response)
	}
}
