package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
)

func pendingState() *session.State {
	state := authedState()
	state.InstallPending(
		session.CandidateEvent{
			Title: "New Sync",
			Start: "2025-06-12T10:00:00Z",
			End:   "2025-06-12T11:00:00Z",
		},
		[]session.Conflict{
			{ID: "old-1", Title: "Old Meeting"},
			{ID: "old-2", Title: "Other Meeting"},
		},
	)
	return state
}

func TestResolveDeleteAndCreate(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(&fakeClassifier{}, &fakeEventParser{}, &fakeDeleteParser{}, cal, &fakeAnswerer{})

	state := pendingState()
	result := svc.Dispatch(context.Background(), state, "delete and create")

	if len(cal.deleted) != 2 {
		t.Fatalf("deleted %v, want both conflicts removed", cal.deleted)
	}
	if len(cal.created) != 1 {
		t.Fatalf("created %d events, want 1", len(cal.created))
	}
	if !strings.Contains(result.Response, "2 conflicting event(s)") {
		t.Fatalf("unexpected response %q", result.Response)
	}
	if state.HasPending() {
		t.Fatal("pending state not cleared after resolution")
	}
}

func TestResolvePrecedenceDeleteCreateOverAnyway(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(&fakeClassifier{}, &fakeEventParser{}, &fakeDeleteParser{}, cal, &fakeAnswerer{})

	// All three keywords present; delete+create wins.
	svc.Dispatch(context.Background(), pendingState(), "delete them and create it anyway, don't cancel")
	if len(cal.deleted) != 2 {
		t.Fatalf("deleted %v, want delete-and-create branch", cal.deleted)
	}
}

func TestResolvePartialDeletionStillCreates(t *testing.T) {
	cal := &fakeCalendar{
		deleteErr: map[string]*errors.AppError{
			"old-1": errors.NewAppError(errors.ErrInternalServer, "gone already", nil),
		},
	}
	svc := newTestService(&fakeClassifier{}, &fakeEventParser{}, &fakeDeleteParser{}, cal, &fakeAnswerer{})

	result := svc.Dispatch(context.Background(), pendingState(), "delete and create")

	if len(cal.created) != 1 {
		t.Fatal("creation skipped after a partial delete failure")
	}
	if !strings.Contains(result.Response, "1 conflicting event(s)") {
		t.Fatalf("response %q does not report the actual deletion count", result.Response)
	}
}

func TestResolveDeleteAndCreateCreationFails(t *testing.T) {
	cal := &fakeCalendar{createErr: errors.NewAppError(errors.ErrInternalServer, "quota exceeded", nil)}
	svc := newTestService(&fakeClassifier{}, &fakeEventParser{}, &fakeDeleteParser{}, cal, &fakeAnswerer{})

	state := pendingState()
	result := svc.Dispatch(context.Background(), state, "delete and create")

	if result.Error == "" || !strings.Contains(result.Error, "failed to create") {
		t.Fatalf("unexpected error %q", result.Error)
	}
	// Deletions are not rolled back.
	if len(cal.deleted) != 2 {
		t.Fatalf("deleted %v, want deletions preserved", cal.deleted)
	}
	if state.HasPending() {
		t.Fatal("failed creation should still consume the pending state")
	}
}

func TestResolveCreateAnyway(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(&fakeClassifier{}, &fakeEventParser{}, &fakeDeleteParser{}, cal, &fakeAnswerer{})

	result := svc.Dispatch(context.Background(), pendingState(), "just create it anyway")

	if len(cal.deleted) != 0 {
		t.Fatalf("deleted %v, want no deletions for create-anyway", cal.deleted)
	}
	if len(cal.created) != 1 {
		t.Fatal("event not created")
	}
	if !strings.Contains(result.Response, "double booked") {
		t.Fatalf("unexpected response %q", result.Response)
	}
}

func TestResolveUnrecognizedKeepsPending(t *testing.T) {
	cal := &fakeCalendar{}
	classifier := &fakeClassifier{}
	svc := newTestService(classifier, &fakeEventParser{}, &fakeDeleteParser{}, cal, &fakeAnswerer{})

	state := pendingState()
	result := svc.Dispatch(context.Background(), state, "maybe")

	if !result.ConflictPending {
		t.Fatal("unrecognized reply should leave the resolution pending")
	}
	if !state.HasPending() {
		t.Fatal("pending state dropped on unrecognized reply")
	}
	if len(cal.created) != 0 || len(cal.deleted) != 0 {
		t.Fatal("calendar mutated by unrecognized reply")
	}

	// A valid follow-up now resolves.
	result = svc.Dispatch(context.Background(), state, "cancel")
	if result.ConflictPending || state.HasPending() {
		t.Fatal("valid follow-up did not resolve the pending conflict")
	}
	if classifier.calls != 0 {
		t.Fatal("classifier consulted during resolution exchange")
	}
}

func TestResolveCancelLeavesCalendarUntouched(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(&fakeClassifier{}, &fakeEventParser{}, &fakeDeleteParser{}, cal, &fakeAnswerer{})

	svc.Dispatch(context.Background(), pendingState(), "CANCEL")
	if len(cal.created) != 0 || len(cal.deleted) != 0 {
		t.Fatal("cancel should not touch the calendar")
	}
}
