package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
)

type staticAuth struct {
	token string
	err   *errors.AppError
}

func (a *staticAuth) AuthURL(state string) string {
	return "https://example.com/auth?state=" + state
}

func (a *staticAuth) Exchange(ctx context.Context, code string) (*session.Credentials, *errors.AppError) {
	return &session.Credentials{AccessToken: a.token}, nil
}

func (a *staticAuth) AccessToken(ctx context.Context, creds *session.Credentials) (string, *errors.AppError) {
	if a.err != nil {
		return "", a.err
	}
	return a.token, nil
}

func testCreds() *session.Credentials {
	return &session.Credentials{AccessToken: "tok"}
}

func TestListEvents(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": "ev-1", "summary": "Standup", "start": map[string]string{"dateTime": "2025-06-10T09:30:00Z"}},
			},
		})
	}))
	defer srv.Close()

	svc := newCalendarService(&staticAuth{token: "tok"}, "UTC", srv.URL)
	events, appErr := svc.ListEvents(context.Background(), testCreds(), "2025-06-10T00:00:00Z", "2025-06-11T00:00:00Z", 50)
	if appErr != nil {
		t.Fatalf("ListEvents: %v", appErr)
	}
	if len(events) != 1 || events[0].ID != "ev-1" {
		t.Fatalf("events = %+v", events)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	for _, fragment := range []string{"singleEvents=true", "orderBy=startTime", "maxResults=50"} {
		if !strings.Contains(gotQuery, fragment) {
			t.Errorf("query %q missing %q", gotQuery, fragment)
		}
	}
}

func TestListEventsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := newCalendarService(&staticAuth{token: "tok"}, "UTC", srv.URL)
	if _, appErr := svc.ListEvents(context.Background(), testCreds(), "a", "b", 0); appErr == nil {
		t.Fatal("expected error on API failure")
	}
}

func TestCreateEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["summary"] != "Dentist" {
			t.Errorf("summary = %v", body["summary"])
		}
		start, _ := body["start"].(map[string]any)
		if start["timeZone"] != "UTC" {
			t.Errorf("start timeZone = %v", start["timeZone"])
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"id": "created-1", "summary": "Dentist"})
	}))
	defer srv.Close()

	svc := newCalendarService(&staticAuth{token: "tok"}, "UTC", srv.URL)
	created, appErr := svc.CreateEvent(context.Background(), testCreds(), "Dentist", "2025-06-11T15:00:00Z", "2025-06-11T16:00:00Z", "")
	if appErr != nil {
		t.Fatalf("CreateEvent: %v", appErr)
	}
	if created.ID != "created-1" {
		t.Fatalf("created = %+v", created)
	}
}

func TestDeleteEvent(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	svc := newCalendarService(&staticAuth{token: "tok"}, "UTC", srv.URL)
	if appErr := svc.DeleteEvent(context.Background(), testCreds(), "ev-1"); appErr != nil {
		t.Fatalf("DeleteEvent: %v", appErr)
	}
	if gotMethod != "DELETE" || gotPath != "/calendars/primary/events/ev-1" {
		t.Fatalf("request = %s %s", gotMethod, gotPath)
	}
}

func TestAuthFailurePropagates(t *testing.T) {
	auth := &staticAuth{err: errors.NewAppError(errors.ErrUnauthorized, "no refresh token", nil)}
	svc := newCalendarService(auth, "UTC", "http://127.0.0.1:0")

	if _, appErr := svc.ListEvents(context.Background(), testCreds(), "a", "b", 0); appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("appErr = %v, want unauthorized", appErr)
	}
}
