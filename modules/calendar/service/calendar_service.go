package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Ridhima028/ai-calendar-assistant/core/constants"
	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
	authservice "github.com/Ridhima028/ai-calendar-assistant/modules/auth/service"
	"github.com/Ridhima028/ai-calendar-assistant/modules/calendar/dto"
)

const googleCalendarAPIBase = "https://www.googleapis.com/calendar/v3"

// CalendarService is the thin CRUD client against the user's primary Google
// calendar. Timestamps in and out are ISO-8601.
type CalendarService interface {
	ListEvents(ctx context.Context, creds *session.Credentials, timeMin, timeMax string, maxResults int) ([]dto.Event, *errors.AppError)
	CreateEvent(ctx context.Context, creds *session.Credentials, title, start, end, description string) (*dto.Event, *errors.AppError)
	DeleteEvent(ctx context.Context, creds *session.Credentials, eventID string) *errors.AppError
}

type calendarService struct {
	auth     authservice.AuthServiceInterface
	timezone string
	baseURL  string
	client   *http.Client
}

func NewCalendarService(auth authservice.AuthServiceInterface, timezone string) CalendarService {
	return newCalendarService(auth, timezone, googleCalendarAPIBase)
}

func newCalendarService(auth authservice.AuthServiceInterface, timezone, baseURL string) *calendarService {
	return &calendarService{
		auth:     auth,
		timezone: timezone,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: constants.DefaultTimeout},
	}
}

func (s *calendarService) eventsURL() string {
	return s.baseURL + "/calendars/primary/events"
}

// ListEvents fetches single events ordered by start time within the window.
func (s *calendarService) ListEvents(ctx context.Context, creds *session.Credentials, timeMin, timeMax string, maxResults int) ([]dto.Event, *errors.AppError) {
	accessToken, appErr := s.auth.AccessToken(ctx, creds)
	if appErr != nil {
		return nil, appErr
	}

	params := url.Values{}
	params.Set("timeMin", timeMin)
	params.Set("timeMax", timeMax)
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")
	if maxResults > 0 {
		params.Set("maxResults", strconv.Itoa(maxResults))
	}

	req, err := http.NewRequestWithContext(ctx, "GET", s.eventsURL()+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("CalendarService:ListEvents:DoRequest:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list events", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("CalendarService:ListEvents:APIError", "status", resp.StatusCode, "body", string(body))
		return nil, errors.NewAppError(errors.ErrInternalServer, fmt.Sprintf("Google Calendar API error: %d", resp.StatusCode), nil)
	}

	var result struct {
		Items []dto.Event `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Error("CalendarService:ListEvents:Decode:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to parse events response", err)
	}

	return result.Items, nil
}

// CreateEvent inserts an event into the primary calendar.
func (s *calendarService) CreateEvent(ctx context.Context, creds *session.Credentials, title, start, end, description string) (*dto.Event, *errors.AppError) {
	accessToken, appErr := s.auth.AccessToken(ctx, creds)
	if appErr != nil {
		return nil, appErr
	}

	event := map[string]any{
		"summary":     title,
		"description": description,
		"start": map[string]string{
			"dateTime": start,
			"timeZone": s.timezone,
		},
		"end": map[string]string{
			"dateTime": end,
			"timeZone": s.timezone,
		},
	}

	eventJSON, _ := json.Marshal(event)
	req, err := http.NewRequestWithContext(ctx, "POST", s.eventsURL(), bytes.NewReader(eventJSON))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("CalendarService:CreateEvent:DoRequest:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create event", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("CalendarService:CreateEvent:APIError", "status", resp.StatusCode, "body", string(body))
		return nil, errors.NewAppError(errors.ErrInternalServer, fmt.Sprintf("Google API error: %s", string(body)), nil)
	}

	var created dto.Event
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		logger.Error("CalendarService:CreateEvent:Decode:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to parse created event", err)
	}

	logger.Info("CalendarService:CreateEvent:Created", "event_id", created.ID, "title", title)
	return &created, nil
}

// DeleteEvent removes an event from the primary calendar by id.
func (s *calendarService) DeleteEvent(ctx context.Context, creds *session.Credentials, eventID string) *errors.AppError {
	accessToken, appErr := s.auth.AccessToken(ctx, creds)
	if appErr != nil {
		return appErr
	}

	req, err := http.NewRequestWithContext(ctx, "DELETE", s.eventsURL()+"/"+url.PathEscape(eventID), nil)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("CalendarService:DeleteEvent:DoRequest:Error", "error", err, "event_id", eventID)
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete event", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("CalendarService:DeleteEvent:APIError", "status", resp.StatusCode, "body", string(body), "event_id", eventID)
		return errors.NewAppError(errors.ErrInternalServer, fmt.Sprintf("Google API error: %d", resp.StatusCode), nil)
	}

	logger.Info("CalendarService:DeleteEvent:Deleted", "event_id", eventID)
	return nil
}
