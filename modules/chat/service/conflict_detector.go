package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ridhima028/ai-calendar-assistant/core/constants"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
)

// normalizeTimestamp parses an ISO-8601 timestamp. Values without a UTC
// offset are interpreted as UTC so that offset-less parser output compares
// cleanly against the "Z"-suffixed timestamps the calendar API returns.
func normalizeTimestamp(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// overlaps reports whether the half-open intervals [s1, e1) and [s2, e2)
// intersect. Back-to-back events sharing a boundary do not overlap.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// detectConflicts returns the existing events that overlap the candidate
// interval. The fetch window is widened by a day on each side so events
// straddling the candidate's start are not missed. Any failure, from an
// unparseable candidate to a calendar outage, degrades to "no conflicts"
// rather than blocking creation.
func (s *chatService) detectConflicts(ctx context.Context, creds *session.Credentials, start, end string) []session.Conflict {
	candidateStart, err := normalizeTimestamp(start)
	if err != nil {
		logger.Warn("ChatService:DetectConflicts:BadStart", "start", start, "error", err)
		return nil
	}
	candidateEnd, err := normalizeTimestamp(end)
	if err != nil {
		logger.Warn("ChatService:DetectConflicts:BadEnd", "end", end, "error", err)
		return nil
	}

	searchMin := candidateStart.Add(-constants.ConflictSearchWindow).UTC().Format(time.RFC3339)
	searchMax := candidateStart.Add(constants.ConflictSearchWindow).UTC().Format(time.RFC3339)

	events, appErr := s.calendar.ListEvents(ctx, creds, searchMin, searchMax, 0)
	if appErr != nil {
		logger.Error("ChatService:DetectConflicts:ListEvents:Error", "error", appErr)
		return nil
	}

	var conflicts []session.Conflict
	for _, event := range events {
		// All-day events carry a date without a dateTime and never conflict.
		if event.Start.DateTime == "" || event.End.DateTime == "" {
			continue
		}
		eventStart, err := normalizeTimestamp(event.Start.DateTime)
		if err != nil {
			continue
		}
		eventEnd, err := normalizeTimestamp(event.End.DateTime)
		if err != nil {
			continue
		}
		if overlaps(candidateStart, candidateEnd, eventStart, eventEnd) {
			conflicts = append(conflicts, session.Conflict{
				ID:    event.ID,
				Title: event.Summary,
				Start: event.Start.DateTime,
				End:   event.End.DateTime,
			})
		}
	}
	return conflicts
}
