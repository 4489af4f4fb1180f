package service

import (
	"strconv"
	"strings"
	"time"

	calendardto "github.com/Ridhima028/ai-calendar-assistant/modules/calendar/dto"
	nlpdto "github.com/Ridhima028/ai-calendar-assistant/modules/nlp/dto"
)

// MatchEvents filters events against the parsed delete query. Criteria are
// conjunctive; an empty criterion matches everything, so an entirely empty
// query returns the full input. Events keep their input order.
func MatchEvents(events []calendardto.Event, query nlpdto.DeleteQuery, now time.Time) []calendardto.Event {
	var matches []calendardto.Event
	for _, event := range events {
		if !matchesTitle(event, query.EventTitle) {
			continue
		}
		if !matchesTime(event, query.Time) {
			continue
		}
		if !matchesDate(event, query.TimeReference, now) {
			continue
		}
		matches = append(matches, event)
	}
	return matches
}

func matchesTitle(event calendardto.Event, title string) bool {
	if title == "" {
		return true
	}
	return strings.Contains(strings.ToLower(event.Summary), strings.ToLower(title))
}

// matchesTime compares the query's time expression against the event start.
// "3pm" style expressions resolve to a 24-hour prefix check on the start
// timestamp; anything else falls back to a substring check with separators
// stripped from both sides.
func matchesTime(event calendardto.Event, timeExpr string) bool {
	if timeExpr == "" {
		return true
	}
	start := event.Start.DateTime
	if start == "" {
		return false
	}

	cleaned := strings.ToLower(timeExpr)
	hasPM := strings.Contains(cleaned, "pm")
	hasAM := strings.Contains(cleaned, "am")
	for _, sep := range []string{"am", "pm", ":", " "} {
		cleaned = strings.ReplaceAll(cleaned, sep, "")
	}

	if hasPM || hasAM {
		hour, err := strconv.Atoi(cleaned)
		if err != nil {
			hour = 0
		}
		if hasPM && hour < 12 {
			hour += 12
		}
		prefix := "T" + twoDigit(hour) + ":"
		return strings.Contains(start, prefix)
	}

	flattened := strings.ReplaceAll(strings.ReplaceAll(start, ":", ""), "-", "")
	return strings.Contains(flattened, cleaned)
}

func matchesDate(event calendardto.Event, reference string, now time.Time) bool {
	ref := strings.ToLower(reference)
	var want string
	switch {
	case strings.Contains(ref, "today"):
		want = now.Format("2006-01-02")
	case strings.Contains(ref, "tomorrow"):
		want = now.AddDate(0, 0, 1).Format("2006-01-02")
	default:
		return true
	}

	start := event.Start.DateTime
	if start == "" {
		start = event.Start.Date
	}
	date, _, found := strings.Cut(start, "T")
	if !found && len(start) != len("2006-01-02") {
		return false
	}
	return date == want
}

func twoDigit(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
