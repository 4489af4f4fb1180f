package constants

import "time"

const (
	// DefaultTimeout bounds every outbound call to Google APIs.
	DefaultTimeout = 30 * time.Second

	// SessionCookieName carries the signed session token.
	SessionCookieName = "session_token"

	// RedisKeySession prefixes per-session state entries.
	RedisKeySession = "session:"

	// OAuthStateTTL is how long a pending OAuth state token stays valid.
	OAuthStateTTL = 10 * time.Minute

	// ConflictSearchWindow widens the calendar query around a candidate start
	// so every potentially overlapping event is fetched. The exact overlap
	// predicate is applied locally afterwards.
	ConflictSearchWindow = 24 * time.Hour

	// Delete-path listing window: events from 7 days back to 30 days ahead.
	ListEventsPastDays   = 7
	ListEventsFutureDays = 30

	// MaxListedEvents caps the delete-path listing.
	MaxListedEvents = 50

	// MaxDisambiguationMatches caps how many ambiguous delete matches are
	// shown back to the user.
	MaxDisambiguationMatches = 5

	// TaskRAGReindex is the asynq task type for rebuilding the Q&A index.
	TaskRAGReindex = "rag:reindex"
)

const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)
