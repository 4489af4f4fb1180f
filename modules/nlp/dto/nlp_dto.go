package dto

// Intent labels the classifier may return. Anything else is surfaced to the
// user as an unsupported intent.
const (
	IntentCreateEvent = "create_event"
	IntentUpdateEvent = "update_event"
	IntentDeleteEvent = "delete_event"
	IntentQuery       = "query"
)

type IntentResult struct {
	Intent string `json:"intent"`
}

// EventFields is the structured extraction for the create path. Start and End
// are ISO-8601 local timestamps in the service's fixed timezone.
type EventFields struct {
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description,omitempty"`
}

// DeleteQuery is the structured extraction for the delete path. Any field may
// be empty; an empty field acts as a wildcard during matching.
type DeleteQuery struct {
	EventTitle    string `json:"event_title"`
	TimeReference string `json:"time_reference"`
	Time          string `json:"time"`
}
