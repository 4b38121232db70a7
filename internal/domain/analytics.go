package domain

// EventType classifies a tracked analytics event.
type EventType string

const (
	EventPageview  EventType = "pageview"
	EventCVRequest EventType = "cv_request"
)

// EventTypes lists all known event types, in the order metrics are reported.
var EventTypes = []EventType{EventPageview, EventCVRequest}

// AnalyticsEvent is a single tracked event. Timestamp is Unix milliseconds.
type AnalyticsEvent struct {
	Type      EventType `json:"type"`
	Path      string    `json:"path"`
	Timestamp int64     `json:"timestamp"`
	UserAgent string    `json:"userAgent,omitempty"`
	Referer   string    `json:"referer,omitempty"`
	Language  string    `json:"language,omitempty"`
}
