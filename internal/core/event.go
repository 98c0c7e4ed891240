package core

import (
	"time"
)

// EventStatus is the provider-level status of the event itself.
type EventStatus int

const (
	StatusConfirmed EventStatus = iota
	// Provisionally scheduled
	StatusTentative
	// Removed but still returned by some listings
	StatusCancelled
)

// ResponseStatus is an attendee's reply to the invitation.
type ResponseStatus int

const (
	ResponseNeedsAction ResponseStatus = iota
	ResponseAccepted
	ResponseDeclined
	ResponseTentative
)

// Attendee is one invitee on an event. Self marks the authenticated user.
type Attendee struct {
	Email    string
	Self     bool
	Response ResponseStatus
}

// Calendar represents the calendar an event belongs to.
type Calendar struct {
	// Calendar ID (e.g., "primary", "user@example.com", subscription ID)
	ID string
	// Human-readable name (e.g., "Work", "Holidays in India")
	Name string
}

// All adapters (Google, Outlook, etc.) must convert their data to this format.
type Event struct {
	// Unique ID (provided by the source)
	ID string
	// The ID of the provider source (e.g., "google")
	ProviderID string
	// Which calendar this event belongs to
	Calendar Calendar
	// Details
	Title       string
	Description string
	Location    string
	Status      EventStatus
	Attendees   []Attendee
	// Calendar event page URL
	URL string
	// Timing
	Start    time.Time
	End      time.Time
	IsAllDay bool
	// Wall timezone names as stored by the provider ("Europe/London").
	// Empty when the provider only returned an offset or a bare date.
	StartTimeZone string
	EndTimeZone   string
}

// Duration returns the length of the event.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// SelfResponse returns the authenticated user's reply, if they are an
// attendee. ok is false for self-created events with no attendee list.
func (e Event) SelfResponse() (ResponseStatus, bool) {
	for _, a := range e.Attendees {
		if a.Self {
			return a.Response, true
		}
	}
	return ResponseNeedsAction, false
}
