package core

import (
	"context"
	"time"
)

// BusyInterval is one busy block reported by a free/busy query.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// ListOptions forwards policy filter flags to the provider. Providers may
// pre-filter with them, but the engine re-applies the same filters locally
// and never trusts the provider as the sole filter.
type ListOptions struct {
	TreatTentativeAsBusy bool
	IgnoreDeclined       bool
}

// CalendarSource is a calendar backend (Google, Outlook, a test double).
// All calls block until done or the context is cancelled.
type CalendarSource interface {
	// ID returns the provider identifier (e.g. "google").
	ID() string
	// GetEvent fetches a single event.
	GetEvent(ctx context.Context, calendarID, eventID string) (Event, error)
	// ListEvents fetches events intersecting [start, end) on one calendar,
	// with recurring events expanded to single instances.
	ListEvents(ctx context.Context, calendarID string, start, end time.Time, opts ListOptions) ([]Event, error)
	// QueryFreeBusy runs one combined availability query across calendars
	// and returns busy intervals per calendar ID.
	QueryFreeBusy(ctx context.Context, calendarIDs []string, start, end time.Time) (map[string][]BusyInterval, error)
	// PatchEventTime rewrites just the start/end of an event.
	PatchEventTime(ctx context.Context, calendarID, eventID string, start, end time.Time, timeZone string) (Event, error)
}

// Proposal is one requested time change, built per request and never stored.
type Proposal struct {
	// The event being moved, as currently stored. Used for context and as
	// the business-hours timezone fallback.
	Event Event
	// Proposed new start/end, each carrying its own offset.
	Start time.Time
	End   time.Time
	// Calendar holding the event.
	CalendarID string
	// The caller's IANA zone, the notice check's timezone fallback.
	UserTimeZone string
}
