package guard

import (
	"context"
	"time"

	"github.com/rsched/rsched/internal/core"
)

// fakeSource is an in-memory CalendarSource for engine tests.
type fakeSource struct {
	freeBusy    map[string][]core.BusyInterval
	freeBusyErr error
	events      map[string][]core.Event
	listErr     map[string]error

	freeBusyCalls int
	listCalls     []string
}

func (f *fakeSource) ID() string { return "fake" }

func (f *fakeSource) GetEvent(_ context.Context, calendarID, eventID string) (core.Event, error) {
	for _, ev := range f.events[calendarID] {
		if ev.ID == eventID {
			return ev, nil
		}
	}
	return core.Event{}, context.Canceled
}

func (f *fakeSource) ListEvents(_ context.Context, calendarID string, _, _ time.Time, _ core.ListOptions) ([]core.Event, error) {
	f.listCalls = append(f.listCalls, calendarID)
	if err := f.listErr[calendarID]; err != nil {
		return nil, err
	}
	return f.events[calendarID], nil
}

func (f *fakeSource) QueryFreeBusy(_ context.Context, _ []string, _, _ time.Time) (map[string][]core.BusyInterval, error) {
	f.freeBusyCalls++
	if f.freeBusyErr != nil {
		return nil, f.freeBusyErr
	}
	return f.freeBusy, nil
}

func (f *fakeSource) PatchEventTime(_ context.Context, _, _ string, start, end time.Time, _ string) (core.Event, error) {
	return core.Event{Start: start, End: end}, nil
}
