package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rsched/rsched/internal/core"
)

var window = struct{ start, end time.Time }{
	start: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	end:   time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
}

func proposalFor(calendarID string) core.Proposal {
	return core.Proposal{
		CalendarID: calendarID,
		Start:      window.start,
		End:        window.end,
	}
}

func TestProbe_AggregateBusy(t *testing.T) {
	src := &fakeSource{
		freeBusy: map[string][]core.BusyInterval{
			"primary": {{Start: window.start, End: window.end}},
		},
	}
	pr := NewProber(src, zerolog.Nop())

	res, err := pr.Probe(context.Background(), proposalFor("primary"),
		core.Policy{ConflictMethod: core.ConflictAggregate})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Busy {
		t.Error("want busy")
	}
	if res.Method != core.ConflictAggregate {
		t.Errorf("method: want aggregate, got %s", res.Method)
	}
	if len(src.listCalls) != 0 {
		t.Errorf("enumeration should not run, got calls for %v", src.listCalls)
	}
}

func TestProbe_AggregateFree(t *testing.T) {
	src := &fakeSource{
		freeBusy: map[string][]core.BusyInterval{"primary": {}, "team": {}},
	}
	pr := NewProber(src, zerolog.Nop())

	res, err := pr.Probe(context.Background(), proposalFor("primary"),
		core.Policy{ConflictMethod: core.ConflictAggregate, CalendarsToCheck: []string{"team"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Busy {
		t.Error("want free")
	}
	if len(res.Calendars) != 2 {
		t.Errorf("calendars checked: want 2, got %v", res.Calendars)
	}
}

func TestProbe_FallbackToEnumerate(t *testing.T) {
	src := &fakeSource{
		freeBusyErr: errors.New("freebusy 500"),
		events:      map[string][]core.Event{"primary": nil},
	}
	pr := NewProber(src, zerolog.Nop())

	res, err := pr.Probe(context.Background(), proposalFor("primary"),
		core.Policy{ConflictMethod: core.ConflictAggregate})
	if err != nil {
		t.Fatal(err)
	}
	if res.Busy {
		t.Error("want free via fallback")
	}
	if res.Method != core.ConflictEnumerate {
		t.Errorf("method: want enumerate after fallback, got %s", res.Method)
	}
	if src.freeBusyCalls != 1 || len(src.listCalls) != 1 {
		t.Errorf("want 1 freebusy call then 1 list call, got %d/%d", src.freeBusyCalls, len(src.listCalls))
	}
}

func TestProbe_EnumerateFilters(t *testing.T) {
	cancelled := core.Event{ID: "a", Status: core.StatusCancelled}
	declined := core.Event{ID: "b", Status: core.StatusConfirmed,
		Attendees: []core.Attendee{{Self: true, Response: core.ResponseDeclined}}}
	tentative := core.Event{ID: "c", Status: core.StatusTentative}

	cases := []struct {
		name   string
		events []core.Event
		pol    core.Policy
		busy   bool
	}{
		{"cancelled always dropped", []core.Event{cancelled}, core.Policy{}, false},
		{"declined dropped when ignored", []core.Event{declined}, core.Policy{IgnoreDeclined: true}, false},
		{"declined kept otherwise", []core.Event{declined}, core.Policy{}, true},
		{"tentative dropped by default", []core.Event{tentative}, core.Policy{}, false},
		{"tentative busy when configured", []core.Event{tentative}, core.Policy{TreatTentativeAsBusy: true}, true},
		{"confirmed is busy", []core.Event{{ID: "d", Status: core.StatusConfirmed}}, core.Policy{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := &fakeSource{events: map[string][]core.Event{"primary": tc.events}}
			pr := NewProber(src, zerolog.Nop())
			tc.pol.ConflictMethod = core.ConflictEnumerate

			res, err := pr.Probe(context.Background(), proposalFor("primary"), tc.pol)
			if err != nil {
				t.Fatal(err)
			}
			if res.Busy != tc.busy {
				t.Errorf("busy: want %v, got %v", tc.busy, res.Busy)
			}
		})
	}
}

func TestProbe_EnumerateSkipsFailedCalendar(t *testing.T) {
	src := &fakeSource{
		events: map[string][]core.Event{
			"team": {{ID: "x", Status: core.StatusConfirmed}},
		},
		listErr: map[string]error{"primary": errors.New("403")},
	}
	pr := NewProber(src, zerolog.Nop())

	res, err := pr.Probe(context.Background(), proposalFor("primary"),
		core.Policy{ConflictMethod: core.ConflictEnumerate, CalendarsToCheck: []string{"team"}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Busy {
		t.Error("want busy from the surviving calendar")
	}
}

func TestProbe_AllCalendarsFailed(t *testing.T) {
	src := &fakeSource{
		listErr: map[string]error{
			"primary": errors.New("403"),
			"team":    errors.New("timeout"),
		},
	}
	pr := NewProber(src, zerolog.Nop())

	_, err := pr.Probe(context.Background(), proposalFor("primary"),
		core.Policy{ConflictMethod: core.ConflictEnumerate, CalendarsToCheck: []string{"team"}})
	if err == nil {
		t.Fatal("want error when every calendar fails")
	}
}

func TestCalendarSet_DedupKeepsTargetFirst(t *testing.T) {
	cals := calendarSet("primary", []string{"team", "primary", "", "team"})
	want := []string{"primary", "team"}
	if len(cals) != len(want) {
		t.Fatalf("want %v, got %v", want, cals)
	}
	for i := range want {
		if cals[i] != want[i] {
			t.Fatalf("want %v, got %v", want, cals)
		}
	}
}
