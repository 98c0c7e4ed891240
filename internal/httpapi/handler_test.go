package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rsched/rsched/internal/core"
	"github.com/rsched/rsched/internal/guard"
)

// Monday 2 Mar 2026, 09:00 UTC
var frozenNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeSource struct {
	event       core.Event
	getErr      error
	freeBusy    map[string][]core.BusyInterval
	freeBusyErr error
	listErr     error
	patched     bool
	patchErr    error
}

func (f *fakeSource) ID() string { return "fake" }

func (f *fakeSource) GetEvent(_ context.Context, _, _ string) (core.Event, error) {
	return f.event, f.getErr
}

func (f *fakeSource) ListEvents(_ context.Context, _ string, _, _ time.Time, _ core.ListOptions) ([]core.Event, error) {
	return nil, f.listErr
}

func (f *fakeSource) QueryFreeBusy(_ context.Context, _ []string, _, _ time.Time) (map[string][]core.BusyInterval, error) {
	if f.freeBusyErr != nil {
		return nil, f.freeBusyErr
	}
	return f.freeBusy, nil
}

func (f *fakeSource) PatchEventTime(_ context.Context, _, _ string, start, end time.Time, _ string) (core.Event, error) {
	if f.patchErr != nil {
		return core.Event{}, f.patchErr
	}
	f.patched = true
	ev := f.event
	ev.Start, ev.End = start, end
	return ev, nil
}

func testPolicy() (core.Policy, error) {
	return core.Policy{
		MinNoticeHours: 24,
		TimeZone:       "UTC",
		BusinessHours: map[time.Weekday]core.BusinessWindow{
			time.Tuesday: {Start: "09:00", End: "17:00"},
		},
		ConflictMethod: core.ConflictAggregate,
	}, nil
}

func newTestHandler(src *fakeSource) *Handler {
	v := guard.New(src, zerolog.Nop(), guard.WithClock(func() time.Time { return frozenNow }))
	return NewHandler(src, v, testPolicy, zerolog.Nop())
}

func postJSON(t *testing.T, h *Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

const okBody = `{
	"calendar_id": "primary",
	"event_id": "ev1",
	"start": "2026-03-03T10:00:00Z",
	"end": "2026-03-03T11:00:00Z"
}`

func TestValidate_Approved(t *testing.T) {
	src := &fakeSource{
		event:    core.Event{ID: "ev1"},
		freeBusy: map[string][]core.BusyInterval{"primary": {}},
	}
	rec := postJSON(t, newTestHandler(src), "/api/validate", okBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d (%s)", rec.Code, rec.Body)
	}
	var resp rescheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Approved || len(resp.Violations) != 0 {
		t.Errorf("want approved with no violations, got %+v", resp)
	}
}

func TestValidate_ViolationMapsTo400(t *testing.T) {
	src := &fakeSource{
		event:    core.Event{ID: "ev1"},
		freeBusy: map[string][]core.BusyInterval{"primary": {}},
	}
	// 1 hour of notice against a 24h policy.
	body := `{
		"calendar_id": "primary",
		"event_id": "ev1",
		"start": "2026-03-02T10:00:00Z",
		"end": "2026-03-02T11:00:00Z"
	}`
	rec := postJSON(t, newTestHandler(src), "/api/validate", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: want 400, got %d", rec.Code)
	}
	var resp rescheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Approved {
		t.Error("should not be approved")
	}
}

func TestValidate_ConflictMapsTo409(t *testing.T) {
	src := &fakeSource{
		event: core.Event{ID: "ev1"},
		freeBusy: map[string][]core.BusyInterval{
			"primary": {{
				Start: time.Date(2026, 3, 3, 10, 30, 0, 0, time.UTC),
				End:   time.Date(2026, 3, 3, 11, 30, 0, 0, time.UTC),
			}},
		},
	}
	rec := postJSON(t, newTestHandler(src), "/api/validate", okBody)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: want 409, got %d", rec.Code)
	}
}

func TestValidate_SourceDownMapsTo502(t *testing.T) {
	src := &fakeSource{
		event:       core.Event{ID: "ev1"},
		freeBusyErr: errors.New("freebusy down"),
		listErr:     errors.New("listing down"),
	}
	rec := postJSON(t, newTestHandler(src), "/api/validate", okBody)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: want 502, got %d (%s)", rec.Code, rec.Body)
	}
}

func TestValidate_BadBody(t *testing.T) {
	src := &fakeSource{event: core.Event{ID: "ev1"}}
	cases := []string{
		`not json`,
		`{"event_id": "ev1", "start": "2026-03-03T10:00:00Z", "end": "2026-03-03T11:00:00Z"}`,
		`{"calendar_id": "primary", "event_id": "ev1", "start": "tomorrow", "end": "2026-03-03T11:00:00Z"}`,
		`{"calendar_id": "primary", "event_id": "ev1", "start": "2026-03-03T11:00:00Z", "end": "2026-03-03T10:00:00Z"}`,
	}
	for _, body := range cases {
		rec := postJSON(t, newTestHandler(src), "/api/validate", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: want 400, got %d", body, rec.Code)
		}
	}
}

func TestReschedule_PatchesWhenApproved(t *testing.T) {
	src := &fakeSource{
		event:    core.Event{ID: "ev1", Title: "Standup"},
		freeBusy: map[string][]core.BusyInterval{"primary": {}},
	}
	rec := postJSON(t, newTestHandler(src), "/api/reschedule", okBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d (%s)", rec.Code, rec.Body)
	}
	if !src.patched {
		t.Error("event was not patched")
	}
	var resp rescheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Event == nil || resp.Event.Title != "Standup" {
		t.Errorf("want updated event in response, got %+v", resp.Event)
	}
}

func TestReschedule_BlockedLeavesEventAlone(t *testing.T) {
	src := &fakeSource{
		event: core.Event{ID: "ev1"},
		freeBusy: map[string][]core.BusyInterval{
			"primary": {{
				Start: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC),
			}},
		},
	}
	rec := postJSON(t, newTestHandler(src), "/api/reschedule", okBody)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: want 409, got %d", rec.Code)
	}
	if src.patched {
		t.Error("blocked reschedule must not patch the event")
	}
}
