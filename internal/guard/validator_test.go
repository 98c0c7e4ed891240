package guard

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rsched/rsched/internal/core"
)

// Monday 2 Mar 2026, 09:00 UTC
var frozenNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func testPolicy() core.Policy {
	return core.Policy{
		MinNoticeHours: 24,
		TimeZone:       "UTC",
		BusinessHours: map[time.Weekday]core.BusinessWindow{
			time.Monday:  {Start: "09:00", End: "17:00"},
			time.Tuesday: {Start: "09:00", End: "17:00"},
		},
		ConflictMethod: core.ConflictAggregate,
	}
}

func newValidator(src core.CalendarSource) *Validator {
	return New(src, zerolog.Nop(), WithClock(func() time.Time { return frozenNow }))
}

func TestValidateReschedule_NoticeOnly(t *testing.T) {
	// 23h59m away, inside Tuesday hours, no conflicts.
	src := &fakeSource{freeBusy: map[string][]core.BusyInterval{"primary": {}}}
	p := core.Proposal{
		CalendarID: "primary",
		Start:      time.Date(2026, 3, 3, 8, 59, 0, 0, time.UTC),
		End:        time.Date(2026, 3, 3, 9, 59, 0, 0, time.UTC),
	}

	vs, err := newValidator(src).ValidateReschedule(context.Background(), p, testPolicy())
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 1 || vs[0].Code != core.CodeNoticeTooSoon {
		t.Fatalf("want exactly [NOTICE_TOO_SOON], got %+v", vs)
	}
}

func TestValidateReschedule_Approved(t *testing.T) {
	// Exactly 24h away, inside Tuesday hours, no conflicts.
	src := &fakeSource{freeBusy: map[string][]core.BusyInterval{"primary": {}}}
	p := core.Proposal{
		CalendarID: "primary",
		Start:      time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
	}

	vs, err := newValidator(src).ValidateReschedule(context.Background(), p, testPolicy())
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 0 {
		t.Fatalf("want approval (empty list), got %+v", vs)
	}
}

func TestValidateReschedule_ConflictOnly(t *testing.T) {
	src := &fakeSource{freeBusy: map[string][]core.BusyInterval{
		"primary": {{
			Start: time.Date(2026, 3, 3, 9, 30, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 3, 10, 30, 0, 0, time.UTC),
		}},
	}}
	p := core.Proposal{
		CalendarID: "primary",
		Start:      time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
	}

	vs, err := newValidator(src).ValidateReschedule(context.Background(), p, testPolicy())
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 1 || vs[0].Code != core.CodeTimeConflict {
		t.Fatalf("want exactly [TIME_CONFLICT], got %+v", vs)
	}
}

func TestValidateReschedule_FallbackClearsConflict(t *testing.T) {
	// Aggregate throws, enumeration finds nothing: approved.
	src := &fakeSource{
		freeBusyErr: errors.New("freebusy down"),
		events:      map[string][]core.Event{"primary": nil},
	}
	p := core.Proposal{
		CalendarID: "primary",
		Start:      time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
	}

	vs, err := newValidator(src).ValidateReschedule(context.Background(), p, testPolicy())
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 0 {
		t.Fatalf("want approval via fallback, got %+v", vs)
	}
	if len(src.listCalls) == 0 {
		t.Error("enumerate data source was never invoked")
	}
}

func TestValidateReschedule_AllChecksRunInFixedOrder(t *testing.T) {
	// Violates all three rules at once: too soon, Sunday, busy.
	src := &fakeSource{freeBusy: map[string][]core.BusyInterval{
		"primary": {{
			Start: time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 8, 11, 0, 0, 0, time.UTC),
		}},
	}}
	p := core.Proposal{
		CalendarID: "primary",
		Start:      time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC).AddDate(0, 0, 6), // Sunday 8 Mar
		End:        time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC).AddDate(0, 0, 6),
	}
	pol := testPolicy()
	pol.MinNoticeHours = 24 * 14

	vs, err := newValidator(src).ValidateReschedule(context.Background(), p, pol)
	if err != nil {
		t.Fatal(err)
	}
	want := []core.ViolationCode{core.CodeNoticeTooSoon, core.CodeBusinessHoursOutside, core.CodeTimeConflict}
	if len(vs) != len(want) {
		t.Fatalf("want %d violations, got %+v", len(want), vs)
	}
	for i, code := range want {
		if vs[i].Code != code {
			t.Errorf("violation %d: want %s, got %s", i, code, vs[i].Code)
		}
	}
}

func TestValidateReschedule_Idempotent(t *testing.T) {
	src := &fakeSource{freeBusy: map[string][]core.BusyInterval{"primary": {}}}
	p := core.Proposal{
		CalendarID: "primary",
		Start:      time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
	}
	v := newValidator(src)

	first, err := v.ValidateReschedule(context.Background(), p, testPolicy())
	if err != nil {
		t.Fatal(err)
	}
	second, err := v.ValidateReschedule(context.Background(), p, testPolicy())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestValidateReschedule_TotalSourceFailure(t *testing.T) {
	src := &fakeSource{
		freeBusyErr: errors.New("freebusy down"),
		listErr:     map[string]error{"primary": errors.New("listing down")},
	}
	p := core.Proposal{
		CalendarID: "primary",
		Start:      time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
	}

	vs, err := newValidator(src).ValidateReschedule(context.Background(), p, testPolicy())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got err=%v violations=%+v", err, vs)
	}
}
