package guard

import (
	"testing"
	"time"

	"github.com/rsched/rsched/internal/core"
)

func TestCheckNotice_TooSoon(t *testing.T) {
	// Monday 2 Mar 2026, 09:00 UTC
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	pol := core.Policy{MinNoticeHours: 24, TimeZone: "UTC"}
	p := core.Proposal{
		Start: time.Date(2026, 3, 3, 8, 59, 0, 0, time.UTC), // 23h59m away
		End:   time.Date(2026, 3, 3, 9, 59, 0, 0, time.UTC),
	}

	v := CheckNotice(now, p, pol)
	if v == nil {
		t.Fatal("want NOTICE_TOO_SOON violation, got nil")
	}
	if v.Code != core.CodeNoticeTooSoon {
		t.Errorf("code: want %s, got %s", core.CodeNoticeTooSoon, v.Code)
	}
	diff, ok := v.Details["diff_hours"].(float64)
	if !ok || diff >= 24 {
		t.Errorf("diff_hours: want < 24, got %v", v.Details["diff_hours"])
	}
}

func TestCheckNotice_ExactBoundaryPasses(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	pol := core.Policy{MinNoticeHours: 24, TimeZone: "UTC"}
	p := core.Proposal{
		Start: time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
	}

	if v := CheckNotice(now, p, pol); v != nil {
		t.Errorf("want pass at exactly 24h, got %+v", v)
	}
}

func TestCheckNotice_WallClockAcrossSpringForward(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	// DST starts 8 Mar 2026 02:00 in New York. 09:00 Saturday to 09:00
	// Sunday is 23 elapsed hours but 24 wall-clock hours.
	now := time.Date(2026, 3, 7, 9, 0, 0, 0, loc)
	p := core.Proposal{
		Start: time.Date(2026, 3, 8, 9, 0, 0, 0, loc),
		End:   time.Date(2026, 3, 8, 10, 0, 0, 0, loc),
	}
	pol := core.Policy{MinNoticeHours: 24, TimeZone: "America/New_York"}

	if v := CheckNotice(now, p, pol); v != nil {
		t.Errorf("want pass (24 wall-clock hours across DST), got %+v", v)
	}
}

func TestCheckNotice_ZoneFallbackOrder(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	p := core.Proposal{
		Start:        time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		End:          time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
		UserTimeZone: "Europe/London",
	}

	// Policy zone wins over the caller's zone.
	v := CheckNotice(now, p, core.Policy{MinNoticeHours: 2, TimeZone: "Asia/Tokyo"})
	if v == nil {
		t.Fatal("want violation")
	}
	if tz := v.Details["time_zone"]; tz != "Asia/Tokyo" {
		t.Errorf("time_zone: want Asia/Tokyo, got %v", tz)
	}

	// No policy zone: caller's zone.
	v = CheckNotice(now, p, core.Policy{MinNoticeHours: 2})
	if v == nil {
		t.Fatal("want violation")
	}
	if tz := v.Details["time_zone"]; tz != "Europe/London" {
		t.Errorf("time_zone: want Europe/London, got %v", tz)
	}

	// Neither: UTC.
	p.UserTimeZone = ""
	v = CheckNotice(now, p, core.Policy{MinNoticeHours: 2})
	if v == nil {
		t.Fatal("want violation")
	}
	if tz := v.Details["time_zone"]; tz != "UTC" {
		t.Errorf("time_zone: want UTC, got %v", tz)
	}
}

func TestCheckNotice_ZeroMinNotice(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	p := core.Proposal{
		Start: now.Add(time.Minute),
		End:   now.Add(time.Hour),
	}
	if v := CheckNotice(now, p, core.Policy{MinNoticeHours: 0}); v != nil {
		t.Errorf("want pass with zero min notice, got %+v", v)
	}
}
