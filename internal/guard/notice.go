package guard

import (
	"fmt"
	"time"

	"github.com/rsched/rsched/internal/core"
)

// CheckNotice evaluates the minimum-notice rule. The evaluation zone is the
// policy zone when set, else the caller's zone, else UTC. Hours are counted
// on the wall clock of that zone, so an interval spanning a DST transition
// gains or loses an hour relative to the raw epoch difference. A difference
// exactly equal to the minimum passes.
func CheckNotice(now time.Time, p core.Proposal, pol core.Policy) *core.Violation {
	loc := noticeLocation(pol, p)
	diff := wallClockHours(now, p.Start, loc)
	if diff >= pol.MinNoticeHours {
		return nil
	}
	return &core.Violation{
		Code: core.CodeNoticeTooSoon,
		Message: fmt.Sprintf("Proposed start is %.1f hours away; policy requires at least %v hours of notice.",
			diff, pol.MinNoticeHours),
		Details: map[string]any{
			"diff_hours":       diff,
			"min_notice_hours": pol.MinNoticeHours,
			"time_zone":        loc.String(),
		},
	}
}

func noticeLocation(pol core.Policy, p core.Proposal) *time.Location {
	for _, name := range []string{pol.TimeZone, p.UserTimeZone} {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}

// wallClockHours is the civil-time difference between two instants as seen
// in loc, in fractional hours.
func wallClockHours(from, to time.Time, loc *time.Location) float64 {
	return civilTime(to, loc).Sub(civilTime(from, loc)).Hours()
}

// civilTime re-reads an instant's wall-clock fields in loc as if they were
// UTC, turning zone-local civil time into something subtractable.
func civilTime(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
