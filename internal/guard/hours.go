package guard

import (
	"fmt"
	"time"

	"github.com/rsched/rsched/internal/core"
)

// CheckBusinessHours evaluates the business-hours rule. The evaluation zone
// is the policy zone when set, else the original event's stored zone, else
// UTC — a different fallback chain than the notice check: notice is
// caller-relative, business hours are venue-relative.
//
// A weekday missing from the policy map has no business hours at all, so
// every proposal on that day fails. The close instant is anchored to the
// proposed start's calendar date, so a proposal whose end crosses midnight
// is still judged against the start day's close time. An end exactly at
// close passes.
func CheckBusinessHours(p core.Proposal, pol core.Policy) *core.Violation {
	loc := hoursLocation(pol, p)
	start := p.Start.In(loc)
	end := p.End.In(loc)

	win, ok := pol.BusinessHours[start.Weekday()]
	if !ok {
		return &core.Violation{
			Code:    core.CodeBusinessHoursOutside,
			Message: fmt.Sprintf("No business hours defined for %s.", start.Weekday()),
			Details: map[string]any{
				"weekday":   start.Weekday().String(),
				"time_zone": loc.String(),
			},
		}
	}

	sh, sm, err := core.ParseClock(win.Start)
	if err != nil {
		return malformedWindow(start.Weekday(), loc, err)
	}
	eh, em, err := core.ParseClock(win.End)
	if err != nil {
		return malformedWindow(start.Weekday(), loc, err)
	}

	open := time.Date(start.Year(), start.Month(), start.Day(), sh, sm, 0, 0, loc)
	close := time.Date(start.Year(), start.Month(), start.Day(), eh, em, 0, 0, loc)

	if start.Before(open) || end.After(close) {
		return &core.Violation{
			Code: core.CodeBusinessHoursOutside,
			Message: fmt.Sprintf("Proposed time %s–%s falls outside %s business hours (%s–%s).",
				start.Format("15:04"), end.Format("15:04"), start.Weekday(), win.Start, win.End),
			Details: map[string]any{
				"weekday":        start.Weekday().String(),
				"open":           open,
				"close":          close,
				"proposed_start": start,
				"proposed_end":   end,
				"time_zone":      loc.String(),
			},
		}
	}
	return nil
}

// Policies are validated at load time, so a bad window here means the
// caller bypassed that; treat the day as blocked rather than open.
func malformedWindow(day time.Weekday, loc *time.Location, err error) *core.Violation {
	return &core.Violation{
		Code:    core.CodeBusinessHoursOutside,
		Message: fmt.Sprintf("Business hours for %s are malformed.", day),
		Details: map[string]any{
			"weekday":   day.String(),
			"time_zone": loc.String(),
			"error":     err.Error(),
		},
	}
}

func hoursLocation(pol core.Policy, p core.Proposal) *time.Location {
	for _, name := range []string{pol.TimeZone, p.Event.StartTimeZone} {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}
