package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ConflictMethod selects the primary conflict-detection strategy.
type ConflictMethod string

const (
	// One combined free/busy query across all calendars.
	ConflictAggregate ConflictMethod = "aggregate"
	// Per-calendar event listing with local filtering.
	ConflictEnumerate ConflictMethod = "enumerate"
)

// BusinessWindow is the open/close pair for one weekday, as zero-padded
// 24-hour "HH:MM" strings.
type BusinessWindow struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// Policy is the ruleset a proposed reschedule is evaluated against.
// It is read fresh per validation call and never mutated.
type Policy struct {
	// Minimum hours between "now" and the proposed start. Fractional allowed.
	MinNoticeHours float64
	// IANA zone business hours and notice are evaluated in. Optional;
	// the checks have their own fallback chains when empty.
	TimeZone string
	// Weekdays with no entry have no business hours at all: every
	// proposal on such a day is rejected, not waved through.
	BusinessHours map[time.Weekday]BusinessWindow
	// Extra calendars probed for conflicts, on top of the target calendar.
	CalendarsToCheck []string
	// Count tentative events as busy when enumerating.
	TreatTentativeAsBusy bool
	// Skip events the user has declined when enumerating.
	IgnoreDeclined bool
	ConflictMethod ConflictMethod
}

// Validate rejects malformed policies at load time. A bad policy is a
// configuration error, not a per-request violation.
func (p Policy) Validate() error {
	if p.MinNoticeHours < 0 {
		return fmt.Errorf("min_notice_hours must be >= 0, got %v", p.MinNoticeHours)
	}
	if p.TimeZone != "" {
		if _, err := time.LoadLocation(p.TimeZone); err != nil {
			return fmt.Errorf("invalid time_zone %q: %w", p.TimeZone, err)
		}
	}
	for day, win := range p.BusinessHours {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("invalid weekday %d in business_hours", day)
		}
		sh, sm, err := ParseClock(win.Start)
		if err != nil {
			return fmt.Errorf("business_hours[%s].start: %w", day, err)
		}
		eh, em, err := ParseClock(win.End)
		if err != nil {
			return fmt.Errorf("business_hours[%s].end: %w", day, err)
		}
		if sh*60+sm >= eh*60+em {
			return fmt.Errorf("business_hours[%s]: start %s must precede end %s", day, win.Start, win.End)
		}
	}
	switch p.ConflictMethod {
	case ConflictAggregate, ConflictEnumerate:
	default:
		return fmt.Errorf("unknown conflict_method %q", p.ConflictMethod)
	}
	return nil
}

// ParseClock parses "HH:MM" into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format: %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time out of range: %q", s)
	}
	return hour, minute, nil
}
