// Package policy loads the reschedule ruleset from a YAML file and
// validates it before any request is evaluated against it.
package policy

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rsched/rsched/internal/core"
)

// file is the on-disk shape. Weekdays are keyed by lowercase name, and a
// day left out has no business hours at all.
type file struct {
	MinNoticeHours       float64                        `yaml:"min_notice_hours"`
	TimeZone             string                         `yaml:"time_zone"`
	BusinessHours        map[string]core.BusinessWindow `yaml:"business_hours"`
	CalendarsToCheck     []string                       `yaml:"calendars_to_check"`
	TreatTentativeAsBusy bool                           `yaml:"treat_tentative_as_busy"`
	IgnoreDeclined       bool                           `yaml:"ignore_declined"`
	ConflictMethod       string                         `yaml:"conflict_method"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Default is the policy used when no file is configured: one day's notice,
// Monday–Friday nine to five, tentative not busy, declined ignored.
func Default() core.Policy {
	return core.Policy{
		MinNoticeHours: 24,
		BusinessHours: map[time.Weekday]core.BusinessWindow{
			time.Monday:    {Start: "09:00", End: "17:00"},
			time.Tuesday:   {Start: "09:00", End: "17:00"},
			time.Wednesday: {Start: "09:00", End: "17:00"},
			time.Thursday:  {Start: "09:00", End: "17:00"},
			time.Friday:    {Start: "09:00", End: "17:00"},
		},
		IgnoreDeclined: true,
		ConflictMethod: core.ConflictAggregate,
	}
}

// Load reads and validates a policy file. Any problem here is a
// configuration error surfaced at startup, never a per-request violation.
func Load(path string) (core.Policy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return core.Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates policy YAML.
func Parse(b []byte) (core.Policy, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return core.Policy{}, fmt.Errorf("parse policy file: %w", err)
	}

	pol := core.Policy{
		MinNoticeHours:       f.MinNoticeHours,
		TimeZone:             f.TimeZone,
		CalendarsToCheck:     f.CalendarsToCheck,
		TreatTentativeAsBusy: f.TreatTentativeAsBusy,
		IgnoreDeclined:       f.IgnoreDeclined,
		ConflictMethod:       core.ConflictMethod(f.ConflictMethod),
	}
	if pol.ConflictMethod == "" {
		pol.ConflictMethod = core.ConflictAggregate
	}

	if len(f.BusinessHours) > 0 {
		pol.BusinessHours = make(map[time.Weekday]core.BusinessWindow, len(f.BusinessHours))
		for name, win := range f.BusinessHours {
			day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return core.Policy{}, fmt.Errorf("unknown weekday %q in business_hours", name)
			}
			pol.BusinessHours[day] = win
		}
	}

	if err := pol.Validate(); err != nil {
		return core.Policy{}, err
	}
	return pol, nil
}
