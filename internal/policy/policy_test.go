package policy

import (
	"strings"
	"testing"
	"time"

	"github.com/rsched/rsched/internal/core"
)

const sample = `
min_notice_hours: 48
time_zone: Europe/London
business_hours:
  monday: {start: "09:00", end: "17:00"}
  tuesday: {start: "08:30", end: "16:00"}
calendars_to_check:
  - team@example.com
treat_tentative_as_busy: true
ignore_declined: true
conflict_method: enumerate
`

func TestParse(t *testing.T) {
	pol, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if pol.MinNoticeHours != 48 {
		t.Errorf("min notice: want 48, got %v", pol.MinNoticeHours)
	}
	if pol.ConflictMethod != core.ConflictEnumerate {
		t.Errorf("method: want enumerate, got %s", pol.ConflictMethod)
	}
	if win, ok := pol.BusinessHours[time.Tuesday]; !ok || win.Start != "08:30" {
		t.Errorf("tuesday window: got %+v ok=%v", win, ok)
	}
	if _, ok := pol.BusinessHours[time.Sunday]; ok {
		t.Error("sunday should have no entry")
	}
}

func TestParse_DefaultsConflictMethod(t *testing.T) {
	pol, err := Parse([]byte(`min_notice_hours: 1`))
	if err != nil {
		t.Fatal(err)
	}
	if pol.ConflictMethod != core.ConflictAggregate {
		t.Errorf("want aggregate default, got %s", pol.ConflictMethod)
	}
}

func TestParse_Rejections(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"bad zone", `time_zone: Mars/Olympus`, "time_zone"},
		{"bad weekday", "business_hours:\n  funday: {start: \"09:00\", end: \"17:00\"}", "weekday"},
		{"inverted window", "business_hours:\n  monday: {start: \"17:00\", end: \"09:00\"}", "precede"},
		{"bad clock", "business_hours:\n  monday: {start: \"9am\", end: \"17:00\"}", "time"},
		{"negative notice", `min_notice_hours: -1`, "min_notice_hours"},
		{"bad method", `conflict_method: guesswork`, "conflict_method"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("want error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default policy invalid: %v", err)
	}
}
