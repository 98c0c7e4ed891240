// Package guard evaluates a proposed calendar reschedule against a policy:
// minimum notice, per-weekday business hours, and conflict-free on a set of
// calendars. It is stateless; every call is one independent evaluation.
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rsched/rsched/internal/core"
)

// ErrSourceUnavailable wraps a total availability-data failure: both
// conflict strategies failed, so the proposal could not be validated.
// Distinct from a TIME_CONFLICT violation on purpose — "we could not check"
// must never read as "no conflict".
var ErrSourceUnavailable = errors.New("availability data source unavailable")

// Clock supplies "now". Injected so tests can pin it.
type Clock func() time.Time

// Validator composes the three checks over one calendar source.
type Validator struct {
	prober *Prober
	now    Clock
	log    zerolog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock replaces the wall clock, for deterministic tests.
func WithClock(now Clock) Option {
	return func(v *Validator) { v.now = now }
}

func New(source core.CalendarSource, log zerolog.Logger, opts ...Option) *Validator {
	v := &Validator{
		prober: NewProber(source, log),
		now:    time.Now,
		log:    log.With().Str("component", "validator").Logger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateReschedule runs the notice, business-hours and conflict checks,
// always all three, and returns every violation in that fixed order. An
// empty list means the reschedule is approved. The only error case is the
// conflict data source being entirely unreachable.
func (v *Validator) ValidateReschedule(ctx context.Context, p core.Proposal, pol core.Policy) ([]core.Violation, error) {
	violations := []core.Violation{}

	if viol := CheckNotice(v.now(), p, pol); viol != nil {
		violations = append(violations, *viol)
	}
	if viol := CheckBusinessHours(p, pol); viol != nil {
		violations = append(violations, *viol)
	}

	res, err := v.prober.Probe(ctx, p, pol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if res.Busy {
		violations = append(violations, core.Violation{
			Code:    core.CodeTimeConflict,
			Message: "The proposed time overlaps a busy period on a checked calendar.",
			Details: map[string]any{
				"window_start":      p.Start,
				"window_end":        p.End,
				"calendars_checked": res.Calendars,
				"method":            string(res.Method),
			},
		})
	}

	v.log.Debug().
		Str("event_id", p.Event.ID).
		Str("calendar_id", p.CalendarID).
		Int("violations", len(violations)).
		Msg("reschedule validated")

	return violations, nil
}
