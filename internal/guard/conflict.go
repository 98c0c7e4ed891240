package guard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rsched/rsched/internal/core"
)

// ProbeResult is the outcome of one availability probe.
type ProbeResult struct {
	Busy bool
	// Strategy that actually produced the answer. Differs from the policy's
	// primary when the aggregate query failed and enumeration took over.
	Method core.ConflictMethod
	// Calendars checked: the target calendar plus the policy's extras.
	Calendars []string
}

// Prober determines whether a proposed window overlaps a busy period on any
// of a set of calendars, using the policy's primary strategy with a
// one-directional aggregate→enumerate fallback.
type Prober struct {
	source core.CalendarSource
	log    zerolog.Logger
}

func NewProber(source core.CalendarSource, log zerolog.Logger) *Prober {
	return &Prober{
		source: source,
		log:    log.With().Str("component", "prober").Logger(),
	}
}

// Probe runs the conflict check for one proposal. It returns an error only
// when no strategy could produce an answer at all; per-calendar enumeration
// failures are logged and skipped.
func (p *Prober) Probe(ctx context.Context, proposal core.Proposal, pol core.Policy) (ProbeResult, error) {
	cals := calendarSet(proposal.CalendarID, pol.CalendarsToCheck)

	if pol.ConflictMethod == core.ConflictEnumerate {
		busy, err := p.enumerate(ctx, cals, proposal, pol)
		return ProbeResult{Busy: busy, Method: core.ConflictEnumerate, Calendars: cals}, err
	}

	busy, err := p.aggregate(ctx, cals, proposal)
	if err == nil {
		return ProbeResult{Busy: busy, Method: core.ConflictAggregate, Calendars: cals}, nil
	}
	p.log.Warn().Err(err).Msg("free/busy query failed, falling back to enumeration")

	busy, err = p.enumerate(ctx, cals, proposal, pol)
	return ProbeResult{Busy: busy, Method: core.ConflictEnumerate, Calendars: cals}, err
}

// aggregate issues one combined free/busy query. Overlap is the remote
// side's call; any reported busy interval counts.
func (p *Prober) aggregate(ctx context.Context, cals []string, proposal core.Proposal) (bool, error) {
	byCalendar, err := p.source.QueryFreeBusy(ctx, cals, proposal.Start, proposal.End)
	if err != nil {
		return false, err
	}
	for _, intervals := range byCalendar {
		if len(intervals) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// enumerate lists events per calendar and filters locally. A calendar that
// fails to list contributes nothing; only when every calendar fails is the
// probe itself considered failed, since approving on zero data would be
// unsafe.
func (p *Prober) enumerate(ctx context.Context, cals []string, proposal core.Proposal, pol core.Policy) (bool, error) {
	opts := core.ListOptions{
		TreatTentativeAsBusy: pol.TreatTentativeAsBusy,
		IgnoreDeclined:       pol.IgnoreDeclined,
	}

	failed := 0
	for _, cal := range cals {
		events, err := p.source.ListEvents(ctx, cal, proposal.Start, proposal.End, opts)
		if err != nil {
			failed++
			p.log.Warn().Err(err).Str("calendar", cal).Msg("event listing failed, skipping calendar")
			continue
		}
		for _, ev := range events {
			if countsAsBusy(ev, pol) {
				return true, nil
			}
		}
	}
	if len(cals) > 0 && failed == len(cals) {
		return false, fmt.Errorf("event listing failed on all %d calendars", len(cals))
	}
	return false, nil
}

// countsAsBusy applies the engine's own filtering, regardless of anything
// the provider already filtered.
func countsAsBusy(ev core.Event, pol core.Policy) bool {
	if ev.Status == core.StatusCancelled {
		return false
	}
	if pol.IgnoreDeclined {
		if resp, ok := ev.SelfResponse(); ok && resp == core.ResponseDeclined {
			return false
		}
	}
	if ev.Status == core.StatusTentative && !pol.TreatTentativeAsBusy {
		return false
	}
	return true
}

// calendarSet unions the target calendar with the policy's extra calendars,
// deduplicated, target first.
func calendarSet(target string, extras []string) []string {
	seen := map[string]bool{}
	var cals []string
	for _, id := range append([]string{target}, extras...) {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		cals = append(cals, id)
	}
	return cals
}
