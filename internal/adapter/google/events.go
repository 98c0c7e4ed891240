package google

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/rsched/rsched/internal/core"
)

// GetEvent fetches a single event.
func (g *GoogleAdapter) GetEvent(ctx context.Context, calendarID, eventID string) (core.Event, error) {
	item, err := g.service.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return core.Event{}, fmt.Errorf("get event %s: %w", eventID, err)
	}
	return g.parseEvent(item, calendarID), nil
}

// ListEvents fetches events intersecting the window on one calendar, with
// recurring events expanded. Deleted events are excluded at the API; the
// engine applies its own cancelled/declined/tentative filtering on top.
func (g *GoogleAdapter) ListEvents(ctx context.Context, calendarID string, start, end time.Time, _ core.ListOptions) ([]core.Event, error) {
	tMin := start.Format(time.RFC3339)
	tMax := end.Format(time.RFC3339)

	var results []core.Event
	pageToken := ""

	for {
		req := g.service.Events.List(calendarID).
			ShowDeleted(false).
			SingleEvents(true).
			TimeMin(tMin).
			TimeMax(tMax).
			OrderBy("startTime").
			Context(ctx)

		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		eventsResult, err := req.Do()
		if err != nil {
			return nil, fmt.Errorf("list events for calendar %s: %w", calendarID, err)
		}

		for _, item := range eventsResult.Items {
			results = append(results, g.parseEvent(item, calendarID))
		}

		pageToken = eventsResult.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return results, nil
}

// QueryFreeBusy runs one combined free/busy query across the given
// calendars and returns the busy intervals each reported for the window.
func (g *GoogleAdapter) QueryFreeBusy(ctx context.Context, calendarIDs []string, start, end time.Time) (map[string][]core.BusyInterval, error) {
	req := &calendar.FreeBusyRequest{
		TimeMin: start.Format(time.RFC3339),
		TimeMax: end.Format(time.RFC3339),
	}
	for _, id := range calendarIDs {
		req.Items = append(req.Items, &calendar.FreeBusyRequestItem{Id: id})
	}

	resp, err := g.service.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	busy := make(map[string][]core.BusyInterval, len(resp.Calendars))
	for id, cal := range resp.Calendars {
		intervals := []core.BusyInterval{}
		for _, period := range cal.Busy {
			s, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				continue
			}
			e, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				continue
			}
			intervals = append(intervals, core.BusyInterval{Start: s, End: e})
		}
		busy[id] = intervals
	}
	return busy, nil
}

// PatchEventTime rewrites just the start/end of an event, leaving every
// other field alone.
func (g *GoogleAdapter) PatchEventTime(ctx context.Context, calendarID, eventID string, start, end time.Time, timeZone string) (core.Event, error) {
	body := &calendar.Event{
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: timeZone,
		},
	}

	updated, err := g.service.Events.Patch(calendarID, eventID, body).Context(ctx).Do()
	if err != nil {
		return core.Event{}, fmt.Errorf("patch event %s: %w", eventID, err)
	}
	return g.parseEvent(updated, calendarID), nil
}

// parseEvent converts a Google Calendar event to our unified Event type.
func (g *GoogleAdapter) parseEvent(item *calendar.Event, calendarID string) core.Event {
	var startTime, endTime time.Time
	var startZone, endZone string
	isAllDay := false

	if item.Start != nil && item.Start.DateTime != "" {
		startTime, _ = time.Parse(time.RFC3339, item.Start.DateTime)
		endTime, _ = time.Parse(time.RFC3339, item.End.DateTime)
		startZone = item.Start.TimeZone
		endZone = item.End.TimeZone
	} else if item.Start != nil {
		// All day event (YYYY-MM-DD)
		startTime, _ = time.Parse("2006-01-02", item.Start.Date)
		endTime, _ = time.Parse("2006-01-02", item.End.Date)
		isAllDay = true
	}

	var attendees []core.Attendee
	for _, att := range item.Attendees {
		attendees = append(attendees, core.Attendee{
			Email:    att.Email,
			Self:     att.Self,
			Response: parseResponseStatus(att.ResponseStatus),
		})
	}

	return core.Event{
		ID:         item.Id,
		ProviderID: g.ID(),
		Calendar: core.Calendar{
			ID:   calendarID,
			Name: g.calendars[calendarID],
		},
		Title:         item.Summary,
		Description:   item.Description,
		Location:      item.Location,
		Status:        parseEventStatus(item.Status),
		Attendees:     attendees,
		URL:           item.HtmlLink,
		Start:         startTime,
		End:           endTime,
		IsAllDay:      isAllDay,
		StartTimeZone: startZone,
		EndTimeZone:   endZone,
	}
}

func parseEventStatus(s string) core.EventStatus {
	switch s {
	case "tentative":
		return core.StatusTentative
	case "cancelled":
		return core.StatusCancelled
	default:
		return core.StatusConfirmed
	}
}

func parseResponseStatus(s string) core.ResponseStatus {
	switch s {
	case "accepted":
		return core.ResponseAccepted
	case "declined":
		return core.ResponseDeclined
	case "tentative":
		return core.ResponseTentative
	default:
		return core.ResponseNeedsAction
	}
}
