package outlook

import (
	"context"
	"fmt"
	"time"

	abstractions "github.com/microsoft/kiota-abstractions-go"
	msgraphcore "github.com/microsoftgraph/msgraph-sdk-go-core"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/users"

	"github.com/rsched/rsched/internal/core"
)

const graphTimeLayout = "2006-01-02T15:04:05"

// GetEvent fetches a single event. The calendar ID "default" addresses the
// user's primary calendar.
func (o *OutlookAdapter) GetEvent(ctx context.Context, calendarID, eventID string) (core.Event, error) {
	headers := abstractions.NewRequestHeaders()
	headers.Add("Prefer", `outlook.timezone="UTC"`)

	config := &users.ItemEventsEventItemRequestBuilderGetRequestConfiguration{
		Headers: headers,
	}
	item, err := o.client.Me().Events().ByEventId(eventID).Get(ctx, config)
	if err != nil {
		return core.Event{}, fmt.Errorf("get event %s: %w", eventID, err)
	}
	return parseGraphEvent(o.ID(), item, calendarID, o.calendars[calendarID]), nil
}

// ListEvents fetches events intersecting the window via the calendar view,
// which expands recurring events to single instances.
func (o *OutlookAdapter) ListEvents(ctx context.Context, calendarID string, start, end time.Time, _ core.ListOptions) ([]core.Event, error) {
	startStr := start.UTC().Format(time.RFC3339)
	endStr := end.UTC().Format(time.RFC3339)
	selectFields := []string{
		"id", "subject", "start", "end", "location", "isAllDay",
		"showAs", "responseStatus", "attendees", "webLink", "isCancelled",
	}
	orderBy := []string{"start/dateTime"}
	top := int32(100)

	headers := abstractions.NewRequestHeaders()
	headers.Add("Prefer", `outlook.timezone="UTC"`)

	var result models.EventCollectionResponseable
	var err error

	if calendarID == "default" {
		config := &users.ItemCalendarViewRequestBuilderGetRequestConfiguration{
			QueryParameters: &users.ItemCalendarViewRequestBuilderGetQueryParameters{
				StartDateTime: &startStr,
				EndDateTime:   &endStr,
				Select:        selectFields,
				Orderby:       orderBy,
				Top:           &top,
			},
			Headers: headers,
		}
		result, err = o.client.Me().CalendarView().Get(ctx, config)
	} else {
		config := &users.ItemCalendarsItemCalendarViewRequestBuilderGetRequestConfiguration{
			QueryParameters: &users.ItemCalendarsItemCalendarViewRequestBuilderGetQueryParameters{
				StartDateTime: &startStr,
				EndDateTime:   &endStr,
				Select:        selectFields,
				Orderby:       orderBy,
				Top:           &top,
			},
			Headers: headers,
		}
		result, err = o.client.Me().Calendars().ByCalendarId(calendarID).CalendarView().Get(ctx, config)
	}

	if err != nil {
		return nil, fmt.Errorf("fetch calendar view: %w", err)
	}

	calendarName := o.calendars[calendarID]
	var results []core.Event

	pageIterator, err := msgraphcore.NewPageIterator[models.Eventable](
		result,
		o.client.GetAdapter(),
		models.CreateEventCollectionResponseFromDiscriminatorValue,
	)
	if err != nil {
		return nil, fmt.Errorf("create page iterator: %w", err)
	}

	err = pageIterator.Iterate(ctx, func(item models.Eventable) bool {
		results = append(results, parseGraphEvent(o.ID(), item, calendarID, calendarName))
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return results, nil
}

// QueryFreeBusy asks Graph's getSchedule for busy intervals in the window.
// Graph keys schedules by SMTP address, so the IDs passed here must be
// addresses (the primary calendar's ID is the user's own address).
func (o *OutlookAdapter) QueryFreeBusy(ctx context.Context, calendarIDs []string, start, end time.Time) (map[string][]core.BusyInterval, error) {
	utc := "UTC"
	startStr := start.UTC().Format(graphTimeLayout)
	endStr := end.UTC().Format(graphTimeLayout)
	interval := int32(30)

	startDT := models.NewDateTimeTimeZone()
	startDT.SetDateTime(&startStr)
	startDT.SetTimeZone(&utc)
	endDT := models.NewDateTimeTimeZone()
	endDT.SetDateTime(&endStr)
	endDT.SetTimeZone(&utc)

	body := users.NewItemCalendarGetSchedulePostRequestBody()
	body.SetSchedules(calendarIDs)
	body.SetStartTime(startDT)
	body.SetEndTime(endDT)
	body.SetAvailabilityViewInterval(&interval)

	resp, err := o.client.Me().Calendar().GetSchedule().PostAsGetSchedulePostResponse(ctx, body, nil)
	if err != nil {
		return nil, fmt.Errorf("getSchedule query: %w", err)
	}

	busy := make(map[string][]core.BusyInterval, len(calendarIDs))
	for _, sched := range resp.GetValue() {
		id := derefStr(sched.GetScheduleId())
		intervals := []core.BusyInterval{}
		for _, item := range sched.GetScheduleItems() {
			if status := item.GetStatus(); status != nil && *status == models.FREE_FREEBUSYSTATUS {
				continue
			}
			s := parseSDKDateTime(item.GetStart())
			e := parseSDKDateTime(item.GetEnd())
			if s.IsZero() || e.IsZero() {
				continue
			}
			intervals = append(intervals, core.BusyInterval{Start: s, End: e})
		}
		busy[id] = intervals
	}
	return busy, nil
}

// PatchEventTime rewrites just the start/end of an event.
func (o *OutlookAdapter) PatchEventTime(ctx context.Context, calendarID, eventID string, start, end time.Time, timeZone string) (core.Event, error) {
	if timeZone == "" {
		timeZone = "UTC"
	}
	startStr := start.Format(graphTimeLayout)
	endStr := end.Format(graphTimeLayout)

	startDT := models.NewDateTimeTimeZone()
	startDT.SetDateTime(&startStr)
	startDT.SetTimeZone(&timeZone)
	endDT := models.NewDateTimeTimeZone()
	endDT.SetDateTime(&endStr)
	endDT.SetTimeZone(&timeZone)

	body := models.NewEvent()
	body.SetStart(startDT)
	body.SetEnd(endDT)

	updated, err := o.client.Me().Events().ByEventId(eventID).Patch(ctx, body, nil)
	if err != nil {
		return core.Event{}, fmt.Errorf("patch event %s: %w", eventID, err)
	}
	return parseGraphEvent(o.ID(), updated, calendarID, o.calendars[calendarID]), nil
}

// parseGraphEvent converts a Graph SDK event into our unified core.Event.
func parseGraphEvent(providerID string, item models.Eventable, calendarID, calendarName string) core.Event {
	status := core.StatusConfirmed
	if derefBool(item.GetIsCancelled()) {
		status = core.StatusCancelled
	} else if showAs := item.GetShowAs(); showAs != nil && *showAs == models.TENTATIVE_FREEBUSYSTATUS {
		status = core.StatusTentative
	}

	// Graph reports the user's own reply on the event, not in the attendee
	// list, so surface it as a synthetic self attendee.
	var attendees []core.Attendee
	if rs := item.GetResponseStatus(); rs != nil && rs.GetResponse() != nil {
		attendees = append(attendees, core.Attendee{
			Self:     true,
			Response: parseSDKResponse(*rs.GetResponse()),
		})
	}
	for _, att := range item.GetAttendees() {
		a := core.Attendee{}
		if addr := att.GetEmailAddress(); addr != nil {
			a.Email = derefStr(addr.GetAddress())
		}
		if st := att.GetStatus(); st != nil && st.GetResponse() != nil {
			a.Response = parseSDKResponse(*st.GetResponse())
		}
		attendees = append(attendees, a)
	}

	location := ""
	if loc := item.GetLocation(); loc != nil {
		location = derefStr(loc.GetDisplayName())
	}

	// Times arrive in UTC because of the Prefer header; the original wall
	// zone is carried alongside.
	startZone, endZone := "", ""
	if st := item.GetStart(); st != nil {
		startZone = derefStr(st.GetTimeZone())
	}
	if et := item.GetEnd(); et != nil {
		endZone = derefStr(et.GetTimeZone())
	}

	return core.Event{
		ID:         derefStr(item.GetId()),
		ProviderID: providerID,
		Calendar: core.Calendar{
			ID:   calendarID,
			Name: calendarName,
		},
		Title:         derefStr(item.GetSubject()),
		Location:      location,
		Status:        status,
		Attendees:     attendees,
		URL:           derefStr(item.GetWebLink()),
		Start:         parseSDKDateTime(item.GetStart()),
		End:           parseSDKDateTime(item.GetEnd()),
		IsAllDay:      derefBool(item.GetIsAllDay()),
		StartTimeZone: startZone,
		EndTimeZone:   endZone,
	}
}

// parseSDKDateTime converts a Graph SDK DateTimeTimeZone to time.Time.
// Times are in UTC because we set the Prefer: outlook.timezone="UTC" header.
func parseSDKDateTime(dt models.DateTimeTimeZoneable) time.Time {
	if dt == nil {
		return time.Time{}
	}
	dateTimeStr := dt.GetDateTime()
	if dateTimeStr == nil {
		return time.Time{}
	}
	layouts := []string{
		"2006-01-02T15:04:05.0000000",
		graphTimeLayout,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, *dateTimeStr); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func parseSDKResponse(r models.ResponseType) core.ResponseStatus {
	switch r {
	case models.ACCEPTED_RESPONSETYPE, models.ORGANIZER_RESPONSETYPE:
		return core.ResponseAccepted
	case models.DECLINED_RESPONSETYPE:
		return core.ResponseDeclined
	case models.TENTATIVELYACCEPTED_RESPONSETYPE:
		return core.ResponseTentative
	default:
		return core.ResponseNeedsAction
	}
}
