package calendar

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"servant_backend/internal/bookings/transport"
	"servant_backend/platform/config"
	"servant_backend/platform/logger"
)

// Private metadata keys on the calendar event. These never show up in the
// calendar UI.
const (
	metaStatus         = "bookingStatus"
	metaClientEmail    = "clientEmail"
	metaClientPhone    = "clientPhone"
	metaEstimatedTotal = "estimatedTotal"
	metaInvoiceID      = "invoiceId"
	metaInvoiceURL     = "invoiceUrl"
	metaMealInfo       = "mealInfo"
)

// defaultEventDuration is the window blocked out per booking when the client
// has not told us how long the event runs.
const defaultEventDuration = 3 * time.Hour

// statusColor maps booking status to a calendar color id, purely as a visual
// aid for the owner's calendar: yellow pending, green approved, red rejected.
func statusColor(status transport.Status) string {
	switch status {
	case transport.StatusApproved:
		return "10"
	case transport.StatusRejected:
		return "11"
	default:
		return "5"
	}
}

// GoogleStore implements BookingStore on top of the Google Calendar API.
type GoogleStore struct {
	svc        *gcal.Service
	calendarID string
	loc        *time.Location
	log        *logger.Logger
	now        func() time.Time
}

// NewGoogleStore creates a store bound to the configured calendar.
func NewGoogleStore(ctx context.Context, cfg config.CalendarConfig, log *logger.Logger) (*GoogleStore, error) {
	loc, err := time.LoadLocation(cfg.GetBusinessTimezone())
	if err != nil {
		return nil, fmt.Errorf("invalid business timezone %q: %w", cfg.GetBusinessTimezone(), err)
	}

	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(cfg.GetGoogleCredentialsFile()),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	return &GoogleStore{
		svc:        svc,
		calendarID: cfg.GetGoogleCalendarID(),
		loc:        loc,
		log:        log,
		now:        time.Now,
	}, nil
}

// Location returns the business timezone the store operates in.
func (s *GoogleStore) Location() *time.Location {
	return s.loc
}

// Ping verifies the calendar is reachable and the credentials are valid.
func (s *GoogleStore) Ping(ctx context.Context) error {
	if _, err := s.svc.Calendars.Get(s.calendarID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("calendar unreachable: %w", err)
	}
	return nil
}

// parseEventStart converts the requested civil date+time in the business
// timezone to an absolute instant. Unparseable input falls back to now so a
// malformed date never loses the booking request.
func (s *GoogleStore) parseEventStart(eventDate, eventTime string) time.Time {
	layout := "2006-01-02"
	value := eventDate
	if eventTime != "" {
		layout = "2006-01-02 15:04"
		value = eventDate + " " + eventTime
	}
	start, err := time.ParseInLocation(layout, value, s.loc)
	if err != nil {
		s.log.UpstreamError("calendar", "parse event date", err)
		return s.now()
	}
	return start
}

func (s *GoogleStore) Create(ctx context.Context, details BookingDetails) (string, error) {
	start := s.parseEventStart(details.EventDate, details.EventTime)
	end := start.Add(defaultEventDuration)

	private := map[string]string{
		metaStatus:         string(transport.StatusPending),
		metaClientEmail:    details.ClientEmail,
		metaClientPhone:    details.ClientPhone,
		metaEstimatedTotal: "",
		metaInvoiceID:      "",
		metaInvoiceURL:     "",
		metaMealInfo:       details.MealInfo,
	}
	if details.Estimate != nil {
		private[metaEstimatedTotal] = strconv.FormatFloat(details.Estimate.Total, 'f', 2, 64)
	}

	event := &gcal.Event{
		Summary:     fmt.Sprintf("Catering request: %s for %s", details.EventType, details.ClientName),
		Description: buildDescription(details),
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: s.loc.String()},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: s.loc.String()},
		ColorId:     statusColor(transport.StatusPending),
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: private,
		},
	}

	created, err := s.svc.Events.Insert(s.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create booking event: %w", err)
	}
	return created.Id, nil
}

func (s *GoogleStore) List(ctx context.Context, windowStart time.Time) ([]transport.Booking, error) {
	result, err := s.svc.Events.List(s.calendarID).
		TimeMin(windowStart.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(250).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list booking events: %w", err)
	}

	bookings := make([]transport.Booking, 0, len(result.Items))
	for _, item := range result.Items {
		bookings = append(bookings, s.eventToBooking(item))
	}
	return bookings, nil
}

func (s *GoogleStore) Get(ctx context.Context, id string) (transport.Booking, error) {
	event, err := s.svc.Events.Get(s.calendarID, id).Context(ctx).Do()
	if err != nil {
		return transport.Booking{}, fmt.Errorf("failed to get booking event %s: %w", id, err)
	}
	return s.eventToBooking(event), nil
}

func (s *GoogleStore) UpdateStatus(ctx context.Context, id string, status transport.Status, extra *StatusUpdate) error {
	// Read-merge-write so fields the caller does not pass survive. Not
	// transactional: concurrent updates to the same event race and the
	// last writer wins.
	event, err := s.svc.Events.Get(s.calendarID, id).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read booking event %s: %w", id, err)
	}

	private := map[string]string{}
	if event.ExtendedProperties != nil && event.ExtendedProperties.Private != nil {
		for k, v := range event.ExtendedProperties.Private {
			private[k] = v
		}
	}
	private[metaStatus] = string(status)
	if extra != nil {
		if extra.EstimatedTotal != "" {
			private[metaEstimatedTotal] = extra.EstimatedTotal
		}
		if extra.InvoiceID != "" {
			private[metaInvoiceID] = extra.InvoiceID
		}
		if extra.InvoiceURL != "" {
			private[metaInvoiceURL] = extra.InvoiceURL
		}
	}

	patch := &gcal.Event{
		ColorId: statusColor(status),
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: private,
		},
	}
	if _, err := s.svc.Events.Patch(s.calendarID, id, patch).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to update booking event %s: %w", id, err)
	}
	return nil
}

func (s *GoogleStore) FreeBusy(ctx context.Context, start, end time.Time) ([]Interval, error) {
	resp, err := s.svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: start.Format(time.RFC3339),
		TimeMax: end.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: s.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("free/busy query failed: %w", err)
	}

	cal, ok := resp.Calendars[s.calendarID]
	if !ok {
		return nil, nil
	}
	intervals := make([]Interval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		busyStart, err1 := time.Parse(time.RFC3339, period.Start)
		busyEnd, err2 := time.Parse(time.RFC3339, period.End)
		if err1 != nil || err2 != nil {
			continue
		}
		intervals = append(intervals, Interval{Start: busyStart, End: busyEnd})
	}
	return intervals, nil
}

// eventToBooking reconstructs a Booking from a calendar event. Events without
// booking metadata (created by hand in the calendar UI) are treated as
// already approved so they never appear in the pending queue.
func (s *GoogleStore) eventToBooking(event *gcal.Event) transport.Booking {
	booking := transport.Booking{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Status:      transport.StatusApproved,
		Start:       s.parseEventTime(event.Start),
		End:         s.parseEventTime(event.End),
	}

	if event.ExtendedProperties != nil && event.ExtendedProperties.Private != nil {
		private := event.ExtendedProperties.Private
		if status, ok := private[metaStatus]; ok && status != "" {
			booking.Status = transport.Status(status)
		}
		booking.ClientEmail = private[metaClientEmail]
		booking.ClientPhone = private[metaClientPhone]
		booking.EstimatedTotal = private[metaEstimatedTotal]
		booking.InvoiceID = private[metaInvoiceID]
		booking.InvoiceURL = private[metaInvoiceURL]
		booking.MealInfo = private[metaMealInfo]
	}

	return booking
}

func (s *GoogleStore) parseEventTime(edt *gcal.EventDateTime) time.Time {
	if edt == nil {
		return s.now()
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.ParseInLocation("2006-01-02", edt.Date, s.loc); err == nil {
			return t
		}
	}
	return s.now()
}

var _ BookingStore = (*GoogleStore)(nil)
