package calendar

import (
	"time"

	"servant_backend/internal/bookings/transport"
)

// slotLength is the granularity offered to clients picking a start time.
const slotLength = time.Hour

// BuildDaySlots partitions the business-hours window of the given day into
// fixed-length slots, skipping any slot that has already started. day must be
// midnight in the business timezone. A day entirely in the past yields an
// empty slice.
func BuildDaySlots(day time.Time, openHour, closeHour int, now time.Time) []transport.TimeSlot {
	slots := make([]transport.TimeSlot, 0, closeHour-openHour)
	for hour := openHour; hour < closeHour; hour++ {
		// Wall-clock construction keeps the 9:00 slot at 9:00 on DST
		// transition days, where midnight plus nine hours drifts.
		start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
		if !start.After(now) {
			continue
		}
		end := start.Add(slotLength)
		slots = append(slots, transport.TimeSlot{
			Start: start,
			End:   end,
			Label: start.Format("3:04 PM") + " - " + end.Format("3:04 PM"),
		})
	}
	return slots
}

// FilterBusy drops slots that overlap any busy interval. Overlap is the
// half-open test slotStart < busyEnd && slotEnd > busyStart, so back-to-back
// bookings do not block each other.
func FilterBusy(slots []transport.TimeSlot, busy []Interval) []transport.TimeSlot {
	free := make([]transport.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		conflict := false
		for _, interval := range busy {
			if slot.Start.Before(interval.End) && slot.End.After(interval.Start) {
				conflict = true
				break
			}
		}
		if !conflict {
			free = append(free, slot)
		}
	}
	return free
}
