// Package schedule holds the fixed daily template and the slot arithmetic
// shared by the availability calculator and the booking allocator.
//
// The template is 09:00-16:00 UTC inclusive at hourly granularity: eight
// bookable start times per day. Slots are numbered slot = hour - 9, so
// 09:00 is slot 0 and 16:00 is slot 7. All calculations run on UTC times;
// callers convert for presentation only.
package schedule

import (
	"time"

	"github.com/Domenick1991/speakerdesk/internal/domain"
)

const (
	OpenHour    = 9
	CloseHour   = 16 // last bookable start hour, inclusive
	SlotsPerDay = CloseHour - OpenHour + 1
)

// SlotIndex maps a timestamp onto its slot number. The timestamp must land
// exactly on a template slot start: minutes, seconds and fraction must be
// zero and the UTC hour must fall inside [OpenHour, CloseHour].
func SlotIndex(t time.Time) (int, error) {
	t = t.UTC()
	if t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return 0, domain.ErrInvalidSlot
	}
	h := t.Hour()
	if h < OpenHour || h > CloseHour {
		return 0, domain.ErrInvalidSlot
	}
	return h - OpenHour, nil
}

// SlotTime is the inverse of SlotIndex for a given calendar day.
func SlotTime(day time.Time, slot int) time.Time {
	day = day.UTC()
	return time.Date(day.Year(), day.Month(), day.Day(), OpenHour+slot, 0, 0, 0, time.UTC)
}

// DayStart truncates a timestamp to UTC midnight.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// OpenSlots expands the template over the closed interval [from, to] and
// subtracts past and taken slots. Slots strictly before now are dropped, so
// on the current day only future hours survive. taken reports whether a
// booking already occupies (day, slot); a nil taken means nothing is booked.
// The result is in ascending chronological order.
func OpenSlots(from, to, now time.Time, taken func(day time.Time, slot int) bool) []time.Time {
	from, to, now = from.UTC(), to.UTC(), now.UTC()

	start := DayStart(from)
	if now.After(from) {
		// days entirely in the past contribute nothing
		start = DayStart(now)
	}

	slots := make([]time.Time, 0)
	for day := start; !day.After(to); day = day.AddDate(0, 0, 1) {
		for s := 0; s < SlotsPerDay; s++ {
			t := SlotTime(day, s)
			if t.Before(from) || t.After(to) {
				continue
			}
			if t.Before(now) {
				continue
			}
			if taken != nil && taken(day, s) {
				continue
			}
			slots = append(slots, t)
		}
	}
	return slots
}
