package attendance

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/leave"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/timeevent"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"

	markerWorkStart = "Work Start"
	markerWorkEnd   = "Work End"
)

// DayStatus is the derived attendance of one user for one date.
type DayStatus struct {
	Status       string
	WorkMinutes  int
	BreakMinutes int
}

// StatusForDate derives a user's attendance status and minute totals for
// the given date ("YYYY-MM-DD", UTC midnight-to-midnight) from raw clock
// events and approved leave requests.
//
// It is a pure function: callers pre-filter events and leave to the user
// in question, and no storage is touched. A user with no events and no
// leave yields {Absent, 0, 0}.
//
// An approved leave request overlapping the date wins over any clock
// activity for the status label, but minute totals are still accumulated
// from the events.
func StatusForDate(date string, events []timeevent.TimeEvent, approvedLeave []leave.LeaveRequest) DayStatus {
	dayStart, err := time.Parse("2006-01-02", date)
	if err != nil {
		return DayStatus{Status: StatusAbsent}
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	dayEvents := eventsWithin(events, dayStart, dayEnd)
	workMinutes, breakMinutes := accumulateMinutes(dayEvents)

	status := StatusAbsent
	for _, e := range dayEvents {
		if strings.Contains(e.EventTypeName, markerWorkStart) {
			status = StatusPresent
			break
		}
	}

	// Leave takes precedence over the event-derived label.
	for _, lr := range approvedLeave {
		if lr.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if lr.StartDate.Before(dayEnd) && !lr.EndDate.Before(dayStart) {
			if lr.LeaveTypeName != nil {
				status = *lr.LeaveTypeName
			}
			break
		}
	}

	return DayStatus{
		Status:       status,
		WorkMinutes:  workMinutes,
		BreakMinutes: breakMinutes,
	}
}

func eventsWithin(events []timeevent.TimeEvent, from, to time.Time) []timeevent.TimeEvent {
	var out []timeevent.TimeEvent
	for _, e := range events {
		ts := e.OccurredAt.UTC()
		if !ts.Before(from) && ts.Before(to) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out
}

// accumulateMinutes walks the day's events in order, pairing "Work
// Start"/"Work End" spans and break toggles. Unmatched "Work End" events
// are dropped; spans still open at end of day contribute nothing, so
// overnight or missed-clockout shifts under-count.
func accumulateMinutes(events []timeevent.TimeEvent) (workMinutes, breakMinutes int) {
	var workOpen, breakOpen *time.Time

	for _, e := range events {
		ts := e.OccurredAt.UTC()

		switch {
		case strings.Contains(e.EventTypeName, markerWorkStart):
			// A second Work Start overwrites the first; no multi-shift support.
			t := ts
			workOpen = &t
		case strings.Contains(e.EventTypeName, markerWorkEnd):
			if workOpen != nil {
				workMinutes += roundedMinutes(ts.Sub(*workOpen))
				workOpen = nil
			}
		}

		if e.EventTypeIsBreak {
			if breakOpen == nil {
				t := ts
				breakOpen = &t
			} else {
				breakMinutes += roundedMinutes(ts.Sub(*breakOpen))
				breakOpen = nil
			}
		}
	}

	return workMinutes, breakMinutes
}

func roundedMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}

// Hours converts minutes to display hours, rounded to two decimals.
// Rounding happens only here, never during accumulation.
func Hours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}
