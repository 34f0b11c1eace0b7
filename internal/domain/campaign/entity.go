package campaign

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TeaBreak is one (start, end) pair of the campaign's ordered tea-break
// windows, stored as "HH:MM" local times.
type TeaBreak struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TeaBreaks is the JSONB list of tea-break windows.
type TeaBreaks []TeaBreak

func (tb TeaBreaks) Value() (driver.Value, error) {
	if len(tb) == 0 {
		return nil, nil
	}
	return json.Marshal(tb)
}

func (tb *TeaBreaks) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan TeaBreaks: invalid type")
	}

	return json.Unmarshal(bytes, tb)
}

// Campaign is a team/work unit. Schedule fields are all nullable and
// independently so; consumers must tolerate any subset being unset.
type Campaign struct {
	ID                 string
	Name               string
	WorkDayStart       *string // "HH:MM" local time-of-day
	WorkDayEnd         *string
	LunchStart         *string
	LunchEnd           *string
	TeaBreaks          TeaBreaks
	LeaveApproverEmail *string
	EscalationEmail    *string
	Timezone           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// WorkStartToday resolves the campaign's work-day start to an instant on
// the given day in the given location. Returns false when no work-day
// start is configured or it does not parse.
func (c Campaign) WorkStartToday(day time.Time, loc *time.Location) (time.Time, bool) {
	if c.WorkDayStart == nil {
		return time.Time{}, false
	}
	t, err := ParseTimeOfDay(*c.WorkDayStart)
	if err != nil {
		return time.Time{}, false
	}
	day = day.In(loc)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), true
}

// ParseTimeOfDay parses an "HH:MM" wall-clock string.
func ParseTimeOfDay(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t, nil
}
