package settings

import (
	"encoding/json"
	"sort"
	"time"
)

// KeyLateEscalations is the settings row holding the late-escalation
// de-duplication record.
const KeyLateEscalations = "late_escalations"

// EscalationLog maps a calendar date ("2006-01-02") to the user IDs that
// already received the 30-minute escalation on that date. It is the one
// durable fact of the late-arrival job: an escalation must never repeat
// for the same user and date, even across restarts.
type EscalationLog map[string][]string

// Contains reports whether userID is already recorded under date.
func (l EscalationLog) Contains(date, userID string) bool {
	for _, id := range l[date] {
		if id == userID {
			return true
		}
	}
	return false
}

// Record adds userID under date if not already present.
func (l EscalationLog) Record(date, userID string) {
	if l.Contains(date, userID) {
		return
	}
	l[date] = append(l[date], userID)
}

// Prune drops every date older than retentionDays before today.
func (l EscalationLog) Prune(today time.Time, retentionDays int) {
	cutoff := today.UTC().AddDate(0, 0, -retentionDays).Format("2006-01-02")
	for date := range l {
		if date < cutoff {
			delete(l, date)
		}
	}
}

// Dates returns the recorded dates in ascending order.
func (l EscalationLog) Dates() []string {
	dates := make([]string, 0, len(l))
	for date := range l {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

func (l EscalationLog) MarshalValue() ([]byte, error) {
	return json.Marshal(l)
}

func ParseEscalationLog(raw []byte) (EscalationLog, error) {
	log := EscalationLog{}
	if len(raw) == 0 {
		return log, nil
	}
	if err := json.Unmarshal(raw, &log); err != nil {
		return nil, err
	}
	return log, nil
}
