package report

import (
	"time"

	"github.com/shiftpoint/attendance-backend-go/internal/pkg/validator"
)

// DayCell is one user's derived attendance for one date.
type DayCell struct {
	Status       string  `json:"status"`
	WorkHours    float64 `json:"work_hours"`
	WorkMinutes  int     `json:"work_minutes"`
	BreakMinutes int     `json:"break_minutes"`
	LateMinutes  int     `json:"late_minutes,omitempty"`
}

// Row is one user's report line. Days is keyed by "YYYY-MM-DD"; a nil
// cell means the date is in the future (weekly team view only).
type Row struct {
	AgentName  string              `json:"agent_name"`
	TeamLeader string              `json:"team_leader"`
	Campaign   string              `json:"campaign"`
	Days       map[string]*DayCell `json:"days"`

	// TotalWorkMinutes is populated by the weekly team view only and
	// counts minutes for dates up to today.
	TotalWorkMinutes int `json:"total_work_minutes,omitempty"`
}

// Table is the tabular report shape shared by the daily and range
// reports: one column label per date, one row per user.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// TooRow is one pivoted metric line of the weekly TOO report: a label
// plus one value per week-ending Sunday.
type TooRow struct {
	Metric string            `json:"metric"`
	Values map[string]string `json:"values"`
}

// TooTable is the weekly TOO report. Columns holds the week-ending
// dates in ascending order.
type TooTable struct {
	Columns []string `json:"columns"`
	Rows    []TooRow `json:"rows"`
}

type DailyReportRequest struct {
	Date       string  `json:"date"`
	CampaignID *string `json:"campaign_id,omitempty"`
}

func (r *DailyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RangeReportRequest struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	CampaignID *string `json:"campaign_id,omitempty"`
}

func (r *RangeReportRequest) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(r.From)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}

	to, toOK := validator.IsValidDate(r.To)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}

	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates returns every calendar date of [From, To], inclusive.
func (r *RangeReportRequest) Dates() []string {
	from, _ := time.Parse("2006-01-02", r.From)
	to, _ := time.Parse("2006-01-02", r.To)

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}
