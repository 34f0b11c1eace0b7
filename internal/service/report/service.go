package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/leave"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/report"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/timeevent"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
	attendanceEngine "github.com/shiftpoint/attendance-backend-go/internal/service/attendance"
)

// Base column labels preceding the per-date columns.
var baseColumns = []string{"Agent Name", "Team Leader", "Campaign"}

type Service struct {
	campaignRepo     campaign.CampaignRepository
	userRepo         user.UserRepository
	timeEventRepo    timeevent.TimeEventRepository
	leaveRequestRepo leave.LeaveRequestRepository

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

func NewService(
	campaignRepo campaign.CampaignRepository,
	userRepo user.UserRepository,
	timeEventRepo timeevent.TimeEventRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
) *Service {
	return &Service{
		campaignRepo:     campaignRepo,
		userRepo:         userRepo,
		timeEventRepo:    timeEventRepo,
		leaveRequestRepo: leaveRequestRepo,
		now:              time.Now,
	}
}

// GetDaily builds the single-date attendance report.
func (s *Service) GetDaily(ctx context.Context, req report.DailyReportRequest) (report.Table, error) {
	if err := req.Validate(); err != nil {
		return report.Table{}, err
	}

	return s.buildTable(ctx, []string{req.Date}, req.CampaignID, false)
}

// GetRange builds the multi-date attendance report. Each cell carries the
// lateMinutes stored on the day's "Work Start" event; it is not
// recomputed here.
func (s *Service) GetRange(ctx context.Context, req report.RangeReportRequest) (report.Table, error) {
	if err := req.Validate(); err != nil {
		return report.Table{}, err
	}

	return s.buildTable(ctx, req.Dates(), req.CampaignID, true)
}

// GetWeeklyTeam wraps the range report for the team dashboard: cells for
// future dates are nulled out and work minutes are totalled only for
// dates up to today (UTC date-string comparison).
func (s *Service) GetWeeklyTeam(ctx context.Context, req report.RangeReportRequest) (report.Table, error) {
	table, err := s.GetRange(ctx, req)
	if err != nil {
		return report.Table{}, err
	}

	today := s.now().UTC().Format("2006-01-02")
	for i := range table.Rows {
		total := 0
		for date, cell := range table.Rows[i].Days {
			if date > today {
				table.Rows[i].Days[date] = nil
				continue
			}
			if cell != nil {
				total += cell.WorkMinutes
			}
		}
		table.Rows[i].TotalWorkMinutes = total
	}

	return table, nil
}

// GetTooWeekly partitions the range into Sunday-ending weeks and pivots
// per-week status tallies into one row per metric.
func (s *Service) GetTooWeekly(ctx context.Context, req report.RangeReportRequest) (report.TooTable, error) {
	if err := req.Validate(); err != nil {
		return report.TooTable{}, err
	}

	dates := req.Dates()
	table, err := s.buildTable(ctx, dates, req.CampaignID, false)
	if err != nil {
		return report.TooTable{}, err
	}

	weeks := partitionWeeks(dates)
	userCount := len(table.Rows)

	metrics := []string{
		"Present", "Sick Leave", "AWOL", "Family Responsibility",
		"Annual Leave", "Work Hours", "FRL %", "AL %", "TOO %",
	}

	rows := make([]report.TooRow, len(metrics))
	for i, m := range metrics {
		rows[i] = report.TooRow{Metric: m, Values: make(map[string]string)}
	}

	var weekEnds []string
	for _, week := range weeks {
		weekEnd := week[len(week)-1].weekEnd
		weekEnds = append(weekEnds, weekEnd)

		var present, sick, awol, frl, annual int
		var workHours float64

		for _, day := range week {
			for _, row := range table.Rows {
				cell := row.Days[day.date]
				if cell == nil {
					continue
				}
				workHours += cell.WorkHours
				switch {
				case cell.Status == attendanceEngine.StatusPresent:
					present++
				case cell.Status == attendanceEngine.StatusAbsent:
					awol++
				case strings.Contains(cell.Status, "Sick"):
					sick++
				case strings.Contains(cell.Status, "Family"):
					frl++
				case strings.Contains(cell.Status, "Annual"):
					annual++
				}
			}
		}

		// Denominator counts every calendar day of the week for every
		// user, weekends and pre-hire days included.
		totalPersonDays := len(week) * userCount

		rows[0].Values[weekEnd] = strconv.Itoa(present)
		rows[1].Values[weekEnd] = strconv.Itoa(sick)
		rows[2].Values[weekEnd] = strconv.Itoa(awol)
		rows[3].Values[weekEnd] = strconv.Itoa(frl)
		rows[4].Values[weekEnd] = strconv.Itoa(annual)
		rows[5].Values[weekEnd] = fmt.Sprintf("%.2f", workHours)
		rows[6].Values[weekEnd] = percent(frl, totalPersonDays)
		rows[7].Values[weekEnd] = percent(annual, totalPersonDays)
		rows[8].Values[weekEnd] = percent(present+sick+annual, totalPersonDays)
	}

	return report.TooTable{Columns: weekEnds, Rows: rows}, nil
}

// buildTable resolves the target campaigns and users, bulk-fetches their
// events and approved leave, and runs the status engine per user per
// date.
func (s *Service) buildTable(ctx context.Context, dates []string, campaignID *string, withLate bool) (report.Table, error) {
	columns := append(append([]string{}, baseColumns...), dates...)

	campaigns, err := s.resolveCampaigns(ctx, campaignID)
	if err != nil {
		return report.Table{}, err
	}
	if len(campaigns) == 0 {
		return report.Table{Columns: columns, Rows: []report.Row{}}, nil
	}

	campaignNames := make(map[string]string, len(campaigns))
	campaignIDs := make([]string, 0, len(campaigns))
	for _, c := range campaigns {
		campaignNames[c.ID] = c.Name
		campaignIDs = append(campaignIDs, c.ID)
	}

	users, err := s.userRepo.ListByCampaigns(ctx, campaignIDs)
	if err != nil {
		return report.Table{}, fmt.Errorf("failed to list campaign users: %w", err)
	}

	userIDs := make([]string, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.ID)
	}

	from, _ := time.Parse("2006-01-02", dates[0])
	lastDay, _ := time.Parse("2006-01-02", dates[len(dates)-1])
	to := lastDay.AddDate(0, 0, 1)

	events, err := s.timeEventRepo.ListForUsers(ctx, userIDs, from, to)
	if err != nil {
		return report.Table{}, fmt.Errorf("failed to list time events: %w", err)
	}

	leaves, err := s.leaveRequestRepo.ListApprovedOverlapping(ctx, userIDs, from, lastDay)
	if err != nil {
		return report.Table{}, fmt.Errorf("failed to list approved leave: %w", err)
	}

	eventsByUser := make(map[string][]timeevent.TimeEvent)
	for _, e := range events {
		eventsByUser[e.UserID] = append(eventsByUser[e.UserID], e)
	}
	leavesByUser := make(map[string][]leave.LeaveRequest)
	for _, lr := range leaves {
		leavesByUser[lr.UserID] = append(leavesByUser[lr.UserID], lr)
	}

	rows := make([]report.Row, 0, len(users))
	for _, u := range users {
		row := report.Row{
			AgentName: u.FullName,
			Days:      make(map[string]*report.DayCell, len(dates)),
		}
		if u.TeamLeaderName != nil {
			row.TeamLeader = *u.TeamLeaderName
		}
		if u.CampaignID != nil {
			row.Campaign = campaignNames[*u.CampaignID]
		}

		for _, date := range dates {
			status := attendanceEngine.StatusForDate(date, eventsByUser[u.ID], leavesByUser[u.ID])
			cell := &report.DayCell{
				Status:       status.Status,
				WorkHours:    attendanceEngine.Hours(status.WorkMinutes),
				WorkMinutes:  status.WorkMinutes,
				BreakMinutes: status.BreakMinutes,
			}
			if withLate {
				cell.LateMinutes = storedLateMinutes(eventsByUser[u.ID], date)
			}
			row.Days[date] = cell
		}

		rows = append(rows, row)
	}

	return report.Table{Columns: columns, Rows: rows}, nil
}

func (s *Service) resolveCampaigns(ctx context.Context, campaignID *string) ([]campaign.Campaign, error) {
	if campaignID == nil {
		campaigns, err := s.campaignRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list campaigns: %w", err)
		}
		return campaigns, nil
	}

	c, err := s.campaignRepo.GetByID(ctx, *campaignID)
	if err != nil {
		return nil, err
	}
	return []campaign.Campaign{c}, nil
}

// storedLateMinutes returns the late_minutes recorded on the date's
// "Work Start" event, if any.
func storedLateMinutes(events []timeevent.TimeEvent, date string) int {
	for _, e := range events {
		if e.OccurredAt.UTC().Format("2006-01-02") != date {
			continue
		}
		if strings.Contains(e.EventTypeName, "Work Start") && e.LateMinutes != nil {
			return *e.LateMinutes
		}
	}
	return 0
}

type weekDay struct {
	date    string
	weekEnd string
}

// partitionWeeks groups consecutive dates into Sunday-ending weeks.
func partitionWeeks(dates []string) [][]weekDay {
	var weeks [][]weekDay
	var current []weekDay

	for _, date := range dates {
		d, _ := time.Parse("2006-01-02", date)
		weekEnd := d.AddDate(0, 0, (7-int(d.Weekday()))%7).Format("2006-01-02")
		current = append(current, weekDay{date: date, weekEnd: weekEnd})
		if d.Weekday() == time.Sunday {
			weeks = append(weeks, current)
			current = nil
		}
	}
	if len(current) > 0 {
		weeks = append(weeks, current)
	}
	return weeks
}

func percent(numerator, denominator int) string {
	if denominator == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(numerator)/float64(denominator)*100)
}
