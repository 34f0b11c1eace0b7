package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/report"
)

func dailyRow(agent, leader, campaign, date, status string, hours float64) report.Row {
	return report.Row{
		AgentName:  agent,
		TeamLeader: leader,
		Campaign:   campaign,
		Days: map[string]*report.DayCell{
			date: {Status: status, WorkHours: hours},
		},
	}
}

func TestExportDaily_Layout(t *testing.T) {
	t.Parallel()

	table := report.Table{
		Columns: []string{"Agent Name", "Team Leader", "Campaign", "2026-03-02"},
		Rows: []report.Row{
			dailyRow("Ada", "Grace", "Sales", "2026-03-02", "Present", 8),
			dailyRow("Noor", "", "", "2026-03-02", "Absent", 0),
			dailyRow("Alan", "Grace", "Billing", "2026-03-02", "Present", 7.5),
		},
	}

	svc := &Service{}
	export := svc.ExportDaily(table, "2026-03-02")

	assert.Equal(t, "attendance-daily-2026-03-02.csv", export.Filename)

	lines := strings.Split(strings.TrimRight(string(export.Content), "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Equal(t, `"Agent Name","Team Leader","Campaign","2026-03-02","Total Hours"`, lines[0])

	// Sorted by campaign ascending, empty campaign last, with a blank
	// separator line between groups.
	assert.Equal(t, `"Alan","Grace","Billing","Present","7.50"`, lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, `"Ada","Grace","Sales","Present","8.00"`, lines[3])
	assert.Equal(t, "", lines[4])
	assert.Equal(t, `"Noor","","","Absent","0.00"`, lines[5])
	assert.Equal(t, `"TOTAL HOURS","","","15.50","15.50"`, lines[6])
}

func TestExportDaily_EveryFieldQuoted(t *testing.T) {
	t.Parallel()

	table := report.Table{
		Rows: []report.Row{
			dailyRow(`Ada "The Analyst" Lovelace`, "Grace", "Sales", "2026-03-02", "Present", 2),
		},
	}

	export := (&Service{}).ExportDaily(table, "2026-03-02")
	lines := strings.Split(strings.TrimRight(string(export.Content), "\n"), "\n")

	assert.Equal(t, `"Ada ""The Analyst"" Lovelace","Grace","Sales","Present","2.00"`, lines[1])
	for _, line := range lines {
		if line == "" {
			continue
		}
		assert.True(t, strings.HasPrefix(line, `"`), line)
		assert.True(t, strings.HasSuffix(line, `"`), line)
	}
}

func TestExportRange_StatusAndHourColumns(t *testing.T) {
	t.Parallel()

	dates := []string{"2026-03-02", "2026-03-03"}
	table := report.Table{
		Rows: []report.Row{
			{
				AgentName:  "Ada",
				TeamLeader: "Grace",
				Campaign:   "Sales",
				Days: map[string]*report.DayCell{
					"2026-03-02": {Status: "Present", WorkHours: 8},
					"2026-03-03": {Status: "Sick Leave", WorkHours: 0},
				},
			},
		},
	}

	export := (&Service{}).ExportRange(table, dates, "2026-03-02", "2026-03-03")

	assert.Equal(t, "attendance-range-2026-03-02-to-2026-03-03.csv", export.Filename)

	lines := strings.Split(strings.TrimRight(string(export.Content), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		`"Agent Name","Team Leader","Campaign","2026-03-02","2026-03-03","Hours(2026-03-02)","Hours(2026-03-03)","Total Hours"`,
		lines[0])
	assert.Equal(t, `"Ada","Grace","Sales","Present","Sick Leave","8.00","0.00","8.00"`, lines[1])
	assert.Equal(t, `"TOTAL HOURS","","","8.00","0.00","8.00","0.00","8.00"`, lines[2])
}

func TestExportRange_MissingCellsLeftBlank(t *testing.T) {
	t.Parallel()

	dates := []string{"2026-03-02", "2026-03-03"}
	table := report.Table{
		Rows: []report.Row{
			{
				AgentName: "Ada",
				Campaign:  "Sales",
				Days: map[string]*report.DayCell{
					"2026-03-02": {Status: "Present", WorkHours: 4},
				},
			},
		},
	}

	export := (&Service{}).ExportRange(table, dates, "2026-03-02", "2026-03-03")
	lines := strings.Split(strings.TrimRight(string(export.Content), "\n"), "\n")

	assert.Equal(t, `"Ada","","Sales","Present","","4.00","","4.00"`, lines[1])
}

func TestExportTooWeekly(t *testing.T) {
	t.Parallel()

	table := report.TooTable{
		Columns: []string{"2026-01-11", "2026-01-18"},
		Rows: []report.TooRow{
			{Metric: "Present", Values: map[string]string{"2026-01-11": "5", "2026-01-18": "5"}},
			{Metric: "TOO %", Values: map[string]string{"2026-01-11": "35.71", "2026-01-18": "35.71"}},
		},
	}

	export := (&Service{}).ExportTooWeekly(table, "2026-01-11", "2026-01-18")

	assert.Equal(t, "too-weekly-2026-01-11-to-2026-01-18.csv", export.Filename)

	lines := strings.Split(strings.TrimRight(string(export.Content), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"Metric","2026-01-11","2026-01-18"`, lines[0])
	assert.Equal(t, `"Present","5","5"`, lines[1])
	assert.Equal(t, `"TOO %","35.71","35.71"`, lines[2])
}
