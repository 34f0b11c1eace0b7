package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/report"
)

// Export is a rendered CSV blob plus its attachment filename.
type Export struct {
	Filename string
	Content  []byte
}

// ExportDaily renders the daily report as CSV.
func (s *Service) ExportDaily(table report.Table, date string) Export {
	return Export{
		Filename: fmt.Sprintf("attendance-daily-%s.csv", date),
		Content:  renderTableCSV(table, []string{date}, false),
	}
}

// ExportRange renders the range report as CSV, with one status column
// and one hours column per date.
func (s *Service) ExportRange(table report.Table, dates []string, from, to string) Export {
	return Export{
		Filename: fmt.Sprintf("attendance-range-%s-to-%s.csv", from, to),
		Content:  renderTableCSV(table, dates, true),
	}
}

// ExportTooWeekly renders the weekly TOO report as CSV.
func (s *Service) ExportTooWeekly(table report.TooTable, fromWeek, toWeek string) Export {
	var b strings.Builder

	writeLine(&b, append([]string{"Metric"}, table.Columns...))
	for _, row := range table.Rows {
		fields := []string{row.Metric}
		for _, weekEnd := range table.Columns {
			fields = append(fields, row.Values[weekEnd])
		}
		writeLine(&b, fields)
	}

	return Export{
		Filename: fmt.Sprintf("too-weekly-%s-to-%s.csv", fromWeek, toWeek),
		Content:  []byte(b.String()),
	}
}

// renderTableCSV renders rows sorted by campaign (ascending, empty
// campaigns last), separated by a blank line whenever the campaign
// changes, every field quoted, with a trailing TOTAL HOURS row.
func renderTableCSV(table report.Table, dates []string, withHours bool) []byte {
	rows := make([]report.Row, len(table.Rows))
	copy(rows, table.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Campaign, rows[j].Campaign
		if (a == "") != (b == "") {
			return b == ""
		}
		return a < b
	})

	header := []string{"Agent Name", "Team Leader", "Campaign"}
	header = append(header, dates...)
	if withHours {
		for _, d := range dates {
			header = append(header, fmt.Sprintf("Hours(%s)", d))
		}
	}
	header = append(header, "Total Hours")

	var b strings.Builder
	writeLine(&b, header)

	dateTotals := make(map[string]float64, len(dates))
	var grandTotal float64

	prevCampaign := ""
	for i, row := range rows {
		if i > 0 && row.Campaign != prevCampaign {
			b.WriteString("\n")
		}
		prevCampaign = row.Campaign

		fields := []string{row.AgentName, row.TeamLeader, row.Campaign}

		var rowTotal float64
		for _, d := range dates {
			cell := row.Days[d]
			if cell == nil {
				fields = append(fields, "")
				continue
			}
			fields = append(fields, cell.Status)
			dateTotals[d] += cell.WorkHours
			rowTotal += cell.WorkHours
		}
		if withHours {
			for _, d := range dates {
				cell := row.Days[d]
				if cell == nil {
					fields = append(fields, "")
					continue
				}
				fields = append(fields, fmt.Sprintf("%.2f", cell.WorkHours))
			}
		}
		fields = append(fields, fmt.Sprintf("%.2f", rowTotal))
		grandTotal += rowTotal

		writeLine(&b, fields)
	}

	totals := []string{"TOTAL HOURS", "", ""}
	for _, d := range dates {
		totals = append(totals, fmt.Sprintf("%.2f", dateTotals[d]))
	}
	if withHours {
		for _, d := range dates {
			totals = append(totals, fmt.Sprintf("%.2f", dateTotals[d]))
		}
	}
	totals = append(totals, fmt.Sprintf("%.2f", grandTotal))
	writeLine(&b, totals)

	return []byte(b.String())
}

// writeLine writes one CSV record with every field quoted.
func writeLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`"`)
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteString(`"`)
	}
	b.WriteString("\n")
}
