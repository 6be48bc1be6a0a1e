package timetracking

import (
	"sort"
	"time"

	"crewsite/internal/domain/core"
)

// SplitOvertime divides a day's hours at the overtime threshold.
func SplitOvertime(hours, threshold float64) (regular, overtime float64) {
	if hours <= threshold {
		return hours, 0
	}
	return threshold, hours - threshold
}

// BuildRegister groups a period's time entries into per-employee payroll
// rows. Overtime is split per employee per day: hours past the daily
// threshold earn the overtime multiplier. Employees without entries are
// omitted; entries for unknown employees are skipped.
func BuildRegister(entries []TimeEntry, employees []core.Employee) []RegisterRow {
	byEmployee := map[string]core.Employee{}
	for _, emp := range employees {
		byEmployee[emp.ID] = emp
	}

	type dayKey struct {
		employeeID string
		day        string
	}
	dayHours := map[dayKey]float64{}
	for _, entry := range entries {
		if _, ok := byEmployee[entry.EmployeeID]; !ok {
			continue
		}
		key := dayKey{employeeID: entry.EmployeeID, day: entry.Date.Format("2006-01-02")}
		dayHours[key] += entry.Hours
	}

	rows := map[string]*RegisterRow{}
	for key, hours := range dayHours {
		row, ok := rows[key.employeeID]
		if !ok {
			emp := byEmployee[key.employeeID]
			row = &RegisterRow{
				EmployeeID: emp.ID,
				FirstName:  emp.FirstName,
				LastName:   emp.LastName,
				HourlyRate: emp.HourlyRate,
			}
			rows[key.employeeID] = row
		}
		regular, overtime := SplitOvertime(hours, DailyOvertimeThreshold)
		row.RegularHours += regular
		row.OvertimeHours += overtime
	}

	out := make([]RegisterRow, 0, len(rows))
	for _, row := range rows {
		row.TotalHours = row.RegularHours + row.OvertimeHours
		row.Pay = row.RegularHours*row.HourlyRate + row.OvertimeHours*row.HourlyRate*OvertimeMultiplier
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out
}

// Summarize totals register rows for the period header.
func Summarize(rows []RegisterRow) RegisterSummary {
	var summary RegisterSummary
	summary.EmployeeCount = len(rows)
	for _, row := range rows {
		summary.RegularHours += row.RegularHours
		summary.OvertimeHours += row.OvertimeHours
		summary.TotalPay += row.Pay
	}
	return summary
}

// FilterRange returns the entries dated inside the inclusive interval.
func FilterRange(entries []TimeEntry, start, end time.Time) []TimeEntry {
	var out []TimeEntry
	for _, entry := range entries {
		if entry.Date.Before(start) || entry.Date.After(end) {
			continue
		}
		out = append(out, entry)
	}
	return out
}
