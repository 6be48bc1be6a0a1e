package timetracking

import (
	"testing"
	"time"

	"crewsite/internal/domain/core"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

var testCrew = []core.Employee{
	{ID: "e1", FirstName: "Jane", LastName: "Berg", HourlyRate: 40},
	{ID: "e2", FirstName: "Ole", LastName: "Aas", HourlyRate: 30},
}

func TestSplitOvertime(t *testing.T) {
	tests := []struct {
		name         string
		hours        float64
		wantRegular  float64
		wantOvertime float64
	}{
		{name: "under threshold", hours: 6, wantRegular: 6, wantOvertime: 0},
		{name: "at threshold", hours: 8, wantRegular: 8, wantOvertime: 0},
		{name: "over threshold", hours: 10.5, wantRegular: 8, wantOvertime: 2.5},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			regular, overtime := SplitOvertime(tc.hours, DailyOvertimeThreshold)
			if regular != tc.wantRegular || overtime != tc.wantOvertime {
				t.Fatalf("got (%v, %v), want (%v, %v)", regular, overtime, tc.wantRegular, tc.wantOvertime)
			}
		})
	}
}

func TestBuildRegisterSplitsDailyOvertime(t *testing.T) {
	entries := []TimeEntry{
		// Two entries on the same day push e1 over the daily threshold.
		{EmployeeID: "e1", Date: day(2), Hours: 6},
		{EmployeeID: "e1", Date: day(2), Hours: 4},
		{EmployeeID: "e1", Date: day(3), Hours: 8},
		{EmployeeID: "e2", Date: day(2), Hours: 7},
	}

	rows := BuildRegister(entries, testCrew)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// Sorted by last name: Aas before Berg.
	if rows[0].EmployeeID != "e2" || rows[1].EmployeeID != "e1" {
		t.Fatalf("unexpected row order: %s, %s", rows[0].EmployeeID, rows[1].EmployeeID)
	}

	jane := rows[1]
	if jane.RegularHours != 16 || jane.OvertimeHours != 2 {
		t.Fatalf("expected 16 regular / 2 overtime, got %v / %v", jane.RegularHours, jane.OvertimeHours)
	}
	wantPay := 16*40 + 2*40*OvertimeMultiplier
	if jane.Pay != wantPay {
		t.Fatalf("expected pay %v, got %v", wantPay, jane.Pay)
	}

	ole := rows[0]
	if ole.TotalHours != 7 || ole.OvertimeHours != 0 {
		t.Fatalf("expected 7 straight hours, got %v total / %v overtime", ole.TotalHours, ole.OvertimeHours)
	}
}

func TestBuildRegisterSkipsUnknownEmployees(t *testing.T) {
	entries := []TimeEntry{
		{EmployeeID: "ghost", Date: day(2), Hours: 8},
	}
	rows := BuildRegister(entries, testCrew)
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestSummarize(t *testing.T) {
	rows := []RegisterRow{
		{RegularHours: 16, OvertimeHours: 2, Pay: 760},
		{RegularHours: 7, OvertimeHours: 0, Pay: 210},
	}
	summary := Summarize(rows)
	if summary.EmployeeCount != 2 {
		t.Fatalf("expected 2 employees, got %d", summary.EmployeeCount)
	}
	if summary.RegularHours != 23 || summary.OvertimeHours != 2 {
		t.Fatalf("unexpected hour totals: %v / %v", summary.RegularHours, summary.OvertimeHours)
	}
	if summary.TotalPay != 970 {
		t.Fatalf("expected total pay 970, got %v", summary.TotalPay)
	}
}

func TestFilterRange(t *testing.T) {
	entries := []TimeEntry{
		{ID: "a", Date: day(1), Hours: 8},
		{ID: "b", Date: day(15), Hours: 8},
		{ID: "c", Date: day(31), Hours: 8},
	}
	got := FilterRange(entries, day(1), day(15))
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected filtered entries: %+v", got)
	}
}
