package timetracking

import "time"

type TimeEntry struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	ProjectID  string    `json:"projectId"`
	Date       time.Time `json:"date"`
	Hours      float64   `json:"hours"`
	CostCode   string    `json:"costCode"`
	Notes      string    `json:"notes"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RegisterRow is one employee's payroll line for a pay period.
type RegisterRow struct {
	EmployeeID    string  `json:"employeeId"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	TotalHours    float64 `json:"totalHours"`
	HourlyRate    float64 `json:"hourlyRate"`
	Pay           float64 `json:"pay"`
}

// RegisterSummary totals a register for the period header.
type RegisterSummary struct {
	EmployeeCount int     `json:"employeeCount"`
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	TotalPay      float64 `json:"totalPay"`
}

const (
	// DailyOvertimeThreshold is the hours per day beyond which time is paid
	// at the overtime rate.
	DailyOvertimeThreshold = 8.0

	// OvertimeMultiplier applies to hours past the daily threshold.
	OvertimeMultiplier = 1.5
)
