package sitereport

import "time"

type SiteReport struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"projectId"`
	Date          time.Time `json:"date"`
	Weather       string    `json:"weather"`
	CrewCount     int       `json:"crewCount"`
	WorkCompleted string    `json:"workCompleted"`
	Delays        string    `json:"delays"`
	Visitors      string    `json:"visitors"`
	SubmittedBy   string    `json:"submittedBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FLHA is a field-level hazard assessment filled in before a task starts.
type FLHA struct {
	ID         string       `json:"id"`
	ProjectID  string       `json:"projectId"`
	EmployeeID string       `json:"employeeId"`
	Date       time.Time    `json:"date"`
	Task       string       `json:"task"`
	Hazards    []HazardItem `json:"hazards"`
	Reviewed   bool         `json:"reviewed"`
	CreatedAt  time.Time    `json:"createdAt"`
}

type HazardItem struct {
	Hazard   string `json:"hazard"`
	Severity string `json:"severity"`
	Control  string `json:"control"`
}
