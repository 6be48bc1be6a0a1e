package dispatch

import "time"

// Assignment books an employee and/or a piece of equipment onto a project
// for an inclusive date range.
type Assignment struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	EmployeeID  string    `json:"employeeId,omitempty"`
	EquipmentID string    `json:"equipmentId,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Shift       string    `json:"shift"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Conflict describes a double-booking: an existing assignment holding the
// same resource over an overlapping date range.
type Conflict struct {
	AssignmentID string `json:"assignmentId"`
	Resource     string `json:"resource"`
	ResourceID   string `json:"resourceId"`
}
