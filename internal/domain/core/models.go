package core

import "time"

type Employee struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	Trade      string    `json:"trade"`
	HourlyRate float64   `json:"hourlyRate"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Equipment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Identifier string    `json:"identifier"`
	HourlyCost float64   `json:"hourlyCost"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Vendor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	Client    string    `json:"client"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CompanyProfile is a singleton row holding org-wide settings, including the
// pay period cadence and anchor the calculator reads.
type CompanyProfile struct {
	CompanyName   string    `json:"companyName"`
	PayPeriodType string    `json:"payPeriodType"`
	AnchorDate    string    `json:"anchorDate"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)
