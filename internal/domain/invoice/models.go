package invoice

import "time"

type Invoice struct {
	ID        string     `json:"id"`
	VendorID  string     `json:"vendorId"`
	ProjectID string     `json:"projectId,omitempty"`
	Number    string     `json:"number"`
	Date      time.Time  `json:"date"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Lines     []Line     `json:"lines"`
	Subtotal  float64    `json:"subtotal"`
	Tax       float64    `json:"tax"`
	Total     float64    `json:"total"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Line struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusPaid      = "paid"
)

// DefaultTaxRate is the GST applied when computing totals.
const DefaultTaxRate = 0.05
