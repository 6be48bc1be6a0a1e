package invoice

import (
	"errors"
	"math"
)

// ErrInvalidTransition indicates a status change the workflow does not allow.
var ErrInvalidTransition = errors.New("invoice status transition not allowed")

// ValidateTransition checks a status change against the payables workflow:
// draft -> submitted -> approved -> paid, with submitted rejectable back to
// draft. Paid is terminal.
func ValidateTransition(current, target string) error {
	if current == target {
		return nil
	}
	switch current {
	case StatusDraft:
		if target == StatusSubmitted {
			return nil
		}
	case StatusSubmitted:
		if target == StatusApproved || target == StatusDraft {
			return nil
		}
	case StatusApproved:
		if target == StatusPaid {
			return nil
		}
	}
	return ErrInvalidTransition
}

// Subtotal sums the line amounts, rounded to cents.
func Subtotal(lines []Line) float64 {
	var sum float64
	for _, line := range lines {
		sum += line.Quantity * line.UnitPrice
	}
	return roundCents(sum)
}

// Totals computes subtotal, tax at the given rate, and grand total.
func Totals(lines []Line, taxRate float64) (subtotal, tax, total float64) {
	subtotal = Subtotal(lines)
	tax = roundCents(subtotal * taxRate)
	total = roundCents(subtotal + tax)
	return subtotal, tax, total
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
