package invoice

import (
	"errors"
	"testing"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		wantErr bool
	}{
		{name: "draft to submitted", current: StatusDraft, target: StatusSubmitted},
		{name: "submitted to approved", current: StatusSubmitted, target: StatusApproved},
		{name: "submitted rejected to draft", current: StatusSubmitted, target: StatusDraft},
		{name: "approved to paid", current: StatusApproved, target: StatusPaid},
		{name: "no-op", current: StatusDraft, target: StatusDraft},
		{name: "draft straight to paid", current: StatusDraft, target: StatusPaid, wantErr: true},
		{name: "draft straight to approved", current: StatusDraft, target: StatusApproved, wantErr: true},
		{name: "paid is terminal", current: StatusPaid, target: StatusDraft, wantErr: true},
		{name: "approved cannot revert", current: StatusApproved, target: StatusSubmitted, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransition(tc.current, tc.target)
			if tc.wantErr && !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	lines := []Line{
		{Description: "Rebar", Quantity: 120, UnitPrice: 4.35},
		{Description: "Concrete pump", Quantity: 3.5, UnitPrice: 210},
	}

	subtotal, tax, total := Totals(lines, DefaultTaxRate)
	if subtotal != 1257.00 {
		t.Fatalf("expected subtotal 1257.00, got %v", subtotal)
	}
	if tax != 62.85 {
		t.Fatalf("expected tax 62.85, got %v", tax)
	}
	if total != 1319.85 {
		t.Fatalf("expected total 1319.85, got %v", total)
	}
}

func TestTotalsRoundsToCents(t *testing.T) {
	lines := []Line{{Quantity: 3, UnitPrice: 0.333}}
	subtotal, tax, total := Totals(lines, DefaultTaxRate)
	if subtotal != 1.00 {
		t.Fatalf("expected subtotal 1.00, got %v", subtotal)
	}
	if tax != 0.05 {
		t.Fatalf("expected tax 0.05, got %v", tax)
	}
	if total != 1.05 {
		t.Fatalf("expected total 1.05, got %v", total)
	}
}

func TestTotalsEmpty(t *testing.T) {
	subtotal, tax, total := Totals(nil, DefaultTaxRate)
	if subtotal != 0 || tax != 0 || total != 0 {
		t.Fatalf("expected zeros, got %v/%v/%v", subtotal, tax, total)
	}
}
