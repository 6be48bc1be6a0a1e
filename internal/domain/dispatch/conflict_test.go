package dispatch

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Assignment
		b    Assignment
		want bool
	}{
		{
			name: "disjoint",
			a:    Assignment{StartDate: day(1), EndDate: day(5)},
			b:    Assignment{StartDate: day(6), EndDate: day(10)},
			want: false,
		},
		{
			name: "shared boundary day",
			a:    Assignment{StartDate: day(1), EndDate: day(5)},
			b:    Assignment{StartDate: day(5), EndDate: day(10)},
			want: true,
		},
		{
			name: "contained",
			a:    Assignment{StartDate: day(1), EndDate: day(10)},
			b:    Assignment{StartDate: day(3), EndDate: day(4)},
			want: true,
		},
		{
			name: "single day ranges",
			a:    Assignment{StartDate: day(7), EndDate: day(7)},
			b:    Assignment{StartDate: day(7), EndDate: day(7)},
			want: true,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			if got := Overlaps(tc.b, tc.a); got != tc.want {
				t.Fatalf("Overlaps not symmetric: %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFindConflicts(t *testing.T) {
	existing := []Assignment{
		{ID: "a1", EmployeeID: "e1", StartDate: day(1), EndDate: day(5)},
		{ID: "a2", EquipmentID: "q1", StartDate: day(3), EndDate: day(8)},
		{ID: "a3", EmployeeID: "e2", StartDate: day(1), EndDate: day(5)},
	}

	candidate := Assignment{EmployeeID: "e1", EquipmentID: "q1", StartDate: day(4), EndDate: day(6)}
	conflicts := FindConflicts(existing, candidate)
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d: %+v", len(conflicts), conflicts)
	}
	if conflicts[0].Resource != "employee" || conflicts[0].AssignmentID != "a1" {
		t.Fatalf("unexpected first conflict: %+v", conflicts[0])
	}
	if conflicts[1].Resource != "equipment" || conflicts[1].AssignmentID != "a2" {
		t.Fatalf("unexpected second conflict: %+v", conflicts[1])
	}
}

func TestFindConflictsIgnoresSelf(t *testing.T) {
	existing := []Assignment{
		{ID: "a1", EmployeeID: "e1", StartDate: day(1), EndDate: day(5)},
	}
	candidate := Assignment{ID: "a1", EmployeeID: "e1", StartDate: day(2), EndDate: day(6)}
	if conflicts := FindConflicts(existing, candidate); len(conflicts) != 0 {
		t.Fatalf("assignment conflicted with itself: %+v", conflicts)
	}
}

func TestFindConflictsDifferentResources(t *testing.T) {
	existing := []Assignment{
		{ID: "a1", EmployeeID: "e1", StartDate: day(1), EndDate: day(5)},
	}
	candidate := Assignment{EmployeeID: "e9", StartDate: day(1), EndDate: day(5)}
	if conflicts := FindConflicts(existing, candidate); len(conflicts) != 0 {
		t.Fatalf("different employees should not conflict: %+v", conflicts)
	}
}
