package dispatch

// Overlaps reports whether two inclusive date ranges share at least one day.
func Overlaps(a, b Assignment) bool {
	return !a.StartDate.After(b.EndDate) && !b.StartDate.After(a.EndDate)
}

// FindConflicts returns the existing assignments that double-book the
// candidate's employee or equipment. An assignment never conflicts with
// itself, so updates can be validated against the full list.
func FindConflicts(existing []Assignment, candidate Assignment) []Conflict {
	var conflicts []Conflict
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if !Overlaps(other, candidate) {
			continue
		}
		if candidate.EmployeeID != "" && other.EmployeeID == candidate.EmployeeID {
			conflicts = append(conflicts, Conflict{
				AssignmentID: other.ID,
				Resource:     "employee",
				ResourceID:   other.EmployeeID,
			})
		}
		if candidate.EquipmentID != "" && other.EquipmentID == candidate.EquipmentID {
			conflicts = append(conflicts, Conflict{
				AssignmentID: other.ID,
				Resource:     "equipment",
				ResourceID:   other.EquipmentID,
			})
		}
	}
	return conflicts
}
