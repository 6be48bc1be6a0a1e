package payperiod

import "time"

// Type selects which boundary algorithm applies.
type Type string

const (
	Weekly      Type = "weekly"
	BiWeekly    Type = "bi-weekly"
	SemiMonthly Type = "semi-monthly"
	Monthly     Type = "monthly"
)

// Types lists every supported cadence.
var Types = []Type{Weekly, BiWeekly, SemiMonthly, Monthly}

// Valid reports whether t is one of the supported cadences.
func (t Type) Valid() bool {
	switch t {
	case Weekly, BiWeekly, SemiMonthly, Monthly:
		return true
	}
	return false
}

// Period is an inclusive calendar interval. It is a value: equality is by
// (Start, End) and nothing is ever persisted.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Label renders "Jan 19 – Feb 1, 2026".
func (p Period) Label() string {
	return p.Start.Format("Jan 2") + " – " + p.End.Format("Jan 2, 2006")
}

// MonthLabel renders the whole-month form "January 2026" used by
// calendar-style navigation.
func (p Period) MonthLabel() string {
	return p.Start.Format("January 2006")
}

// Equal reports value equality of the two periods.
func (p Period) Equal(other Period) bool {
	return p.Start.Equal(other.Start) && p.End.Equal(other.End)
}

// Contains reports whether d falls inside the inclusive interval.
func (p Period) Contains(d time.Time) bool {
	d = dateOnly(d)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Compute returns the period of the given cadence that contains ref.
// anchor is an optional YYYY-MM-DD date aligning weekly and bi-weekly
// periods; a missing or malformed anchor falls back to the Monday of the
// week containing ref. Compute never fails.
func Compute(ref time.Time, t Type, anchor string) Period {
	ref = dateOnly(ref)
	switch t {
	case Weekly:
		return computeWeekly(ref, anchor)
	case BiWeekly:
		return computeBiWeekly(ref, anchor)
	case SemiMonthly:
		return computeSemiMonthly(ref)
	case Monthly:
		return computeMonthly(ref)
	}
	// Unreachable with a valid cadence; fall back to the weekly default
	// rather than panicking in a release build.
	return computeWeekly(ref, anchor)
}

// Next returns the period immediately following p, recomputed from the
// anchor. Navigation always goes back through Compute so that repeated
// stepping cannot drift off the anchor grid.
func Next(p Period, t Type, anchor string) Period {
	return Compute(p.End.AddDate(0, 0, 1), t, anchor)
}

// Previous returns the period immediately preceding p.
func Previous(p Period, t Type, anchor string) Period {
	return Compute(p.Start.AddDate(0, 0, -1), t, anchor)
}

func computeWeekly(ref time.Time, anchor string) Period {
	anchorWeekday := startOfWeekday(ref, anchor)
	start := ref
	for start.Weekday() != anchorWeekday {
		start = start.AddDate(0, 0, -1)
	}
	if start.After(ref) {
		start = start.AddDate(0, 0, -7)
	}
	return Period{Start: start, End: start.AddDate(0, 0, 6)}
}

func computeBiWeekly(ref time.Time, anchor string) Period {
	base, ok := parseAnchor(anchor)
	if !ok {
		base = startOfWeek(ref)
	}
	days := int(ref.Sub(base).Hours() / 24)
	weeksDiff := floorDiv(days, 7)
	periodIndex := floorDiv(weeksDiff, 2)
	start := base.AddDate(0, 0, periodIndex*14)
	if start.After(ref) {
		start = start.AddDate(0, 0, -14)
	}
	return Period{Start: start, End: start.AddDate(0, 0, 13)}
}

func computeSemiMonthly(ref time.Time) Period {
	year, month, day := ref.Date()
	if day <= 15 {
		return Period{
			Start: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
		}
	}
	return Period{
		Start: time.Date(year, month, 16, 0, 0, 0, 0, time.UTC),
		End:   endOfMonth(year, month),
	}
}

func computeMonthly(ref time.Time) Period {
	year, month, _ := ref.Date()
	return Period{
		Start: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		End:   endOfMonth(year, month),
	}
}

// startOfWeekday returns the weekday weekly periods begin on: the anchor's
// weekday when one is configured, otherwise Monday.
func startOfWeekday(ref time.Time, anchor string) time.Weekday {
	if base, ok := parseAnchor(anchor); ok {
		return base.Weekday()
	}
	return time.Monday
}

// startOfWeek returns the Monday of the week containing ref.
func startOfWeek(ref time.Time) time.Time {
	start := ref
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, -1)
	}
	return start
}

// parseAnchor accepts YYYY-MM-DD or RFC3339. A blank or malformed anchor is
// treated as absent, never as an error.
func parseAnchor(anchor string) (time.Time, bool) {
	if anchor == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse("2006-01-02", anchor); err == nil {
		return dateOnly(parsed), true
	}
	if parsed, err := time.Parse(time.RFC3339, anchor); err == nil {
		return dateOnly(parsed), true
	}
	return time.Time{}, false
}

func endOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

func dateOnly(d time.Time) time.Time {
	year, month, day := d.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// floorDiv divides rounding toward negative infinity, so periods tile
// correctly for reference dates before the anchor.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
