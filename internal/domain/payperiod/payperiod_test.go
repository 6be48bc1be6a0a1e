package payperiod

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestComputeBiWeeklyAnchored(t *testing.T) {
	// Anchor weeks: Jan 5–18, Jan 19–Feb 1.
	got := Compute(date(2026, 1, 20), BiWeekly, "2026-01-05")
	if !got.Start.Equal(date(2026, 1, 19)) {
		t.Fatalf("expected start 2026-01-19, got %v", got.Start)
	}
	if !got.End.Equal(date(2026, 2, 1)) {
		t.Fatalf("expected end 2026-02-01, got %v", got.End)
	}
}

func TestComputeBiWeeklyBeforeAnchor(t *testing.T) {
	got := Compute(date(2026, 1, 2), BiWeekly, "2026-01-05")
	if !got.Start.Equal(date(2025, 12, 22)) {
		t.Fatalf("expected start 2025-12-22, got %v", got.Start)
	}
	if !got.End.Equal(date(2026, 1, 4)) {
		t.Fatalf("expected end 2026-01-04, got %v", got.End)
	}
}

func TestComputeSemiMonthly(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "first half",
			ref:       date(2026, 2, 10),
			wantStart: date(2026, 2, 1),
			wantEnd:   date(2026, 2, 15),
		},
		{
			name:      "second half non-leap february",
			ref:       date(2026, 2, 20),
			wantStart: date(2026, 2, 16),
			wantEnd:   date(2026, 2, 28),
		},
		{
			name:      "second half leap february",
			ref:       date(2028, 2, 20),
			wantStart: date(2028, 2, 16),
			wantEnd:   date(2028, 2, 29),
		},
		{
			name:      "second half thirty-day month",
			ref:       date(2026, 4, 16),
			wantStart: date(2026, 4, 16),
			wantEnd:   date(2026, 4, 30),
		},
		{
			name:      "boundary day fifteen",
			ref:       date(2026, 7, 15),
			wantStart: date(2026, 7, 1),
			wantEnd:   date(2026, 7, 15),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.ref, SemiMonthly, "")
			if !got.Start.Equal(tc.wantStart) || !got.End.Equal(tc.wantEnd) {
				t.Fatalf("expected [%v, %v], got [%v, %v]", tc.wantStart, tc.wantEnd, got.Start, got.End)
			}
		})
	}
}

func TestComputeMonthly(t *testing.T) {
	got := Compute(date(2026, 4, 12), Monthly, "")
	if !got.Start.Equal(date(2026, 4, 1)) || !got.End.Equal(date(2026, 4, 30)) {
		t.Fatalf("expected April bounds, got [%v, %v]", got.Start, got.End)
	}
}

func TestComputeWeeklyDefaultsToMonday(t *testing.T) {
	// 2026-01-22 is a Thursday.
	got := Compute(date(2026, 1, 22), Weekly, "")
	if got.Start.Weekday() != time.Monday {
		t.Fatalf("expected Monday start, got %v", got.Start.Weekday())
	}
	if !got.Start.Equal(date(2026, 1, 19)) || !got.End.Equal(date(2026, 1, 25)) {
		t.Fatalf("unexpected bounds [%v, %v]", got.Start, got.End)
	}
}

func TestComputeWeeklyAnchorWeekday(t *testing.T) {
	// Anchor 2026-01-03 is a Saturday, so weeks run Saturday to Friday.
	got := Compute(date(2026, 1, 22), Weekly, "2026-01-03")
	if got.Start.Weekday() != time.Saturday {
		t.Fatalf("expected Saturday start, got %v", got.Start.Weekday())
	}
	if !got.Start.Equal(date(2026, 1, 17)) || !got.End.Equal(date(2026, 1, 23)) {
		t.Fatalf("unexpected bounds [%v, %v]", got.Start, got.End)
	}
}

func TestComputeMalformedAnchorFallsBack(t *testing.T) {
	clean := Compute(date(2026, 1, 22), Weekly, "")
	garbage := Compute(date(2026, 1, 22), Weekly, "not-a-date")
	if !clean.Equal(garbage) {
		t.Fatalf("malformed anchor should behave as absent: %v vs %v", clean, garbage)
	}
}

func TestContainment(t *testing.T) {
	refs := []time.Time{
		date(2025, 12, 31),
		date(2026, 1, 1),
		date(2026, 2, 28),
		date(2028, 2, 29),
		date(2026, 6, 15),
		date(2026, 6, 16),
		date(2026, 12, 31),
	}
	for _, cadence := range Types {
		for _, ref := range refs {
			p := Compute(ref, cadence, "2026-01-05")
			if !p.Contains(ref) {
				t.Fatalf("%s period [%v, %v] does not contain %v", cadence, p.Start, p.End, ref)
			}
			if p.End.Before(p.Start) {
				t.Fatalf("%s period inverted: [%v, %v]", cadence, p.Start, p.End)
			}
		}
	}
}

func TestPeriodLengths(t *testing.T) {
	ref := date(2026, 3, 10)
	if p := Compute(ref, Weekly, "2026-01-05"); lengthDays(p) != 7 {
		t.Fatalf("weekly period length %d, want 7", lengthDays(p))
	}
	if p := Compute(ref, BiWeekly, "2026-01-05"); lengthDays(p) != 14 {
		t.Fatalf("bi-weekly period length %d, want 14", lengthDays(p))
	}
	if p := Compute(ref, Monthly, ""); lengthDays(p) != 31 {
		t.Fatalf("march monthly length %d, want 31", lengthDays(p))
	}
}

func TestTilingNoGapsOrOverlaps(t *testing.T) {
	for _, cadence := range []Type{Weekly, BiWeekly} {
		p := Compute(date(2026, 3, 10), cadence, "2026-01-05")
		next := Next(p, cadence, "2026-01-05")
		if !next.Start.Equal(p.End.AddDate(0, 0, 1)) {
			t.Fatalf("%s: next start %v, want %v", cadence, next.Start, p.End.AddDate(0, 0, 1))
		}
	}
}

func TestSemiMonthlyNavigationCrossesMonth(t *testing.T) {
	p := Compute(date(2026, 1, 20), SemiMonthly, "")
	next := Next(p, SemiMonthly, "")
	if !next.Start.Equal(date(2026, 2, 1)) || !next.End.Equal(date(2026, 2, 15)) {
		t.Fatalf("expected Feb 1–15, got [%v, %v]", next.Start, next.End)
	}
	back := Previous(next, SemiMonthly, "")
	if !back.Equal(p) {
		t.Fatalf("previous did not return to original: %v vs %v", back, p)
	}
}

func TestNavigationRoundTrip(t *testing.T) {
	for _, cadence := range Types {
		original := Compute(date(2026, 5, 7), cadence, "2026-01-05")
		there := Next(original, cadence, "2026-01-05")
		back := Previous(there, cadence, "2026-01-05")
		if !back.Equal(original) {
			t.Fatalf("%s: round trip drifted from [%v, %v] to [%v, %v]",
				cadence, original.Start, original.End, back.Start, back.End)
		}
	}
}

func TestBiWeeklyNoDriftOverManySteps(t *testing.T) {
	const anchor = "2026-01-05"
	original := Compute(date(2026, 5, 7), BiWeekly, anchor)
	p := original
	for i := 0; i < 50; i++ {
		p = Next(p, BiWeekly, anchor)
	}
	for i := 0; i < 50; i++ {
		p = Previous(p, BiWeekly, anchor)
	}
	if !p.Equal(original) {
		t.Fatalf("drift after 50 steps: [%v, %v] vs [%v, %v]", p.Start, p.End, original.Start, original.End)
	}
	if lengthDays(p) != 14 {
		t.Fatalf("period length %d after navigation, want 14", lengthDays(p))
	}
}

func TestLabels(t *testing.T) {
	p := Period{Start: date(2026, 1, 19), End: date(2026, 2, 1)}
	if got := p.Label(); got != "Jan 19 – Feb 1, 2026" {
		t.Fatalf("unexpected label %q", got)
	}
	monthly := Compute(date(2026, 4, 10), Monthly, "")
	if got := monthly.MonthLabel(); got != "April 2026" {
		t.Fatalf("unexpected month label %q", got)
	}
}

func lengthDays(p Period) int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}
