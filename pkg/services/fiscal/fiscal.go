// Package fiscal derives reporting periods from an organization's fiscal
// year start month. All boundaries are whole days in UTC; the end date is
// the last day of the period, inclusive.
package fiscal

import (
	"fmt"
	"time"
)

type Period struct {
	Start time.Time
	End   time.Time
	Label string
}

type Preset string

const (
	PresetCurrentFY       Preset = "current_fy"
	PresetPreviousFY      Preset = "previous_fy"
	PresetCurrentQuarter  Preset = "current_quarter"
	PresetPreviousQuarter Preset = "previous_quarter"
	PresetFiscalYTD       Preset = "fiscal_ytd"
	PresetCalendarYear    Preset = "calendar_year"
	PresetCustom          Preset = "custom"
)

func dateOnly(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// yearStart returns the first day of the fiscal year containing ref.
func yearStart(startMonth int, ref time.Time) time.Time {
	year := ref.Year()
	if int(ref.Month()) < startMonth {
		year--
	}
	return dateOnly(year, time.Month(startMonth), 1)
}

func yearLabel(startMonth int, start time.Time) string {
	if startMonth == 1 {
		return fmt.Sprintf("FY %d", start.Year())
	}
	return fmt.Sprintf("FY %d-%d", start.Year(), start.Year()+1)
}

// YearContaining returns the fiscal year that ref falls in.
func YearContaining(startMonth int, ref time.Time) Period {
	start := yearStart(startMonth, ref)
	return Period{
		Start: start,
		End:   start.AddDate(1, 0, -1),
		Label: yearLabel(startMonth, start),
	}
}

// PreviousYear returns the fiscal year immediately before the one
// containing ref, i.e. exactly twelve months earlier.
func PreviousYear(startMonth int, ref time.Time) Period {
	start := yearStart(startMonth, ref).AddDate(-1, 0, 0)
	return Period{
		Start: start,
		End:   start.AddDate(1, 0, -1),
		Label: yearLabel(startMonth, start),
	}
}

// quarterIndex returns the zero-based quarter of ref within its fiscal year.
func quarterIndex(startMonth int, ref time.Time) int {
	return ((int(ref.Month()) - startMonth + 12) % 12) / 3
}

// QuarterContaining returns the fiscal quarter that ref falls in. Quarters
// are the four three-month blocks starting at the fiscal year start month.
func QuarterContaining(startMonth int, ref time.Time) Period {
	fyStart := yearStart(startMonth, ref)
	q := quarterIndex(startMonth, ref)
	start := fyStart.AddDate(0, q*3, 0)
	return Period{
		Start: start,
		End:   start.AddDate(0, 3, -1),
		Label: fmt.Sprintf("Q%d %s", q+1, yearLabel(startMonth, fyStart)),
	}
}

// PreviousQuarter returns the quarter before the one containing ref. When
// ref is in Q1, that is Q4 of the prior fiscal year.
func PreviousQuarter(startMonth int, ref time.Time) Period {
	current := QuarterContaining(startMonth, ref)
	// Any day inside the preceding quarter works as a reference.
	return QuarterContaining(startMonth, current.Start.AddDate(0, 0, -1))
}

// YearToDate returns the fiscal year start through ref, inclusive.
func YearToDate(startMonth int, ref time.Time) Period {
	start := yearStart(startMonth, ref)
	return Period{
		Start: start,
		End:   dateOnly(ref.Year(), ref.Month(), ref.Day()),
		Label: yearLabel(startMonth, start) + " YTD",
	}
}

// CalendarYear returns Jan 1 through Dec 31 of ref's calendar year.
func CalendarYear(ref time.Time) Period {
	return Period{
		Start: dateOnly(ref.Year(), time.January, 1),
		End:   dateOnly(ref.Year(), time.December, 31),
		Label: fmt.Sprintf("Calendar Year %d", ref.Year()),
	}
}

// FromPreset resolves a named preset to its period. It returns nil for
// "custom" and for unrecognized presets, signalling that the caller must
// supply an explicit range.
func FromPreset(p Preset, startMonth int, ref time.Time) *Period {
	var period Period
	switch p {
	case PresetCurrentFY:
		period = YearContaining(startMonth, ref)
	case PresetPreviousFY:
		period = PreviousYear(startMonth, ref)
	case PresetCurrentQuarter:
		period = QuarterContaining(startMonth, ref)
	case PresetPreviousQuarter:
		period = PreviousQuarter(startMonth, ref)
	case PresetFiscalYTD:
		period = YearToDate(startMonth, ref)
	case PresetCalendarYear:
		period = CalendarYear(ref)
	default:
		return nil
	}
	return &period
}
