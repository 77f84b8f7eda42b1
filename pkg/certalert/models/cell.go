// Package models defines data structures shared by the loader, the report
// builder and the runner.
package models

import (
	"strconv"
	"time"
)

// CellKind tags the kind of value held by a Cell.
type CellKind int

const (
	// CellMissing is an empty cell.
	CellMissing CellKind = iota
	// CellNumber is a numeric cell that is not formatted as a date.
	CellNumber
	// CellDate is a cell holding a date or date-time.
	CellDate
	// CellText is any other non-empty value (strings, booleans, errors).
	CellText
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case CellMissing:
		return "missing"
	case CellNumber:
		return "number"
	case CellDate:
		return "date"
	case CellText:
		return "text"
	default:
		return "unknown"
	}
}

// Cell is a classified spreadsheet value. Only the payload field matching
// Kind is meaningful; Raw always holds the textual form read from the sheet.
type Cell struct {
	Kind CellKind
	Num  float64
	Time time.Time
	Raw  string
}

// Missing returns an empty cell.
func Missing() Cell { return Cell{Kind: CellMissing} }

// Number returns a numeric cell.
func Number(v float64, raw string) Cell {
	if raw == "" {
		raw = FormatNumber(v)
	}
	return Cell{Kind: CellNumber, Num: v, Raw: raw}
}

// Date returns a date cell.
func Date(t time.Time, raw string) Cell {
	if raw == "" {
		raw = t.Format(time.DateOnly)
	}
	return Cell{Kind: CellDate, Time: t, Raw: raw}
}

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: CellText, Raw: s} }

// String returns the cell's display form.
func (c Cell) String() string {
	if c.Kind == CellNumber && c.Raw == "" {
		return FormatNumber(c.Num)
	}
	return c.Raw
}

// FormatNumber renders v with the fewest digits needed, so integral values
// carry no fractional part.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
