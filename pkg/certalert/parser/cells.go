package parser

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ukaji3/certalert-go/pkg/certalert/models"
	"github.com/xuri/excelize/v2"
)

// ExtractTable reads a sheet and returns its data rows keyed by header name.
// The first non-empty row is the header. Every cell is classified once here
// so callers only branch on models.CellKind.
func ExtractTable(f *excelize.File, sheetName string) (*models.Table, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	table := &models.Table{SheetName: sheetName}
	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return table, nil
	}

	columns := mapColumns(rows[headerIdx])
	table.HeaderRow = headerIdx + 1
	for _, col := range columns {
		table.Header = append(table.Header, col.Name)
	}

	c, err := newClassifier(f, sheetName)
	if err != nil {
		return nil, err
	}

	for rowIdx := headerIdx + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		rowNum := rowIdx + 1 // 1-based row index
		cellMap := make(map[string]models.Cell, len(columns))
		hasData := false

		for _, col := range columns {
			value := ""
			if col.Index < len(row) {
				value = row[col.Index]
			}
			if value == "" {
				cellMap[col.Name] = models.Missing()
				continue
			}
			hasData = true

			cell, err := c.classify(col.Index+1, rowNum, value)
			if err != nil {
				return nil, err
			}
			cellMap[col.Name] = cell
		}

		if hasData {
			table.Rows = append(table.Rows, models.Row{R: rowNum, C: cellMap})
		}
	}

	return table, nil
}

// classifier resolves the kind of a cell from its OOXML type and number format.
type classifier struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	// dateStyles caches isDateStyled results by style index.
	dateStyles map[int]bool
}

func newClassifier(f *excelize.File, sheet string) (*classifier, error) {
	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, fmt.Errorf("read workbook properties: %w", err)
	}
	return &classifier{
		f:          f,
		sheet:      sheet,
		date1904:   props.Date1904 != nil && *props.Date1904,
		dateStyles: make(map[int]bool),
	}, nil
}

func (c *classifier) classify(col, row int, value string) (models.Cell, error) {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Cell{}, err
	}

	cellType, err := c.f.GetCellType(c.sheet, cellName)
	if err != nil {
		return models.Cell{}, err
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeBool, excelize.CellTypeError:
		return models.Text(value), nil
	case excelize.CellTypeDate:
		if t, ok := parseISODate(value); ok {
			return models.Date(t, value), nil
		}
		return models.Text(value), nil
	}

	cell := ClassifyValue(value)
	if cell.Kind != models.CellNumber {
		return cell, nil
	}

	isDate, err := c.isDateStyled(cellName)
	if err != nil {
		return models.Cell{}, err
	}
	if isDate {
		// Only the day is reported; the fraction would round late times into the next day.
		if t, err := excelize.ExcelDateToTime(math.Floor(cell.Num), c.date1904); err == nil {
			return models.Date(t, value), nil
		}
	}
	return cell, nil
}

func (c *classifier) isDateStyled(cellName string) (bool, error) {
	styleID, err := c.f.GetCellStyle(c.sheet, cellName)
	if err != nil {
		return false, err
	}
	if isDate, ok := c.dateStyles[styleID]; ok {
		return isDate, nil
	}

	style, err := c.f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	custom := ""
	if style.CustomNumFmt != nil {
		custom = *style.CustomNumFmt
	}
	isDate := isDateNumFmt(style.NumFmt, custom)
	c.dateStyles[styleID] = isDate
	return isDate, nil
}

// ClassifyValue classifies an untyped textual value.
// Returns a Number cell for integers and decimals, Missing for the empty
// string, or a Text cell holding the original string.
func ClassifyValue(s string) models.Cell {
	if s == "" {
		return models.Missing()
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.Number(float64(i), s)
	}
	// Try float; NaN and Inf spellings stay text
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return models.Number(f, s)
	}
	return models.Text(s)
}

var isoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// parseISODate parses the value of an inline ISO 8601 date cell (t="d").
func parseISODate(s string) (time.Time, bool) {
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
