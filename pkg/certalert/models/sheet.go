package models

// Row is one data row of a sheet keyed by header name.
type Row struct {
	// R is the sheet row index (1-based).
	R int
	// C maps header name to classified cell value.
	C map[string]Cell
}

// Cell returns the value under column name. The second result is false when
// the column does not exist, which is distinct from an empty cell.
func (r Row) Cell(name string) (Cell, bool) {
	c, ok := r.C[name]
	return c, ok
}

// Table is the data region of one sheet.
type Table struct {
	// BookName is the workbook file name (no path).
	BookName string
	// SheetName is the sheet the rows were read from.
	SheetName string
	// HeaderRow is the sheet row index (1-based) holding the column names.
	HeaderRow int
	// Header lists column names in sheet order.
	Header []string
	// Rows contains non-empty data rows in sheet order.
	Rows []Row
}
