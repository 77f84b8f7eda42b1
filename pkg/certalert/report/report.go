// Package report selects certificate records inside the alert window and
// renders them into one consolidated Telegram HTML message.
package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/ukaji3/certalert-go/pkg/certalert/models"
)

// DefaultWindowDays is the default alert window upper bound.
const DefaultWindowDays = 7

// DateLayout renders expiry dates as dd/mm/yyyy.
const DateLayout = "02/01/2006"

// Columns names the spreadsheet columns a record is read from.
type Columns struct {
	Code    string
	Company string
	Days    string
	Expiry  string
}

// DefaultColumns returns the column names of the certificate spreadsheet.
func DefaultColumns() Columns {
	return Columns{
		Code:    "Código",
		Company: "Empresa",
		Days:    "Dias",
		Expiry:  "Validade",
	}
}

// Names returns the column names in record order.
func (c Columns) Names() []string {
	return []string{c.Code, c.Company, c.Days, c.Expiry}
}

// Options configures report building.
type Options struct {
	// WindowDays is the inclusive upper bound of the alert window.
	// Zero means DefaultWindowDays.
	WindowDays int
	// Columns overrides the column names. Empty fields use the defaults.
	Columns Columns
}

func (o Options) window() float64 {
	if o.WindowDays <= 0 {
		return DefaultWindowDays
	}
	return float64(o.WindowDays)
}

// ResolvedColumns returns Columns with empty names replaced by the defaults.
func (o Options) ResolvedColumns() Columns {
	def := DefaultColumns()
	c := o.Columns
	if c.Code == "" {
		c.Code = def.Code
	}
	if c.Company == "" {
		c.Company = def.Company
	}
	if c.Days == "" {
		c.Days = def.Days
	}
	if c.Expiry == "" {
		c.Expiry = def.Expiry
	}
	return c
}

// Build filters rows to those inside the alert window and renders the
// report. Any row lacking one of the configured columns aborts the build;
// no partial report is returned. A report with Count zero has empty Text.
func Build(rows []models.Row, opts Options) (*models.Report, error) {
	cols := opts.ResolvedColumns()
	window := opts.window()

	rep := &models.Report{}
	for _, row := range rows {
		rec, err := extractRecord(row, cols)
		if err != nil {
			return nil, err
		}
		if !InWindow(rec.DaysRemaining, window) {
			continue
		}
		rep.Records = append(rep.Records, rec)
		rep.Lines = append(rep.Lines, FormatLine(rec))
	}

	rep.Count = len(rep.Lines)
	if rep.Count > 0 {
		rep.Text = Header(rep.Count) + strings.Join(rep.Lines, "")
	}
	return rep, nil
}

func extractRecord(row models.Row, cols Columns) (models.Record, error) {
	rec := models.Record{R: row.R}
	code, err := field(row, cols.Code)
	if err != nil {
		return rec, err
	}
	company, err := field(row, cols.Company)
	if err != nil {
		return rec, err
	}
	if rec.DaysRemaining, err = field(row, cols.Days); err != nil {
		return rec, err
	}
	if rec.ExpiryDate, err = field(row, cols.Expiry); err != nil {
		return rec, err
	}
	rec.Code = code.String()
	rec.Company = company.String()
	return rec, nil
}

func field(row models.Row, name string) (models.Cell, error) {
	c, ok := row.Cell(name)
	if !ok {
		return models.Cell{}, &FieldError{Row: row.R, Column: name}
	}
	return c, nil
}

// InWindow reports whether days is a number in (0, window].
func InWindow(days models.Cell, window float64) bool {
	if days.Kind != models.CellNumber {
		return false
	}
	return days.Num > 0 && days.Num <= window
}

// FormatDate renders a date cell as dd/mm/yyyy and any other cell as its
// raw string form.
func FormatDate(c models.Cell) string {
	if c.Kind == models.CellDate {
		return c.Time.Format(DateLayout)
	}
	return c.String()
}

// FormatLine renders one alert line, newline-terminated.
func FormatLine(rec models.Record) string {
	return fmt.Sprintf("<b>- %s</b> (%s) vence em %s dias! [%s]\n",
		html.EscapeString(rec.Company),
		html.EscapeString(rec.Code),
		models.FormatNumber(rec.DaysRemaining.Num),
		html.EscapeString(FormatDate(rec.ExpiryDate)),
	)
}

// Header renders the message header for count alerts, followed by a blank line.
func Header(count int) string {
	return fmt.Sprintf("⚠️ Bom dia! Há <b>%d</b> certificado(s) próximo(s) do vencimento:\n\n", count)
}
