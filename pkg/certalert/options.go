// Package certalert reads certificate expiration spreadsheets and sends one
// consolidated reminder for the entries about to lapse.
package certalert

import "github.com/ukaji3/certalert-go/pkg/certalert/report"

// Options configures a run.
type Options struct {
	// File is the spreadsheet path.
	File string
	// Sheet selects a sheet by name. Empty selects the first sheet.
	Sheet string
	// WindowDays is the inclusive upper bound of the alert window.
	// Zero means report.DefaultWindowDays.
	WindowDays int
	// Columns overrides the column names.
	Columns report.Columns
	// DryRun builds the report without sending it.
	DryRun bool
}

// ReportOptions returns the report builder options.
func (o Options) ReportOptions() report.Options {
	return report.Options{
		WindowDays: o.WindowDays,
		Columns:    o.Columns,
	}
}
