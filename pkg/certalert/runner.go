package certalert

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/certalert-go/pkg/certalert/models"
	"github.com/ukaji3/certalert-go/pkg/certalert/report"
	"go.uber.org/zap"
)

// Notifier delivers a formatted report message.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// Result summarizes one run.
type Result struct {
	// Rows is the number of data rows scanned.
	Rows int
	// Alerts is the number of records inside the alert window.
	Alerts int
	// Sent reports whether the message was delivered.
	Sent bool
	// Report is the built report, nil when the run failed before building it.
	Report *models.Report
}

// Runner executes load -> build -> send once per call.
type Runner struct {
	opts     Options
	notifier Notifier
	logger   *zap.Logger
}

// NewRunner creates a Runner. A nil logger discards log output.
func NewRunner(opts Options, n Notifier, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{opts: opts, notifier: n, logger: logger}
}

// Run loads the spreadsheet, builds the report and, when at least one
// certificate is inside the alert window, sends it once. Every failure is
// returned as a *RunError.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var res Result
	log := r.logger.With(zap.String("file", r.opts.File))

	table, err := Load(r.opts.File, r.opts.Sheet)
	if err != nil {
		runErr := &RunError{Stage: StageLoad, Err: err}
		if errors.Is(err, ErrFileNotFound) {
			runErr.Hint = "place the spreadsheet next to the program or pass its path as an argument"
		}
		return res, runErr
	}
	res.Rows = len(table.Rows)
	log.Debug("table loaded",
		zap.String("sheet", table.SheetName),
		zap.Int("header_row", table.HeaderRow),
		zap.Strings("header", table.Header),
		zap.Int("rows", res.Rows),
	)

	rep, err := report.Build(table.Rows, r.opts.ReportOptions())
	if err != nil {
		return res, &RunError{
			Stage: StageProcess,
			Err:   err,
			Hint:  columnsHint(r.opts.ReportOptions().ResolvedColumns()),
		}
	}
	res.Report = rep
	res.Alerts = rep.Count

	if rep.Empty() {
		log.Info("no certificates close to expiry, nothing sent", zap.Int("rows", res.Rows))
		return res, nil
	}
	log.Info("certificates close to expiry", zap.Int("alerts", rep.Count), zap.Int("rows", res.Rows))
	for _, rec := range rep.Records {
		log.Debug("certificate in alert window",
			zap.Int("row", rec.R),
			zap.String("code", rec.Code),
			zap.String("company", rec.Company),
			zap.String("days", rec.DaysRemaining.String()),
		)
	}

	if r.opts.DryRun {
		log.Info("dry run, report not sent", zap.String("report", rep.Text))
		return res, nil
	}
	if r.notifier == nil {
		return res, &RunError{Stage: StageDeliver, Err: errors.New("no notifier configured")}
	}

	if err := r.notifier.Send(ctx, rep.Text); err != nil {
		return res, &RunError{Stage: StageDeliver, Err: err}
	}
	res.Sent = true
	log.Info("report sent", zap.Int("alerts", rep.Count))
	return res, nil
}

func columnsHint(cols report.Columns) string {
	names := cols.Names()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return "check that the columns " + strings.Join(quoted, ", ") + " exist in the sheet header"
}
