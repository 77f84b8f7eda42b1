package models

// Record is one certificate expiration entry.
type Record struct {
	// R is the sheet row the record came from (1-based).
	R             int
	Code          string
	Company       string
	DaysRemaining Cell
	ExpiryDate    Cell
}

// Report is the consolidated alert summary for one run.
type Report struct {
	// Lines holds one formatted line per in-alert record, in row order.
	Lines []string
	// Records holds the in-alert records matching Lines.
	Records []Record
	// Count is the number of in-alert records.
	Count int
	// Text is the full message, or empty when Count is zero.
	Text string
}

// Empty reports whether there is nothing to send.
func (r *Report) Empty() bool {
	return r == nil || r.Count == 0
}
