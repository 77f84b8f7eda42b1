package report

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is matched by every FieldError.
var ErrMissingColumn = errors.New("missing column")

// FieldError reports a row that lacks an expected column.
type FieldError struct {
	Row    int
	Column string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("row %d: %s %q", e.Row, ErrMissingColumn, e.Column)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingColumn
}
