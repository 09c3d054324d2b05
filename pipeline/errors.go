package pipeline

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/ta/config"
)

var (
	// ErrMissingColumn is wrapped by every *ColumnError.
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidConfiguration is returned by New for a rejected configuration.
	ErrInvalidConfiguration = config.ErrInvalid

	// ErrInvalidIndex reports a duplicate or decreasing timestamp.
	ErrInvalidIndex = errors.New("invalid time index")
)

// ColumnError names an input column an indicator needs but the table lacks.
type ColumnError struct {
	Column    string
	Indicator string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("missing column %q required by %s", e.Column, e.Indicator)
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumn }
