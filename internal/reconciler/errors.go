package reconciler

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when the live and goal maps differ in
// shape. No call is issued in that case.
var ErrDimensionMismatch = errors.New("current and goal maps have different dimensions")

// CellError ties a failure to the map position being reconciled.
type CellError struct {
	Row    int
	Column int
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell (%d, %d): %v", e.Row, e.Column, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
