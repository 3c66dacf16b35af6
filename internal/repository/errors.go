package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the addressed todo does not exist.
var ErrNotFound = errors.New("not found")

// StoreError reports a failed record store operation. Err carries the
// store's own description of the failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s todo: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
