package ach

import (
	"errors"
	"fmt"
)

// Structural decode errors. A DecodeError wraps exactly one of these.
var (
	ErrBatchControlWithoutHeader = errors.New("BatchControl without preceding BatchHeader")
	ErrAddendaWithoutEntry       = errors.New("Addenda without preceding EntryDetail in batch")
	ErrBatchWithoutControl       = errors.New("BatchHeader without matching BatchControl")
)

// DecodeError reports a structural violation that aborts the decode.
type DecodeError struct {
	// Line is the 0-based index of the offending line.
	Line int

	// RecordType is the classified type of the offending line.
	RecordType RecordType

	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ach: line index %d (%s): %v", e.Line, e.RecordType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
