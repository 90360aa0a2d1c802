// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package binio

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF   = errors.New("unexpected end of data")
	ErrUnknownMagic    = errors.New("unknown chunk magic")
	ErrHashMismatch    = errors.New("chunk hash does not match its content type")
	ErrSizeMismatch    = errors.New("consumed size does not match the declared size")
	ErrBudgetExceeded  = errors.New("encoded data exceeds the buffer budget")
	ErrUnknownUserFile = errors.New("unrecognized user file name")
	ErrMissingNul      = errors.New("fixed string is missing its NUL terminator")
	ErrNameTooLong     = errors.New("name does not fit in its fixed-size field")
	ErrNoZone          = errors.New("record appears before any zone escape")
	ErrValueRange      = errors.New("value out of representable range")
)

// FormatError reports structurally invalid data at a byte offset.  When the
// failure is a mismatch, Expected and Found carry the two values.
type FormatError struct {
	Offset   int64
	Err      error
	Expected uint64
	Found    uint64
}

// NewFormatError returns a FormatError without mismatch values.
func NewFormatError(off int, err error) *FormatError {
	return &FormatError{Offset: int64(off), Err: err}
}

// Mismatch returns a FormatError carrying the expected and found values.
func Mismatch(off int, err error, expected, found uint64) *FormatError {
	return &FormatError{Offset: int64(off), Err: err, Expected: expected, Found: found}
}

func (e *FormatError) Error() string {
	if e.Expected == 0 && e.Found == 0 {
		return fmt.Sprintf("at offset 0x%X: %s", e.Offset, e.Err)
	}
	return fmt.Sprintf("at offset 0x%X: %s (expected 0x%X, found 0x%X)", e.Offset, e.Err, e.Expected, e.Found)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
