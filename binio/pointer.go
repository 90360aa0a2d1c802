// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package binio

import (
	"math"
)

// ReadPointer32 reads a 32-bit offset from the start of the buffer and runs
// fn with the cursor there.  The cursor is left just past the offset field.
func (s *Stream) ReadPointer32(fn func(off int) error) error {
	v, err := s.ReadU32()
	if err != nil {
		return err
	}
	off := int(v)
	return s.At(off, func() error {
		return fn(off)
	})
}

// WritePointer32 writes off as a 32-bit offset and runs fn with the cursor
// at off.  The cursor is left just past the offset field.
func (s *Stream) WritePointer32(off int, fn func() error) error {
	if off < 0 || off > math.MaxUint32 {
		return NewFormatError(s.pos, ErrValueRange)
	}
	s.WriteU32(uint32(off))
	return s.At(off, fn)
}
