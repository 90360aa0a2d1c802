// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package binio

import (
	"bytes"
)

// NameSize is the width of a fixed NUL-terminated name field.
const NameSize = 12

// ReadName reads a NameSize-byte name.  The name ends at the first NUL,
// which must be present; anything after it is ignored.
func (s *Stream) ReadName() (string, error) {
	start := s.pos
	b, err := s.ReadN(NameSize)
	if err != nil {
		return "", err
	}
	name, _, ok := bytes.Cut(b, []byte{0})
	if !ok {
		return "", NewFormatError(start, ErrMissingNul)
	}
	return string(name), nil
}

// WriteName writes name into a zero-filled NameSize-byte field.  The name
// must leave room for its NUL terminator.
func (s *Stream) WriteName(name string) error {
	if len(name) > NameSize-1 {
		return Mismatch(s.pos, ErrNameTooLong, NameSize-1, uint64(len(name)))
	}
	var field [NameSize]byte
	copy(field[:], name)
	s.Write(field[:])
	return nil
}
