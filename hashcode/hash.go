// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package hashcode implements the string hash used to tag content types,
// struct fields and key-value records in save data, along with a registry
// mapping hashes back to the labels they were computed from.
//
// The hash processes its input as a series of signed bytes widened to 32
// bits. Starting from zero, each step multiplies the running value by 31 and
// adds the widened byte, wrapping on overflow:
//
//	h = int32(int8(b)) + h*31
//
// Every byte is consumed; there is no NUL terminator.
package hashcode

import (
	"github.com/bpowers/galaxysave/internal/unsafestring"
)

const hashKey = 31

// Hash is a 32-bit hash digest.
type Hash uint32

// Hash16 is a hash digest truncated to its least significant 16 bits.
type Hash16 uint16

// FromBytes hashes buf.
func FromBytes(buf []byte) Hash {
	var h uint32
	for _, b := range buf {
		// 0x80 must widen to 0xFFFFFF80, not 0x00000080
		h = uint32(int32(int8(b))) + h*hashKey
	}
	return Hash(h)
}

// FromString hashes the UTF-8 bytes of s.
func FromString(s string) Hash {
	return FromBytes(unsafestring.ToBytes(s))
}

// Truncate returns the least significant 16 bits of h.
func (h Hash) Truncate() Hash16 {
	return Hash16(h)
}

// Equal16 compares the 16-bit views of h and other.
func (h Hash) Equal16(other Hash16) bool {
	return h.Truncate() == other
}

// Mask returns h with only its low width bits kept.  A width of 0 or 32 or
// more returns h unchanged.
func (h Hash) Mask(width int) Hash {
	if width <= 0 || width >= 32 {
		return h
	}
	return h & (1<<width - 1)
}
