// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package bitset provides the 8-bit flag arrays stored in save data.
package bitset

import (
	"encoding/json"
)

// Len is the number of bits in an Array8.
const Len = 8

// Array8 is a set of eight flags packed into a byte, bit 0 first.  In JSON it
// is an array of eight booleans.
type Array8 uint8

// FromBools packs flags.
func FromBools(flags [Len]bool) Array8 {
	var a Array8
	for i, set := range flags {
		if set {
			a.Set(i)
		}
	}
	return a
}

// Set sets the bit at position off to 1.  Out of range positions are
// ignored.
func (a *Array8) Set(off int) {
	if off < 0 || off >= Len {
		return
	}
	*a |= 1 << off
}

// Clear sets the bit at position off to 0.
func (a *Array8) Clear(off int) {
	if off < 0 || off >= Len {
		return
	}
	*a &^= 1 << off
}

// IsSet returns true if the bit at position off is 1.
func (a Array8) IsSet(off int) bool {
	if off < 0 || off >= Len {
		return false
	}
	return a&(1<<off) != 0
}

// Count returns the number of bits set.
func (a Array8) Count() int {
	n := 0
	for i := 0; i < Len; i++ {
		if a.IsSet(i) {
			n++
		}
	}
	return n
}

// Bools unpacks the flags.
func (a Array8) Bools() [Len]bool {
	var flags [Len]bool
	for i := range flags {
		flags[i] = a.IsSet(i)
	}
	return flags
}

func (a Array8) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Bools())
}

func (a *Array8) UnmarshalJSON(data []byte) error {
	var flags [Len]bool
	if err := json.Unmarshal(data, &flags); err != nil {
		return err
	}
	*a = FromBools(flags)
	return nil
}
