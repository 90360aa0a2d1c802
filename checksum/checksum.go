// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package checksum implements the integrity check stored at the start of a
// save file.
//
// The input is processed as a series of unsigned 16-bit words in the file's
// byte order; a trailing odd byte is ignored.  Two wrapping 16-bit
// accumulators track the sum of the words and the sum of their bitwise
// complements.  The result packs the first into the high half and the second
// into the low half.
package checksum

import (
	"encoding/binary"
	"fmt"
)

// Checksum is a packed (sum, inverse sum) pair.
type Checksum uint32

// FromBytes computes the checksum of buf, reading words with order.
func FromBytes(buf []byte, order binary.ByteOrder) Checksum {
	var sum, invSum uint16
	for len(buf) >= 2 {
		term := order.Uint16(buf)
		sum += term
		invSum += ^term
		buf = buf[2:]
	}
	return Checksum(uint32(sum)<<16 | uint32(invSum))
}

// BigEndian computes the checksum of buf for Wii and Shield TV files.
func BigEndian(buf []byte) Checksum {
	return FromBytes(buf, binary.BigEndian)
}

// LittleEndian computes the checksum of buf for Switch files.
func LittleEndian(buf []byte) Checksum {
	return FromBytes(buf, binary.LittleEndian)
}

// Sum returns the high half: the wrapping sum of the words.
func (c Checksum) Sum() uint16 {
	return uint16(c >> 16)
}

// InvSum returns the low half: the wrapping sum of the words' complements.
func (c Checksum) InvSum() uint16 {
	return uint16(c)
}

func (c Checksum) String() string {
	return fmt.Sprintf("0x%08X", uint32(c))
}
