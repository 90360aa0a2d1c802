// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package binio provides the in-memory byte stream every codec in this
// module reads from and writes to.
//
// A Stream is a seekable buffer with a fixed byte order.  Reads past the end
// fail with ErrUnexpectedEOF; writes past the end grow the buffer, filling
// any gap with zeros.
package binio

import (
	"encoding/binary"
	"math"

	"github.com/bpowers/galaxysave/internal/zero"
)

// Endian selects the byte order of multi-byte values.
type Endian uint8

const (
	BigEndian Endian = iota
	LittleEndian
)

// ByteOrder returns the encoding/binary implementation of e.
func (e Endian) ByteOrder() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (e Endian) String() string {
	if e == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

type Stream struct {
	buf   []byte
	pos   int
	order binary.ByteOrder
	e     Endian
}

// NewReader returns a Stream over buf.  The stream aliases buf; writes
// through it modify buf in place until it has to grow.
func NewReader(buf []byte, e Endian) *Stream {
	return &Stream{
		buf:   buf,
		order: e.ByteOrder(),
		e:     e,
	}
}

// NewWriter returns an empty Stream with room for sizeHint bytes.
func NewWriter(e Endian, sizeHint int) *Stream {
	return &Stream{
		buf:   make([]byte, 0, sizeHint),
		order: e.ByteOrder(),
		e:     e,
	}
}

func (s *Stream) Endian() Endian {
	return s.e
}

func (s *Stream) ByteOrder() binary.ByteOrder {
	return s.order
}

// Pos returns the cursor position.
func (s *Stream) Pos() int {
	return s.pos
}

// Len returns the number of bytes held.
func (s *Stream) Len() int {
	return len(s.buf)
}

// Remaining returns the number of bytes between the cursor and the end.
func (s *Stream) Remaining() int {
	if s.pos >= len(s.buf) {
		return 0
	}
	return len(s.buf) - s.pos
}

// Bytes returns the buffer.  The slice is only valid until the next write.
func (s *Stream) Bytes() []byte {
	return s.buf
}

// Reset empties the stream, keeping its allocation.
func (s *Stream) Reset() {
	s.buf = s.buf[:0]
	s.pos = 0
}

// Seek moves the cursor to the absolute offset off.  Seeking beyond the end
// is allowed; a following write fills the gap.
func (s *Stream) Seek(off int) error {
	if off < 0 {
		return NewFormatError(off, ErrValueRange)
	}
	s.pos = off
	return nil
}

// Skip advances the cursor by n bytes.
func (s *Stream) Skip(n int) error {
	return s.Seek(s.pos + n)
}

// AlignUp advances the cursor to the next multiple of n.
func (s *Stream) AlignUp(n int) {
	if r := s.pos % n; r != 0 {
		s.pos += n - r
	}
}

// At runs fn with the cursor at off and restores the previous position
// afterwards, whether or not fn fails.
func (s *Stream) At(off int, fn func() error) error {
	saved := s.pos
	defer func() {
		s.pos = saved
	}()
	if err := s.Seek(off); err != nil {
		return err
	}
	return fn()
}

// ReadN returns the next n bytes.  The returned slice aliases the stream.
func (s *Stream) ReadN(n int) ([]byte, error) {
	if n < 0 {
		return nil, NewFormatError(s.pos, ErrValueRange)
	}
	if s.Remaining() < n {
		return nil, Mismatch(s.pos, ErrUnexpectedEOF, uint64(n), uint64(s.Remaining()))
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

func (s *Stream) ReadU8() (uint8, error) {
	b, err := s.ReadN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (s *Stream) ReadU16() (uint16, error) {
	b, err := s.ReadN(2)
	if err != nil {
		return 0, err
	}
	return s.order.Uint16(b), nil
}

func (s *Stream) ReadU32() (uint32, error) {
	b, err := s.ReadN(4)
	if err != nil {
		return 0, err
	}
	return s.order.Uint32(b), nil
}

func (s *Stream) ReadU64() (uint64, error) {
	b, err := s.ReadN(8)
	if err != nil {
		return 0, err
	}
	return s.order.Uint64(b), nil
}

func (s *Stream) ReadI8() (int8, error) {
	v, err := s.ReadU8()
	return int8(v), err
}

func (s *Stream) ReadI16() (int16, error) {
	v, err := s.ReadU16()
	return int16(v), err
}

func (s *Stream) ReadI32() (int32, error) {
	v, err := s.ReadU32()
	return int32(v), err
}

func (s *Stream) ReadI64() (int64, error) {
	v, err := s.ReadU64()
	return int64(v), err
}

func (s *Stream) ReadF32() (float32, error) {
	v, err := s.ReadU32()
	return math.Float32frombits(v), err
}

// grow makes the buffer at least end bytes long, zeroing new bytes.
func (s *Stream) grow(end int) {
	if end <= len(s.buf) {
		return
	}
	if end > cap(s.buf) {
		nb := make([]byte, end, max(end, 2*cap(s.buf)))
		copy(nb, s.buf)
		s.buf = nb
		return
	}
	old := len(s.buf)
	s.buf = s.buf[:end]
	// reused capacity may hold bytes from before a Reset
	zero.Bytes(s.buf[old:end])
}

// Write copies p at the cursor.
func (s *Stream) Write(p []byte) {
	s.grow(s.pos + len(p))
	s.pos += copy(s.buf[s.pos:], p)
}

// WriteZeros writes n zero bytes at the cursor.
func (s *Stream) WriteZeros(n int) {
	if n <= 0 {
		return
	}
	s.grow(s.pos + n)
	zero.Bytes(s.buf[s.pos : s.pos+n])
	s.pos += n
}

func (s *Stream) WriteU8(v uint8) {
	s.grow(s.pos + 1)
	s.buf[s.pos] = v
	s.pos++
}

func (s *Stream) WriteU16(v uint16) {
	s.grow(s.pos + 2)
	s.order.PutUint16(s.buf[s.pos:], v)
	s.pos += 2
}

func (s *Stream) WriteU32(v uint32) {
	s.grow(s.pos + 4)
	s.order.PutUint32(s.buf[s.pos:], v)
	s.pos += 4
}

func (s *Stream) WriteU64(v uint64) {
	s.grow(s.pos + 8)
	s.order.PutUint64(s.buf[s.pos:], v)
	s.pos += 8
}

func (s *Stream) WriteI8(v int8) {
	s.WriteU8(uint8(v))
}

func (s *Stream) WriteI16(v int16) {
	s.WriteU16(uint16(v))
}

func (s *Stream) WriteI32(v int32) {
	s.WriteU32(uint32(v))
}

func (s *Stream) WriteI64(v int64) {
	s.WriteU64(uint64(v))
}

func (s *Stream) WriteF32(v float32) {
	s.WriteU32(math.Float32bits(v))
}

// PutU16At overwrites two bytes at off without moving the cursor.
func (s *Stream) PutU16At(off int, v uint16) {
	s.grow(off + 2)
	s.order.PutUint16(s.buf[off:], v)
}

// PutU32At overwrites four bytes at off without moving the cursor.
func (s *Stream) PutU32At(off int, v uint32) {
	s.grow(off + 4)
	s.order.PutUint32(s.buf[off:], v)
}
