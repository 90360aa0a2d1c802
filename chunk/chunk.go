// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package chunk implements the framing shared by every block of save data.
//
// A chunk is a 4-byte magic tag, the content type's identity hash, a 32-bit
// size and the content itself.  The size covers the whole chunk including
// the magic.  On little-endian platforms a chunk is padded to a 4-byte
// boundary; the padding counts towards the size.
//
// Chunks live in containers: a version byte, a count byte, two reserved
// bytes, the chunks, then zero padding up to a fixed per-kind budget.
package chunk

import (
	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/hashcode"
)

const (
	// HeaderSize covers the magic, hash and size fields.
	HeaderSize = 4 + 4 + 4

	alignmentLE = 4
)

// Content is the payload of a chunk.
type Content interface {
	// HashCode is the fixed identity hash of the content type.
	HashCode() hashcode.Hash
	// Magic is the tag selecting the content type inside a container.
	Magic() uint32
	// DecodeContent reads the payload.  size is the chunk size minus
	// HeaderSize, alignment padding included.
	DecodeContent(s *binio.Stream, size int) error
	EncodeContent(s *binio.Stream) error
}

// decodeChunk reads the rest of a chunk whose magic, starting at start, was
// already consumed.
func decodeChunk(s *binio.Stream, start int, c Content) error {
	hashPos := s.Pos()
	h, err := s.ReadU32()
	if err != nil {
		return err
	}
	if expected := c.HashCode(); hashcode.Hash(h) != expected {
		return binio.Mismatch(hashPos, binio.ErrHashMismatch, uint64(expected), uint64(h))
	}

	sizePos := s.Pos()
	size, err := s.ReadU32()
	if err != nil {
		return err
	}
	if size < HeaderSize {
		return binio.Mismatch(sizePos, binio.ErrSizeMismatch, HeaderSize, uint64(size))
	}
	// content decoders size their allocations from this, so it must fit
	if avail := uint64(s.Remaining()); uint64(size)-HeaderSize > avail {
		return binio.Mismatch(sizePos, binio.ErrSizeMismatch, uint64(size), avail+HeaderSize)
	}

	if err := c.DecodeContent(s, int(size)-HeaderSize); err != nil {
		return err
	}
	if s.Endian() == binio.LittleEndian {
		s.AlignUp(alignmentLE)
	}

	if consumed := s.Pos() - start; consumed != int(size) {
		return binio.Mismatch(s.Pos(), binio.ErrSizeMismatch, uint64(size), uint64(consumed))
	}
	return nil
}

// encodeChunk writes everything after the magic, which the caller already
// wrote at start, and backpatches the size.
func encodeChunk(s *binio.Stream, start int, c Content) error {
	s.WriteU32(uint32(c.HashCode()))
	sizePos := s.Pos()
	s.WriteU32(0)

	if err := c.EncodeContent(s); err != nil {
		return err
	}
	if s.Endian() == binio.LittleEndian {
		if r := s.Pos() % alignmentLE; r != 0 {
			s.WriteZeros(alignmentLE - r)
		}
	}

	s.PutU32At(sizePos, uint32(s.Pos()-start))
	return nil
}
