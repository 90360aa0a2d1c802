// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package chunk

import (
	"math"

	"github.com/bpowers/galaxysave/binio"
)

// Variant is one member of a container kind's closed set of content types.
type Variant struct {
	// Name is the key of the content in the JSON form.
	Name  string
	Magic uint32
	New   func() Content
}

// Kind describes a container: its version, the fixed number of bytes it
// occupies, and the content types it may hold.
type Kind struct {
	// Name is the key of the container in the JSON form.
	Name       string
	Version    uint8
	BufferSize int
	Variants   []Variant
}

func (k *Kind) byMagic(magic uint32) (Variant, bool) {
	for _, v := range k.Variants {
		if v.Magic == magic {
			return v, true
		}
	}
	return Variant{}, false
}

func (k *Kind) byName(name string) (Variant, bool) {
	for _, v := range k.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Container is a decoded container: an ordered list of chunk contents.
type Container struct {
	Kind *Kind
	// Version is the version byte read from the data.  Encoding always
	// writes Kind.Version.
	Version uint8
	Chunks  []Content
}

// NewContainer returns an empty container of kind k.
func NewContainer(k *Kind) *Container {
	return &Container{
		Kind:    k,
		Version: k.Version,
	}
}

// Find returns the first chunk tagged magic.
func (c *Container) Find(magic uint32) (Content, bool) {
	for _, content := range c.Chunks {
		if content.Magic() == magic {
			return content, true
		}
	}
	return nil, false
}

// Decode reads a container of kind k at the cursor.  The cursor ends
// BufferSize bytes after where it started; bytes after the last chunk are
// treated as padding.
func (k *Kind) Decode(s *binio.Stream) (*Container, error) {
	start := s.Pos()
	version, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	count, err := s.ReadU8()
	if err != nil {
		return nil, err
	}
	if err := s.Skip(2); err != nil {
		return nil, err
	}

	c := &Container{
		Kind:    k,
		Version: version,
		Chunks:  make([]Content, 0, count),
	}
	for i := 0; i < int(count); i++ {
		chunkStart := s.Pos()
		magic, err := s.ReadU32()
		if err != nil {
			return nil, err
		}
		v, ok := k.byMagic(magic)
		if !ok {
			return nil, &binio.FormatError{Offset: int64(chunkStart), Err: binio.ErrUnknownMagic, Found: uint64(magic)}
		}
		content := v.New()
		if err := decodeChunk(s, chunkStart, content); err != nil {
			return nil, err
		}
		c.Chunks = append(c.Chunks, content)
	}

	end := start + k.BufferSize
	if used := s.Pos() - start; used > k.BufferSize {
		return nil, binio.Mismatch(s.Pos(), binio.ErrBudgetExceeded, uint64(k.BufferSize), uint64(used))
	}
	if err := s.Seek(end); err != nil {
		return nil, err
	}
	return c, nil
}

// Encode writes c at the cursor as a container of kind k, zero padded to
// exactly BufferSize bytes.
func (k *Kind) Encode(s *binio.Stream, c *Container) error {
	start := s.Pos()
	if len(c.Chunks) > math.MaxUint8 {
		return binio.Mismatch(start, binio.ErrValueRange, math.MaxUint8, uint64(len(c.Chunks)))
	}
	s.WriteU8(k.Version)
	s.WriteU8(uint8(len(c.Chunks)))
	s.WriteZeros(2)

	for _, content := range c.Chunks {
		chunkStart := s.Pos()
		v, ok := k.byMagic(content.Magic())
		if !ok {
			return &binio.FormatError{Offset: int64(chunkStart), Err: binio.ErrUnknownMagic, Found: uint64(content.Magic())}
		}
		s.WriteU32(v.Magic)
		if err := encodeChunk(s, chunkStart, content); err != nil {
			return err
		}
	}

	used := s.Pos() - start
	if used > k.BufferSize {
		return binio.Mismatch(start, binio.ErrBudgetExceeded, uint64(k.BufferSize), uint64(used))
	}
	s.WriteZeros(k.BufferSize - used)
	return nil
}
