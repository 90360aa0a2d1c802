// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package chunk

import (
	"fmt"
	"math"

	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/hashcode"
)

// Field declares one serialized struct field: the name its descriptor is
// keyed by and its encoded width in bytes.  Skipped fields get no descriptor
// and don't count towards offsets or the data size.
type Field struct {
	Name string
	Size int
	Skip bool
}

// Descriptor locates a field inside a record.
type Descriptor struct {
	Key    hashcode.Hash16
	Offset uint16
}

// Schema is the field descriptor table for a record type.  Some chunk
// contents write it as a preamble ahead of their records.
type Schema struct {
	descriptors []Descriptor
	dataSize    int
}

// NewSchema computes the descriptor table for fields.  It is meant to be
// called once per record type at package initialization and panics if the
// declared layout doesn't fit the table's 16-bit fields.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{
		descriptors: make([]Descriptor, 0, len(fields)),
	}
	for _, f := range fields {
		if f.Skip {
			continue
		}
		if f.Size < 0 {
			panic(fmt.Errorf("field %q: negative size %d", f.Name, f.Size))
		}
		s.descriptors = append(s.descriptors, Descriptor{
			Key:    hashcode.FromString(f.Name).Truncate(),
			Offset: uint16(s.dataSize),
		})
		s.dataSize += f.Size
	}
	if s.dataSize > math.MaxUint16 || len(s.descriptors) > math.MaxUint16 {
		panic(fmt.Errorf("schema too large: %d fields, %d bytes", len(s.descriptors), s.dataSize))
	}
	return s
}

// Descriptors returns the table in declaration order.  Callers must not
// modify the returned slice.
func (s *Schema) Descriptors() []Descriptor {
	return s.descriptors
}

// HeaderSize is the encoded size of the table.
func (s *Schema) HeaderSize() int {
	return 2 + 2 + 4*len(s.descriptors)
}

// DataSize is the encoded size of one record.
func (s *Schema) DataSize() int {
	return s.dataSize
}

// Encode writes the table: count, record size, then each descriptor.
func (s *Schema) Encode(st *binio.Stream) {
	st.WriteU16(uint16(len(s.descriptors)))
	st.WriteU16(uint16(s.dataSize))
	for _, d := range s.descriptors {
		st.WriteU16(uint16(d.Key))
		st.WriteU16(d.Offset)
	}
}

// Skip steps over an encoded table.  Records are decoded by position, so the
// table is not interpreted.
func (s *Schema) Skip(st *binio.Stream) error {
	_, err := st.ReadN(s.HeaderSize())
	return err
}
