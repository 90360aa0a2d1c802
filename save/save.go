// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package save implements the outermost layer of a save file: a header, a
// directory of named user files, and the containers those entries point at.
//
// The header holds a checksum of everything after it, a version, the number
// of user files and the total file size.  Each directory entry is a
// NUL-terminated 12-byte name and an absolute offset; the name alone decides
// which container kind lives at the offset.
package save

import (
	"errors"
	"fmt"

	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/checksum"
	"github.com/bpowers/galaxysave/chunk"
)

// ErrKindMismatch is returned when encoding a user file whose container kind
// is not the one its name selects.
var ErrKindMismatch = errors.New("user file name does not select its container kind")

// Format describes one game's save file layout.
type Format struct {
	Name         string
	Version      uint32
	MaxUserFiles uint32
	MaxFileSize  uint32
	// Kinds lists every container kind the format uses.
	Kinds []*chunk.Kind
	// Route returns the container kind stored under a user file name, or
	// nil if the name is not recognized.
	Route func(name string) *chunk.Kind
}

func (f *Format) kindByName(name string) *chunk.Kind {
	for _, k := range f.Kinds {
		if k.Name == name {
			return k
		}
	}
	return nil
}

// UserFile is one directory entry and the container it points at.
type UserFile struct {
	Name string
	Data *chunk.Container
}

// File is a decoded save file.
type File struct {
	Format    *Format
	UserFiles []UserFile
}

// Lookup returns the container stored under name.
func (f *File) Lookup(name string) (*chunk.Container, bool) {
	for _, uf := range f.UserFiles {
		if uf.Name == name {
			return uf.Data, true
		}
	}
	return nil, false
}

type decodeConfig struct {
	skipValidation bool
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

// SkipValidation makes Decode ignore header validation failures.  Structural
// errors are still reported.
func SkipValidation() DecodeOption {
	return func(c *decodeConfig) {
		c.skipValidation = true
	}
}

// Decode parses buf.  The header is validated (but the checksum is not; see
// Check) unless SkipValidation is given.
func (f *Format) Decode(buf []byte, e binio.Endian, opts ...DecodeOption) (*File, error) {
	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	h, err := ReadHeader(buf, e)
	if err != nil {
		return nil, err
	}
	if !cfg.skipValidation {
		if err := f.Validate(h, buf); err != nil {
			return nil, err
		}
	}

	s := binio.NewReader(buf, e)
	if err := s.Seek(HeaderSize); err != nil {
		return nil, err
	}
	file := &File{
		Format:    f,
		UserFiles: make([]UserFile, 0, min(h.UserFileCount, f.MaxUserFiles)),
	}
	for i := uint32(0); i < h.UserFileCount; i++ {
		namePos := s.Pos()
		name, err := s.ReadName()
		if err != nil {
			return nil, err
		}
		kind := f.Route(name)
		if kind == nil {
			return nil, binio.NewFormatError(namePos, fmt.Errorf("%w: %q", binio.ErrUnknownUserFile, name))
		}
		var c *chunk.Container
		err = s.ReadPointer32(func(int) error {
			var err error
			c, err = kind.Decode(s)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		file.UserFiles = append(file.UserFiles, UserFile{Name: name, Data: c})
	}
	return file, nil
}

// Encode serializes file.  Containers are laid out back to back after the
// directory, in directory order, and the checksum is written last.
func (f *Format) Encode(file *File, e binio.Endian) ([]byte, error) {
	n := len(file.UserFiles)
	if uint64(n) > uint64(f.MaxUserFiles) {
		return nil, &HeaderError{Err: ErrTooManyUserFiles, Expected: uint64(f.MaxUserFiles), Found: uint64(n)}
	}

	sizeHint := HeaderSize + n*DescriptorSize
	for _, uf := range file.UserFiles {
		if uf.Data != nil && uf.Data.Kind != nil {
			sizeHint += uf.Data.Kind.BufferSize
		}
	}
	s := binio.NewWriter(e, sizeHint)
	s.WriteZeros(HeaderSize)

	dataOff := HeaderSize + n*DescriptorSize
	for _, uf := range file.UserFiles {
		namePos := s.Pos()
		kind := f.Route(uf.Name)
		if kind == nil {
			return nil, binio.NewFormatError(namePos, fmt.Errorf("%w: %q", binio.ErrUnknownUserFile, uf.Name))
		}
		if uf.Data == nil || uf.Data.Kind != kind {
			return nil, fmt.Errorf("%s: %w", uf.Name, ErrKindMismatch)
		}
		if err := s.WriteName(uf.Name); err != nil {
			return nil, err
		}
		err := s.WritePointer32(dataOff, func() error {
			return kind.Encode(s, uf.Data)
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", uf.Name, err)
		}
		dataOff = s.Len()
	}

	size := s.Len()
	if uint64(size) > uint64(f.MaxFileSize) {
		return nil, &HeaderError{Err: ErrFileTooLarge, Expected: uint64(f.MaxFileSize), Found: uint64(size)}
	}
	s.PutU32At(4, f.Version)
	s.PutU32At(8, uint32(n))
	s.PutU32At(12, uint32(size))

	buf := s.Bytes()
	s.PutU32At(0, uint32(checksum.FromBytes(buf[4:], e.ByteOrder())))
	return s.Bytes(), nil
}
