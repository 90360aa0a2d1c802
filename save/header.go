// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package save

import (
	"errors"
	"fmt"

	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/checksum"
)

const (
	// HeaderSize is the size of the checksum, version, count and size fields.
	HeaderSize = 4 + 4 + 4 + 4
	// DescriptorSize is the size of a user file name plus its pointer.
	DescriptorSize = binio.NameSize + 4
)

var (
	ErrVersion          = errors.New("incompatible version number")
	ErrFileSizeMismatch = errors.New("declared file size does not match the data length")
	ErrFileTooLarge     = errors.New("file size exceeds the maximum")
	ErrTooManyUserFiles = errors.New("user file count exceeds the maximum")
	ErrChecksum         = errors.New("stored checksum does not match the data")
)

// HeaderError reports a save file whose header fails validation.  These are
// kept apart from binio.FormatError so callers can choose to continue past
// them.
type HeaderError struct {
	Err      error
	Expected uint64
	Found    uint64
}

func (e *HeaderError) Error() string {
	if errors.Is(e.Err, ErrChecksum) {
		return fmt.Sprintf("%s (expected 0x%08X, found 0x%08X)", e.Err, e.Expected, e.Found)
	}
	return fmt.Sprintf("%s (expected %d, found %d)", e.Err, e.Expected, e.Found)
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}

// Header is the first HeaderSize bytes of a save file.
type Header struct {
	Checksum      checksum.Checksum
	Version       uint32
	UserFileCount uint32
	FileSize      uint32
}

// ReadHeader reads the header at the start of buf.
func ReadHeader(buf []byte, e binio.Endian) (Header, error) {
	s := binio.NewReader(buf, e)
	var (
		h   Header
		sum uint32
		err error
	)
	if sum, err = s.ReadU32(); err != nil {
		return Header{}, err
	}
	h.Checksum = checksum.Checksum(sum)
	if h.Version, err = s.ReadU32(); err != nil {
		return Header{}, err
	}
	if h.UserFileCount, err = s.ReadU32(); err != nil {
		return Header{}, err
	}
	if h.FileSize, err = s.ReadU32(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Validate checks h against the format's limits and the length of the data
// it was read from.  The checksum is not examined.
func (f *Format) Validate(h Header, buf []byte) error {
	if h.Version != f.Version {
		return &HeaderError{Err: ErrVersion, Expected: uint64(f.Version), Found: uint64(h.Version)}
	}
	if int(h.FileSize) != len(buf) {
		return &HeaderError{Err: ErrFileSizeMismatch, Expected: uint64(h.FileSize), Found: uint64(len(buf))}
	}
	if h.FileSize > f.MaxFileSize {
		return &HeaderError{Err: ErrFileTooLarge, Expected: uint64(f.MaxFileSize), Found: uint64(h.FileSize)}
	}
	if h.UserFileCount > f.MaxUserFiles {
		return &HeaderError{Err: ErrTooManyUserFiles, Expected: uint64(f.MaxUserFiles), Found: uint64(h.UserFileCount)}
	}
	return nil
}

// Check validates the header of buf and compares its stored checksum with
// one computed over everything after the checksum field.
func (f *Format) Check(buf []byte, e binio.Endian) error {
	h, err := ReadHeader(buf, e)
	if err != nil {
		return err
	}
	if err := f.Validate(h, buf); err != nil {
		return err
	}
	if sum := checksum.FromBytes(buf[4:], e.ByteOrder()); sum != h.Checksum {
		return &HeaderError{Err: ErrChecksum, Expected: uint64(h.Checksum), Found: uint64(sum)}
	}
	return nil
}
