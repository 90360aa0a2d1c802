// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package pathtrace implements the variable-length encoding of launch star
// path progress stored per scenario.
//
// The encoding is a 16-bit length followed by a byte stream.  A byte with both
// high bits set switches the current zone to its low six bits.  0xFF ends the
// stream.  Any other byte starts a record for the current zone: the low six
// bits are the path index; if the high bit is set a second byte holds the
// traced fraction in 256ths (0 meaning the whole path), otherwise bit 6 alone
// marks a fully traced path and neither bit an untraced one.
//
// Encoding is lossy: records below Tolerance are dropped, and fractions are
// quantized to 1/256.
package pathtrace

import (
	"math"
	"slices"

	"github.com/bpowers/galaxysave/binio"
)

const (
	zoneEscape = 0b11000000
	zoneMask   = ^uint8(zoneEscape)
	terminator = 0xFF

	flagPartial  = 1 << 7
	flagComplete = 1 << 6
	indexMask    = ^uint8(flagPartial | flagComplete)

	factor = 256

	// MaxZone is the largest encodable zone id; 63 would collide with the
	// terminator.
	MaxZone = 62
	// MaxIndex is the largest encodable path index.
	MaxIndex = 63
)

// Tolerance is the smallest fraction that survives encoding.
const Tolerance = 0.001

// Entry is the progress of one path.
type Entry struct {
	Index      int32   `json:"index"`
	Percentage float32 `json:"percentage"`
}

// ZoneGroup holds the entries belonging to one zone.
type ZoneGroup struct {
	Zone    int32   `json:"zone"`
	Entries []Entry `json:"entries"`
}

// Trace is the path progress of one scenario.
type Trace struct {
	Zones []ZoneGroup `json:"zones"`
}

// Percentage returns the traced fraction of a path.
func (t *Trace) Percentage(zone, index int32) (float32, bool) {
	for _, g := range t.Zones {
		if g.Zone != zone {
			continue
		}
		for _, e := range g.Entries {
			if e.Index == index {
				return e.Percentage, true
			}
		}
	}
	return 0, false
}

// Len returns the number of entries across all zones.
func (t *Trace) Len() int {
	n := 0
	for _, g := range t.Zones {
		n += len(g.Entries)
	}
	return n
}

// Decode reads a trace at the cursor.  Entries are grouped by zone in the
// order zones are first seen; a zone escape that is never followed by a
// record yields no group.
func Decode(s *binio.Stream) (Trace, error) {
	start := s.Pos()
	declared, err := s.ReadU16()
	if err != nil {
		return Trace{}, err
	}

	var (
		t       Trace
		zone    int32
		hasZone bool
		current = -1
	)
	for {
		pos := s.Pos()
		b, err := s.ReadU8()
		if err != nil {
			return Trace{}, err
		}
		if b == terminator {
			break
		}
		if b&zoneEscape == zoneEscape {
			zone, hasZone = int32(b&zoneMask), true
			current = -1
			continue
		}
		if !hasZone {
			return Trace{}, binio.NewFormatError(pos, binio.ErrNoZone)
		}
		e, err := decodeEntry(s, b)
		if err != nil {
			return Trace{}, err
		}
		if current < 0 {
			current = t.group(zone)
		}
		t.Zones[current].Entries = append(t.Zones[current].Entries, e)
	}

	if consumed := s.Pos() - start; consumed != int(declared) {
		return Trace{}, binio.Mismatch(s.Pos(), binio.ErrSizeMismatch, uint64(declared), uint64(consumed))
	}
	return t, nil
}

// group returns the index of zone's group, appending one if needed.
func (t *Trace) group(zone int32) int {
	for i := range t.Zones {
		if t.Zones[i].Zone == zone {
			return i
		}
	}
	t.Zones = append(t.Zones, ZoneGroup{Zone: zone})
	return len(t.Zones) - 1
}

func decodeEntry(s *binio.Stream, b uint8) (Entry, error) {
	e := Entry{Index: int32(b & indexMask)}
	switch {
	case b&flagPartial != 0:
		n, err := s.ReadU8()
		if err != nil {
			return Entry{}, err
		}
		if n == 0 {
			e.Percentage = 1
		} else {
			e.Percentage = float32(n) / factor
		}
	case b&flagComplete != 0:
		e.Percentage = 1
	}
	return e, nil
}

// Encode writes t at the cursor.  Zones are written in ascending order, with
// groups sharing a zone merged; entries below Tolerance are dropped, and a
// zone left without entries is omitted entirely.
//
// A fraction below 1/256 that still meets Tolerance is written without its
// second byte and can't be read back correctly.
func Encode(s *binio.Stream, t Trace) error {
	start := s.Pos()
	if err := validate(start, t); err != nil {
		return err
	}

	zones := make([]int32, 0, len(t.Zones))
	for _, g := range t.Zones {
		if !slices.Contains(zones, g.Zone) {
			zones = append(zones, g.Zone)
		}
	}
	slices.Sort(zones)

	s.WriteU16(0)
	for _, zone := range zones {
		escaped := false
		for _, g := range t.Zones {
			if g.Zone != zone {
				continue
			}
			for _, e := range g.Entries {
				if e.Percentage < Tolerance {
					continue
				}
				if !escaped {
					s.WriteU8(uint8(zone) | zoneEscape)
					escaped = true
				}
				encodeEntry(s, e)
			}
		}
	}
	s.WriteU8(terminator)

	size := s.Pos() - start
	if size > math.MaxUint16 {
		return binio.Mismatch(start, binio.ErrValueRange, math.MaxUint16, uint64(size))
	}
	s.PutU16At(start, uint16(size))
	return nil
}

func encodeEntry(s *binio.Stream, e Entry) {
	s.WriteU8(uint8(e.Index) | flagPartial)
	// 1.0 quantizes to 256, which truncates to the 0 that means "whole path"
	if q := int32(e.Percentage * factor); q > 0 {
		s.WriteU8(uint8(q))
	}
}

func validate(off int, t Trace) error {
	for _, g := range t.Zones {
		if g.Zone < 0 || g.Zone > MaxZone {
			return binio.Mismatch(off, binio.ErrValueRange, MaxZone, uint64(uint32(g.Zone)))
		}
		for _, e := range g.Entries {
			if e.Index < 0 || e.Index > MaxIndex {
				return binio.Mismatch(off, binio.ErrValueRange, MaxIndex, uint64(uint32(e.Index)))
			}
			p := float64(e.Percentage)
			if math.IsNaN(p) || p < 0 || p > 1 {
				return binio.NewFormatError(off, binio.ErrValueRange)
			}
		}
	}
	return nil
}
