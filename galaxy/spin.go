// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package galaxy

import (
	"fmt"
	"math"

	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/hashcode"
	"github.com/bpowers/galaxysave/pathtrace"
)

// SpinDriverGalaxy holds the launch star paths of one galaxy, one trace per
// scenario.
type SpinDriverGalaxy struct {
	GalaxyName hashcode.Hash16   `json:"galaxy_name"`
	Scenarios  []pathtrace.Trace `json:"scenario"`
}

// SpinDriverPaths is the SPN1 chunk.
type SpinDriverPaths struct {
	Galaxies []SpinDriverGalaxy `json:"galaxy"`
}

func (*SpinDriverPaths) HashCode() hashcode.Hash { return 0x12345679 }
func (*SpinDriverPaths) Magic() uint32           { return MagicSpinDriverPath }

func (p *SpinDriverPaths) DecodeContent(s *binio.Stream, _ int) error {
	n, err := s.ReadU8()
	if err != nil {
		return err
	}
	p.Galaxies = make([]SpinDriverGalaxy, 0, n)
	for i := 0; i < int(n); i++ {
		g, err := decodeSpinDriverGalaxy(s)
		if err != nil {
			return fmt.Errorf("galaxy %d: %w", i, err)
		}
		p.Galaxies = append(p.Galaxies, g)
	}
	return nil
}

// decodeSpinDriverGalaxy reads a galaxy entry: its name, its size in bytes
// (covering the whole entry), a scenario count, a reserved byte and then the
// traces.
func decodeSpinDriverGalaxy(s *binio.Stream) (SpinDriverGalaxy, error) {
	start := s.Pos()
	name, err := s.ReadU16()
	if err != nil {
		return SpinDriverGalaxy{}, err
	}
	declared, err := s.ReadU16()
	if err != nil {
		return SpinDriverGalaxy{}, err
	}
	n, err := s.ReadU8()
	if err != nil {
		return SpinDriverGalaxy{}, err
	}
	if err := s.Skip(1); err != nil {
		return SpinDriverGalaxy{}, err
	}

	g := SpinDriverGalaxy{
		GalaxyName: hashcode.Hash16(name),
		Scenarios:  make([]pathtrace.Trace, 0, n),
	}
	for i := 0; i < int(n); i++ {
		t, err := pathtrace.Decode(s)
		if err != nil {
			return SpinDriverGalaxy{}, err
		}
		g.Scenarios = append(g.Scenarios, t)
	}
	if consumed := s.Pos() - start; consumed != int(declared) {
		return SpinDriverGalaxy{}, binio.Mismatch(s.Pos(), binio.ErrSizeMismatch, uint64(declared), uint64(consumed))
	}
	return g, nil
}

func (p *SpinDriverPaths) EncodeContent(s *binio.Stream) error {
	if len(p.Galaxies) > math.MaxUint8 {
		return binio.Mismatch(s.Pos(), binio.ErrValueRange, math.MaxUint8, uint64(len(p.Galaxies)))
	}
	s.WriteU8(uint8(len(p.Galaxies)))
	for _, g := range p.Galaxies {
		if err := encodeSpinDriverGalaxy(s, g); err != nil {
			return err
		}
	}
	return nil
}

func encodeSpinDriverGalaxy(s *binio.Stream, g SpinDriverGalaxy) error {
	start := s.Pos()
	if len(g.Scenarios) > math.MaxUint8 {
		return binio.Mismatch(start, binio.ErrValueRange, math.MaxUint8, uint64(len(g.Scenarios)))
	}
	s.WriteU16(uint16(g.GalaxyName))
	s.WriteU16(0)
	s.WriteU8(uint8(len(g.Scenarios)))
	s.WriteU8(0)
	for _, t := range g.Scenarios {
		if err := pathtrace.Encode(s, t); err != nil {
			return err
		}
	}
	size := s.Pos() - start
	if size > math.MaxUint16 {
		return binio.Mismatch(start, binio.ErrValueRange, math.MaxUint16, uint64(size))
	}
	s.PutU16At(start+2, uint16(size))
	return nil
}

// Galaxy returns the entry for the galaxy named name.
func (p *SpinDriverPaths) Galaxy(name hashcode.Hash) (*SpinDriverGalaxy, bool) {
	for i := range p.Galaxies {
		if name.Equal16(p.Galaxies[i].GalaxyName) {
			return &p.Galaxies[i], true
		}
	}
	return nil, false
}
