// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package galaxy

import (
	"math"

	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/bitset"
	"github.com/bpowers/galaxysave/chunk"
	"github.com/bpowers/galaxysave/hashcode"
)

var galaxyRecordSchema = chunk.NewSchema(
	chunk.Field{Name: "mGalaxyName", Size: 2},
	chunk.Field{Name: "mPowerStarFlag", Size: 1},
	chunk.Field{Name: "mFirstPlayFlag", Size: 1},
	chunk.Field{Name: "mMaxCoinNum", Size: 2 * 8},
)

// GalaxyRecord is the completion state of one galaxy.
type GalaxyRecord struct {
	GalaxyName hashcode.Hash16 `json:"galaxy_name"`
	// PowerStarFlag has a bit per scenario whose star was collected.
	PowerStarFlag bitset.Array8 `json:"power_star_flag"`
	// FirstPlayFlag has a bit per scenario that was ever selected.
	FirstPlayFlag bitset.Array8 `json:"first_play_flag"`
	MaxCoinNum    [8]uint16     `json:"max_coin_num"`
}

// GalaxyStorage is the GALA chunk.  Its records are preceded by their field
// descriptor table.
type GalaxyStorage struct {
	Galaxies []GalaxyRecord `json:"galaxy"`
}

func (*GalaxyStorage) HashCode() hashcode.Hash { return 0xBF0640EE }
func (*GalaxyStorage) Magic() uint32           { return MagicGalaxy }

func (g *GalaxyStorage) DecodeContent(s *binio.Stream, _ int) error {
	n, err := s.ReadU16()
	if err != nil {
		return err
	}
	if err := galaxyRecordSchema.Skip(s); err != nil {
		return err
	}
	g.Galaxies = make([]GalaxyRecord, 0, n)
	for i := 0; i < int(n); i++ {
		var r GalaxyRecord
		name, err := s.ReadU16()
		if err != nil {
			return err
		}
		r.GalaxyName = hashcode.Hash16(name)
		powerStar, err := s.ReadU8()
		if err != nil {
			return err
		}
		r.PowerStarFlag = bitset.Array8(powerStar)
		firstPlay, err := s.ReadU8()
		if err != nil {
			return err
		}
		r.FirstPlayFlag = bitset.Array8(firstPlay)
		for j := range r.MaxCoinNum {
			if r.MaxCoinNum[j], err = s.ReadU16(); err != nil {
				return err
			}
		}
		g.Galaxies = append(g.Galaxies, r)
	}
	return nil
}

func (g *GalaxyStorage) EncodeContent(s *binio.Stream) error {
	if len(g.Galaxies) > math.MaxUint16 {
		return binio.Mismatch(s.Pos(), binio.ErrValueRange, math.MaxUint16, uint64(len(g.Galaxies)))
	}
	s.WriteU16(uint16(len(g.Galaxies)))
	galaxyRecordSchema.Encode(s)
	for _, r := range g.Galaxies {
		s.WriteU16(uint16(r.GalaxyName))
		s.WriteU8(uint8(r.PowerStarFlag))
		s.WriteU8(uint8(r.FirstPlayFlag))
		for _, coins := range r.MaxCoinNum {
			s.WriteU16(coins)
		}
	}
	return nil
}

// Galaxy returns the record of the galaxy named name.
func (g *GalaxyStorage) Galaxy(name hashcode.Hash) (*GalaxyRecord, bool) {
	for i := range g.Galaxies {
		if name.Equal16(g.Galaxies[i].GalaxyName) {
			return &g.Galaxies[i], true
		}
	}
	return nil, false
}
