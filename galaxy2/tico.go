// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package galaxy2

import (
	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/hashcode"
)

const (
	// WorldCapacity is the number of world slots stored per file; seven are
	// used.
	WorldCapacity = 8

	ticoPartsNum        = 6
	coinGalaxyNameSlots = 16
)

// TicoFat is the STF1 chunk: star bits fed to the hungry lumas of each world
// and the galaxies whose coin-hungry luma was satisfied.
type TicoFat struct {
	StarPieceNum   [WorldCapacity][ticoPartsNum]uint16  `json:"star_piece_num"`
	CoinGalaxyName [coinGalaxyNameSlots]hashcode.Hash16 `json:"coin_galaxy_name"`
}

func (*TicoFat) HashCode() hashcode.Hash {
	return hashcode.FromString("SaveDataStorageTicoFat") + 0x120
}

func (*TicoFat) Magic() uint32 { return MagicTicoFat }

func (t *TicoFat) DecodeContent(s *binio.Stream, _ int) error {
	for w := range t.StarPieceNum {
		for i := range t.StarPieceNum[w] {
			v, err := s.ReadU16()
			if err != nil {
				return err
			}
			t.StarPieceNum[w][i] = v
		}
	}
	for i := range t.CoinGalaxyName {
		v, err := s.ReadU16()
		if err != nil {
			return err
		}
		t.CoinGalaxyName[i] = hashcode.Hash16(v)
	}
	return nil
}

func (t *TicoFat) EncodeContent(s *binio.Stream) error {
	for _, world := range t.StarPieceNum {
		for _, v := range world {
			s.WriteU16(v)
		}
	}
	for _, name := range t.CoinGalaxyName {
		s.WriteU16(uint16(name))
	}
	return nil
}

// StarPiece returns the star bits fed to a luma.  Worlds are numbered from 1.
func (t *TicoFat) StarPiece(worldNo, part int) (uint16, bool) {
	p := t.starPiece(worldNo, part)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// SetStarPiece updates a luma's counter, reporting whether it exists.
func (t *TicoFat) SetStarPiece(worldNo, part int, n uint16) bool {
	p := t.starPiece(worldNo, part)
	if p == nil {
		return false
	}
	*p = n
	return true
}

func (t *TicoFat) starPiece(worldNo, part int) *uint16 {
	if worldNo < 1 || worldNo > WorldCapacity || part < 0 || part >= ticoPartsNum {
		return nil
	}
	return &t.StarPieceNum[worldNo-1][part]
}

// IsCoinFeed reports whether the coin-hungry luma of galaxy was satisfied.
func (t *TicoFat) IsCoinFeed(galaxy hashcode.Hash) bool {
	for _, name := range t.CoinGalaxyName {
		if galaxy.Equal16(name) {
			return true
		}
	}
	return false
}

// OnCoinFeed records galaxy in the first free slot.  Nothing happens when it
// is already recorded or every slot is taken.
func (t *TicoFat) OnCoinFeed(galaxy hashcode.Hash) {
	if t.IsCoinFeed(galaxy) {
		return
	}
	for i := range t.CoinGalaxyName {
		if t.CoinGalaxyName[i] == 0 {
			t.CoinGalaxyName[i] = galaxy.Truncate()
			return
		}
	}
}

// OffCoinFeed removes galaxy, shifting later entries down so the used slots
// stay contiguous.
func (t *TicoFat) OffCoinFeed(galaxy hashcode.Hash) {
	for i := range t.CoinGalaxyName {
		if !galaxy.Equal16(t.CoinGalaxyName[i]) {
			continue
		}
		t.CoinGalaxyName[i] = 0
		for j := i; j < coinGalaxyNameSlots-1 && t.CoinGalaxyName[j+1] != 0; j++ {
			t.CoinGalaxyName[j], t.CoinGalaxyName[j+1] = t.CoinGalaxyName[j+1], t.CoinGalaxyName[j]
		}
		return
	}
}
