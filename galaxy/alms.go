// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package galaxy

import (
	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/hashcode"
)

// StarPieceAlms is the PCE1 chunk: star bits fed to each hungry luma.  Row 0
// holds the lumas out in the galaxies, row 1 those in the observatory.
type StarPieceAlms struct {
	StarPieceNum [2][8]uint16 `json:"star_piece_num"`
}

func (*StarPieceAlms) HashCode() hashcode.Hash {
	return hashcode.FromString("StarPieceAlmsStorage") << 5
}

func (*StarPieceAlms) Magic() uint32 { return MagicStarPieceAlms }

func (a *StarPieceAlms) DecodeContent(s *binio.Stream, _ int) error {
	for row := range a.StarPieceNum {
		for i := range a.StarPieceNum[row] {
			v, err := s.ReadU16()
			if err != nil {
				return err
			}
			a.StarPieceNum[row][i] = v
		}
	}
	return nil
}

func (a *StarPieceAlms) EncodeContent(s *binio.Stream) error {
	for _, row := range a.StarPieceNum {
		for _, v := range row {
			s.WriteU16(v)
		}
	}
	return nil
}

// Galaxy returns the count of the index'th luma found in a galaxy.
func (a *StarPieceAlms) Galaxy(index int) (uint16, bool) {
	if index < 0 || index >= len(a.StarPieceNum[0]) {
		return 0, false
	}
	return a.StarPieceNum[0][index], true
}

// AstroGalaxy returns the count of the index'th luma in the observatory.
func (a *StarPieceAlms) AstroGalaxy(index int) (uint16, bool) {
	if index < 0 || index >= len(a.StarPieceNum[1]) {
		return 0, false
	}
	return a.StarPieceNum[1][index], true
}
