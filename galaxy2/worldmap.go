// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package galaxy2

import (
	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/hashcode"
)

// WorldMap is the SSWM chunk.
type WorldMap struct {
	// StarCheckPointFlag holds the star barrier state of each world.
	StarCheckPointFlag [WorldCapacity]uint8 `json:"star_check_point_flag"`
	// WorldNo is the world being navigated, counted from 1.
	WorldNo uint8 `json:"world_no"`
}

// NewWorldMap returns the map state of a new file.
func NewWorldMap() *WorldMap {
	return &WorldMap{WorldNo: 1}
}

func (*WorldMap) HashCode() hashcode.Hash {
	return hashcode.FromString("SaveDataStorageWorldMap") * 9
}

func (*WorldMap) Magic() uint32 { return MagicWorldMap }

func (m *WorldMap) DecodeContent(s *binio.Stream, _ int) error {
	flags, err := s.ReadN(len(m.StarCheckPointFlag))
	if err != nil {
		return err
	}
	copy(m.StarCheckPointFlag[:], flags)
	m.WorldNo, err = s.ReadU8()
	return err
}

func (m *WorldMap) EncodeContent(s *binio.Stream) error {
	s.Write(m.StarCheckPointFlag[:])
	s.WriteU8(m.WorldNo)
	return nil
}
