// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package galaxy

import (
	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/hashcode"
)

// PlayerStatus is the PLAY chunk.
type PlayerStatus struct {
	// StoryProgress only ever grows as the story advances.
	StoryProgress       uint8  `json:"story_progress"`
	StockedStarPieceNum uint32 `json:"stocked_star_piece_num"`
	PlayerLeft          uint16 `json:"player_left"`
}

// NewPlayerStatus returns the status of a new file.
func NewPlayerStatus() *PlayerStatus {
	return &PlayerStatus{PlayerLeft: 4}
}

func (*PlayerStatus) HashCode() hashcode.Hash { return 0x0027C90F }
func (*PlayerStatus) Magic() uint32           { return MagicPlayerStatus }

func (p *PlayerStatus) DecodeContent(s *binio.Stream, _ int) error {
	var err error
	if p.StoryProgress, err = s.ReadU8(); err != nil {
		return err
	}
	if p.StockedStarPieceNum, err = s.ReadU32(); err != nil {
		return err
	}
	p.PlayerLeft, err = s.ReadU16()
	return err
}

func (p *PlayerStatus) EncodeContent(s *binio.Stream) error {
	s.WriteU8(p.StoryProgress)
	s.WriteU32(p.StockedStarPieceNum)
	s.WriteU16(p.PlayerLeft)
	return nil
}
