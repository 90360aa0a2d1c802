// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package galaxy2

import (
	"encoding/json"

	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/chunk"
	"github.com/bpowers/galaxysave/galaxy"
	"github.com/bpowers/galaxysave/hashcode"
)

var playerStatusSchema = chunk.NewSchema(
	chunk.Field{Name: "mPlayerLeft", Size: 1},
	chunk.Field{Name: "mStockedStarPieceNum", Size: 2},
	chunk.Field{Name: "mStockedCoinNum", Size: 2},
	chunk.Field{Name: "mLast1upCoinNum", Size: 2},
	chunk.Field{Name: "mFlag", Size: 1},
)

// PlayerStatusFlag holds the flag bits of the player status.
type PlayerStatusFlag uint8

// PlayerLuigi is set while Luigi is the current character.
const PlayerLuigi PlayerStatusFlag = 1

type playerStatusFlagJSON struct {
	PlayerLuigi bool `json:"player_luigi"`
}

func (f PlayerStatusFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(playerStatusFlagJSON{PlayerLuigi: f&PlayerLuigi != 0})
}

func (f *PlayerStatusFlag) UnmarshalJSON(data []byte) error {
	var v playerStatusFlagJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = 0
	if v.PlayerLuigi {
		*f = PlayerLuigi
	}
	return nil
}

// PlayerStatus is the PLAY chunk, preceded by its field descriptor table.
type PlayerStatus struct {
	PlayerLeft          uint8  `json:"player_left"`
	StockedStarPieceNum uint16 `json:"stocked_star_piece_num"`
	StockedCoinNum      uint16 `json:"stocked_coin_num"`
	// Last1upCoinNum is the stocked coin count that last earned a life.
	Last1upCoinNum uint16           `json:"last_1up_coin_num"`
	Flag           PlayerStatusFlag `json:"flag"`
}

// NewPlayerStatus returns the status of a new file.
func NewPlayerStatus() *PlayerStatus {
	return &PlayerStatus{PlayerLeft: 4}
}

func (*PlayerStatus) HashCode() hashcode.Hash {
	return hashcode.Hash(playerStatusSchema.DataSize() + playerStatusSchema.HeaderSize())
}

func (*PlayerStatus) Magic() uint32 { return galaxy.MagicPlayerStatus }

func (p *PlayerStatus) DecodeContent(s *binio.Stream, _ int) error {
	if err := playerStatusSchema.Skip(s); err != nil {
		return err
	}
	var err error
	if p.PlayerLeft, err = s.ReadU8(); err != nil {
		return err
	}
	if p.StockedStarPieceNum, err = s.ReadU16(); err != nil {
		return err
	}
	if p.StockedCoinNum, err = s.ReadU16(); err != nil {
		return err
	}
	if p.Last1upCoinNum, err = s.ReadU16(); err != nil {
		return err
	}
	flag, err := s.ReadU8()
	p.Flag = PlayerStatusFlag(flag)
	return err
}

func (p *PlayerStatus) EncodeContent(s *binio.Stream) error {
	playerStatusSchema.Encode(s)
	s.WriteU8(p.PlayerLeft)
	s.WriteU16(p.StockedStarPieceNum)
	s.WriteU16(p.StockedCoinNum)
	s.WriteU16(p.Last1upCoinNum)
	s.WriteU8(uint8(p.Flag))
	return nil
}
