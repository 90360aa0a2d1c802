// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package galaxy2

import (
	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/chunk"
	"github.com/bpowers/galaxysave/galaxy"
	"github.com/bpowers/galaxysave/hashcode"
)

var sysConfigSchema = chunk.NewSchema(
	chunk.Field{Name: "mIsEncouragePal60", Size: 1},
	chunk.Field{Name: "mTimeSent", Size: 8},
	chunk.Field{Name: "mSentBytes", Size: 4},
	chunk.Field{Name: "mBankStarPieceNum", Size: 2},
	chunk.Field{Name: "mBankStarPieceMax", Size: 2},
	chunk.Field{Name: "mGiftedPlayerLeft", Size: 1},
	chunk.Field{Name: "mGiftedFileNameHash", Size: 2},
)

// SysConfig is the SYSC chunk: state shared by every file, preceded by its
// field descriptor table.
type SysConfig struct {
	// IsEncouragePal60 is set once the player was asked to switch to 60 Hz.
	IsEncouragePal60 bool   `json:"is_encourage_pal60"`
	TimeSent         int64  `json:"time_sent"`
	SentBytes        uint32 `json:"sent_bytes"`
	// BankStarPieceNum is the star bits banked with the lumas, shared by
	// every file.
	BankStarPieceNum uint16 `json:"bank_star_piece_num"`
	BankStarPieceMax uint16 `json:"bank_star_piece_max"`
	GiftedPlayerLeft uint8  `json:"gifted_player_left"`
	// GiftedFileNameHash names the file the lives were gifted to.
	GiftedFileNameHash hashcode.Hash16 `json:"gifted_file_name_hash"`
}

func (*SysConfig) HashCode() hashcode.Hash { return 0x3 }
func (*SysConfig) Magic() uint32           { return galaxy.MagicSysConfig }

func (c *SysConfig) DecodeContent(s *binio.Stream, _ int) error {
	if err := sysConfigSchema.Skip(s); err != nil {
		return err
	}
	pal60, err := s.ReadU8()
	if err != nil {
		return err
	}
	c.IsEncouragePal60 = pal60 != 0
	if c.TimeSent, err = s.ReadI64(); err != nil {
		return err
	}
	if c.SentBytes, err = s.ReadU32(); err != nil {
		return err
	}
	if c.BankStarPieceNum, err = s.ReadU16(); err != nil {
		return err
	}
	if c.BankStarPieceMax, err = s.ReadU16(); err != nil {
		return err
	}
	if c.GiftedPlayerLeft, err = s.ReadU8(); err != nil {
		return err
	}
	name, err := s.ReadU16()
	c.GiftedFileNameHash = hashcode.Hash16(name)
	return err
}

func (c *SysConfig) EncodeContent(s *binio.Stream) error {
	sysConfigSchema.Encode(s)
	var pal60 uint8
	if c.IsEncouragePal60 {
		pal60 = 1
	}
	s.WriteU8(pal60)
	s.WriteI64(c.TimeSent)
	s.WriteU32(c.SentBytes)
	s.WriteU16(c.BankStarPieceNum)
	s.WriteU16(c.BankStarPieceMax)
	s.WriteU8(c.GiftedPlayerLeft)
	s.WriteU16(uint16(c.GiftedFileNameHash))
	return nil
}
