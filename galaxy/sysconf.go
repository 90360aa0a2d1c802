// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package galaxy

import (
	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/chunk"
	"github.com/bpowers/galaxysave/hashcode"
)

var sysConfigSchema = chunk.NewSchema(
	chunk.Field{Name: "mTimeAnnounced", Size: 8},
	chunk.Field{Name: "mTimeSent", Size: 8},
	chunk.Field{Name: "mSentBytes", Size: 4},
)

// SysConfig is the SYSC chunk: state shared by every file, preceded by its
// field descriptor table.
type SysConfig struct {
	// TimeAnnounced is when the player was asked to switch to 60 Hz.
	TimeAnnounced int64 `json:"time_announced"`
	// TimeSent is when a message was last posted to the message board.
	TimeSent int64 `json:"time_sent"`
	// SentBytes counts bytes posted since TimeSent.
	SentBytes uint32 `json:"sent_bytes"`
}

func (*SysConfig) HashCode() hashcode.Hash { return 0x1 }
func (*SysConfig) Magic() uint32           { return MagicSysConfig }

func (c *SysConfig) DecodeContent(s *binio.Stream, _ int) error {
	if err := sysConfigSchema.Skip(s); err != nil {
		return err
	}
	var err error
	if c.TimeAnnounced, err = s.ReadI64(); err != nil {
		return err
	}
	if c.TimeSent, err = s.ReadI64(); err != nil {
		return err
	}
	c.SentBytes, err = s.ReadU32()
	return err
}

func (c *SysConfig) EncodeContent(s *binio.Stream) error {
	sysConfigSchema.Encode(s)
	s.WriteI64(c.TimeAnnounced)
	s.WriteI64(c.TimeSent)
	s.WriteU32(c.SentBytes)
	return nil
}
