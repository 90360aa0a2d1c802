// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package galaxy

import (
	"encoding/json"
	"fmt"

	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/hashcode"
)

// Create is the CONF chunk.
type Create struct {
	IsCreated bool `json:"is_created"`
}

func (*Create) HashCode() hashcode.Hash { return 0x002432DA }
func (*Create) Magic() uint32           { return MagicCreate }

func (c *Create) DecodeContent(s *binio.Stream, _ int) error {
	v, err := s.ReadI8()
	if err != nil {
		return err
	}
	c.IsCreated = v != 0
	return nil
}

func (c *Create) EncodeContent(s *binio.Stream) error {
	// the game stores true as -1
	var v int8
	if c.IsCreated {
		v = -1
	}
	s.WriteI8(v)
	return nil
}

// MiiFlag holds the two flag bits of the MII chunk.  Neither is read by the
// game.
type MiiFlag uint8

const (
	miiFlagUnk1 MiiFlag = 1 << iota
	miiFlagUnk2
)

type miiFlagJSON struct {
	Unk1 bool `json:"unk1"`
	Unk2 bool `json:"unk2"`
}

func (f MiiFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(miiFlagJSON{
		Unk1: f&miiFlagUnk1 != 0,
		Unk2: f&miiFlagUnk2 != 0,
	})
}

func (f *MiiFlag) UnmarshalJSON(data []byte) error {
	var v miiFlagJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = 0
	if v.Unk1 {
		*f |= miiFlagUnk1
	}
	if v.Unk2 {
		*f |= miiFlagUnk2
	}
	return nil
}

// MiiIcon is the icon shown for a file.
type MiiIcon uint8

const (
	IconMii MiiIcon = iota
	IconMario
	IconLuigi
	IconYoshi
	IconKinopio
	IconPeach
)

var miiIconNames = [...]string{"Mii", "Mario", "Luigi", "Yoshi", "Kinopio", "Peach"}

func (i MiiIcon) valid() bool {
	return int(i) < len(miiIconNames)
}

func (i MiiIcon) String() string {
	if !i.valid() {
		return fmt.Sprintf("MiiIcon(%d)", uint8(i))
	}
	return miiIconNames[i]
}

func (i MiiIcon) MarshalText() ([]byte, error) {
	if !i.valid() {
		return nil, fmt.Errorf("invalid icon %d", uint8(i))
	}
	return []byte(miiIconNames[i]), nil
}

func (i *MiiIcon) UnmarshalText(text []byte) error {
	for v, name := range miiIconNames {
		if name == string(text) {
			*i = MiiIcon(v)
			return nil
		}
	}
	return fmt.Errorf("unknown icon %q", text)
}

// Mii is the MII chunk.
type Mii struct {
	Flag MiiFlag `json:"flag"`
	// MiiID is the creator identifier of the Mii, opaque here.
	MiiID  [8]byte `json:"mii_id"`
	IconID MiiIcon `json:"icon_id"`
}

// NewMii returns the icon state of a new file.
func NewMii() *Mii {
	return &Mii{IconID: IconMario}
}

func (*Mii) HashCode() hashcode.Hash { return 0x002836E9 }
func (*Mii) Magic() uint32           { return MagicMii }

func (m *Mii) DecodeContent(s *binio.Stream, _ int) error {
	flag, err := s.ReadU8()
	if err != nil {
		return err
	}
	m.Flag = MiiFlag(flag)
	id, err := s.ReadN(len(m.MiiID))
	if err != nil {
		return err
	}
	copy(m.MiiID[:], id)
	pos := s.Pos()
	icon, err := s.ReadU8()
	if err != nil {
		return err
	}
	m.IconID = MiiIcon(icon)
	if !m.IconID.valid() {
		return binio.Mismatch(pos, binio.ErrValueRange, uint64(len(miiIconNames)-1), uint64(icon))
	}
	return nil
}

func (m *Mii) EncodeContent(s *binio.Stream) error {
	if !m.IconID.valid() {
		return binio.Mismatch(s.Pos(), binio.ErrValueRange, uint64(len(miiIconNames)-1), uint64(m.IconID))
	}
	s.WriteU8(uint8(m.Flag))
	s.Write(m.MiiID[:])
	s.WriteU8(uint8(m.IconID))
	return nil
}

// MiscFlag holds the flag bits of the MISC chunk.
type MiscFlag uint8

const (
	MiscLastLoadedMario MiscFlag = 1 << iota
	MiscCompleteEndingMario
	MiscCompleteEndingLuigi
)

type miscFlagJSON struct {
	LastLoadedMario     bool `json:"last_loaded_mario"`
	CompleteEndingMario bool `json:"complete_ending_mario"`
	CompleteEndingLuigi bool `json:"complete_ending_luigi"`
}

func (f MiscFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(miscFlagJSON{
		LastLoadedMario:     f&MiscLastLoadedMario != 0,
		CompleteEndingMario: f&MiscCompleteEndingMario != 0,
		CompleteEndingLuigi: f&MiscCompleteEndingLuigi != 0,
	})
}

func (f *MiscFlag) UnmarshalJSON(data []byte) error {
	var v miscFlagJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = 0
	if v.LastLoadedMario {
		*f |= MiscLastLoadedMario
	}
	if v.CompleteEndingMario {
		*f |= MiscCompleteEndingMario
	}
	if v.CompleteEndingLuigi {
		*f |= MiscCompleteEndingLuigi
	}
	return nil
}

// Misc is the MISC chunk.
type Misc struct {
	Flag MiscFlag `json:"flag"`
	// LastModified is in ticks since 2000-01-01 on the Wii and Shield TV,
	// and in Unix seconds on the Switch.
	LastModified int64 `json:"last_modified"`
}

// NewMisc returns the state of a new file.
func NewMisc() *Misc {
	return &Misc{Flag: MiscLastLoadedMario}
}

func (*Misc) HashCode() hashcode.Hash { return 0x1 }
func (*Misc) Magic() uint32           { return MagicMisc }

func (m *Misc) DecodeContent(s *binio.Stream, _ int) error {
	flag, err := s.ReadU8()
	if err != nil {
		return err
	}
	m.Flag = MiscFlag(flag)
	m.LastModified, err = s.ReadI64()
	return err
}

func (m *Misc) EncodeContent(s *binio.Stream) error {
	s.WriteU8(uint8(m.Flag))
	s.WriteI64(m.LastModified)
	return nil
}
