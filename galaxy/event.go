// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package galaxy

import (
	"encoding/json"

	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/hashcode"
)

const (
	flagValueMask = 1 << 15
	flagKeyMask   = flagValueMask - 1
	flagKeyWidth  = 15
)

// EventFlag packs a boolean with the low 15 bits of its key's hash.
type EventFlag uint16

// NewEventFlag returns a flag for key.
func NewEventFlag(key hashcode.Hash, value bool) EventFlag {
	f := EventFlag(uint16(key) & flagKeyMask)
	f.Set(value)
	return f
}

// Key returns the stored 15 bits of the key hash.
func (f EventFlag) Key() hashcode.Hash {
	return hashcode.Hash(uint16(f) & flagKeyMask)
}

func (f EventFlag) Value() bool {
	return f&flagValueMask != 0
}

func (f *EventFlag) Set(value bool) {
	*f &= flagKeyMask
	if value {
		*f |= flagValueMask
	}
}

// Matches reports whether f is keyed by key.
func (f EventFlag) Matches(key hashcode.Hash) bool {
	return f.Key() == key.Mask(flagKeyWidth)
}

type eventFlagJSON struct {
	Key   string `json:"key"`
	Value bool   `json:"value"`
}

func (f EventFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventFlagJSON{
		Key:   hashcode.Default().Format(f.Key(), flagKeyWidth),
		Value: f.Value(),
	})
}

func (f *EventFlag) UnmarshalJSON(data []byte) error {
	var v eventFlagJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	key, err := hashcode.Default().Parse(v.Key, flagKeyWidth)
	if err != nil {
		return err
	}
	*f = NewEventFlag(key, v.Value)
	return nil
}

// EventFlags is the FLG1 chunk: every boolean story event.
type EventFlags struct {
	Flags []EventFlag `json:"event_flag"`
}

func (*EventFlags) HashCode() hashcode.Hash { return hashcode.FromString("2bytes/flag") }
func (*EventFlags) Magic() uint32           { return MagicEventFlag }

func (e *EventFlags) DecodeContent(s *binio.Stream, size int) error {
	n := size / 2
	e.Flags = make([]EventFlag, 0, n)
	for i := 0; i < n; i++ {
		v, err := s.ReadU16()
		if err != nil {
			return err
		}
		e.Flags = append(e.Flags, EventFlag(v))
	}
	return nil
}

func (e *EventFlags) EncodeContent(s *binio.Stream) error {
	for _, f := range e.Flags {
		s.WriteU16(uint16(f))
	}
	return nil
}

// Get returns the value of the flag keyed by key.
func (e *EventFlags) Get(key hashcode.Hash) (value, ok bool) {
	for _, f := range e.Flags {
		if f.Matches(key) {
			return f.Value(), true
		}
	}
	return false, false
}

// Set updates the flag keyed by key, reporting whether it exists.
func (e *EventFlags) Set(key hashcode.Hash, value bool) bool {
	for i := range e.Flags {
		if e.Flags[i].Matches(key) {
			e.Flags[i].Set(value)
			return true
		}
	}
	return false
}

// EventValue is a 16-bit counter keyed by the low 16 bits of a hash.
type EventValue struct {
	Key   hashcode.Hash16 `json:"key"`
	Value uint16          `json:"value"`
}

// EventValues is the VLE1 chunk: every numeric story event.
type EventValues struct {
	Values []EventValue `json:"event_value"`
}

func (*EventValues) HashCode() hashcode.Hash { return MagicEventValue }
func (*EventValues) Magic() uint32           { return MagicEventValue }

func (e *EventValues) DecodeContent(s *binio.Stream, size int) error {
	n := size / 4
	e.Values = make([]EventValue, 0, n)
	for i := 0; i < n; i++ {
		key, err := s.ReadU16()
		if err != nil {
			return err
		}
		value, err := s.ReadU16()
		if err != nil {
			return err
		}
		e.Values = append(e.Values, EventValue{Key: hashcode.Hash16(key), Value: value})
	}
	return nil
}

func (e *EventValues) EncodeContent(s *binio.Stream) error {
	for _, v := range e.Values {
		s.WriteU16(uint16(v.Key))
		s.WriteU16(v.Value)
	}
	return nil
}

// Get returns the value keyed by key.
func (e *EventValues) Get(key hashcode.Hash) (uint16, bool) {
	for _, v := range e.Values {
		if key.Equal16(v.Key) {
			return v.Value, true
		}
	}
	return 0, false
}

// Set updates the value keyed by key, reporting whether it exists.
func (e *EventValues) Set(key hashcode.Hash, value uint16) bool {
	for i := range e.Values {
		if key.Equal16(e.Values[i].Key) {
			e.Values[i].Value = value
			return true
		}
	}
	return false
}
