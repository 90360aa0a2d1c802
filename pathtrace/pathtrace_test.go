// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pathtrace

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpowers/galaxysave/binio"
)

func encode(t *testing.T, e binio.Endian, trace Trace) []byte {
	t.Helper()
	w := binio.NewWriter(e, 0)
	require.NoError(t, Encode(w, trace))
	return w.Bytes()
}

func TestEncode_Bytes(t *testing.T) {
	trace := Trace{Zones: []ZoneGroup{
		{Zone: 0, Entries: []Entry{{Index: 0, Percentage: 1}, {Index: 1, Percentage: 0.5}}},
		{Zone: 2, Entries: []Entry{{Index: 5, Percentage: 0.0005}}},
		{Zone: 1, Entries: []Entry{{Index: 3, Percentage: 0.25}}},
	}}

	require.Equal(t, []byte{
		0x00, 0x0B,
		0xC0, 0x80, 0x00, 0x81, 0x80,
		0xC1, 0x83, 0x40,
		0xFF,
	}, encode(t, binio.BigEndian, trace))

	require.Equal(t, []byte{
		0x0B, 0x00,
		0xC0, 0x80, 0x00, 0x81, 0x80,
		0xC1, 0x83, 0x40,
		0xFF,
	}, encode(t, binio.LittleEndian, trace))
}

func TestEncode_Empty(t *testing.T) {
	require.Equal(t, []byte{0x00, 0x03, 0xFF}, encode(t, binio.BigEndian, Trace{}))

	// a zone whose entries are all below tolerance vanishes
	trace := Trace{Zones: []ZoneGroup{{Zone: 4, Entries: []Entry{{Index: 1, Percentage: 0}}}}}
	require.Equal(t, []byte{0x00, 0x03, 0xFF}, encode(t, binio.BigEndian, trace))
}

func TestEncode_MergesZones(t *testing.T) {
	trace := Trace{Zones: []ZoneGroup{
		{Zone: 3, Entries: []Entry{{Index: 1, Percentage: 1}}},
		{Zone: 0, Entries: []Entry{{Index: 9, Percentage: 1}}},
		{Zone: 3, Entries: []Entry{{Index: 2, Percentage: 1}}},
	}}
	require.Equal(t, []byte{
		0x00, 0x0B,
		0xC0, 0x89, 0x00,
		0xC3, 0x81, 0x00, 0x82, 0x00,
		0xFF,
	}, encode(t, binio.BigEndian, trace))
}

func TestEncode_SubQuantumFraction(t *testing.T) {
	// above tolerance but quantizes to zero: only the flag byte is written
	trace := Trace{Zones: []ZoneGroup{{Zone: 0, Entries: []Entry{{Index: 1, Percentage: 0.002}}}}}
	require.Equal(t, []byte{0x00, 0x05, 0xC0, 0x81, 0xFF}, encode(t, binio.BigEndian, trace))
}

func TestEncode_Invalid(t *testing.T) {
	for _, trace := range []Trace{
		{Zones: []ZoneGroup{{Zone: 63}}},
		{Zones: []ZoneGroup{{Zone: -1}}},
		{Zones: []ZoneGroup{{Zone: 0, Entries: []Entry{{Index: 64, Percentage: 1}}}}},
		{Zones: []ZoneGroup{{Zone: 0, Entries: []Entry{{Index: -1, Percentage: 1}}}}},
		{Zones: []ZoneGroup{{Zone: 0, Entries: []Entry{{Index: 0, Percentage: 1.5}}}}},
		{Zones: []ZoneGroup{{Zone: 0, Entries: []Entry{{Index: 0, Percentage: -0.5}}}}},
		{Zones: []ZoneGroup{{Zone: 0, Entries: []Entry{{Index: 0, Percentage: float32(math.NaN())}}}}},
	} {
		err := Encode(binio.NewWriter(binio.BigEndian, 0), trace)
		require.Error(t, err)
		assert.True(t, errors.Is(err, binio.ErrValueRange))
	}
}

func TestDecode_Flags(t *testing.T) {
	r := binio.NewReader([]byte{
		0x00, 0x08,
		0xC5, 0x42, 0x07, 0x83, 0x00,
		0xFF,
	}, binio.BigEndian)
	trace, err := Decode(r)
	require.NoError(t, err)
	require.Equal(t, 8, r.Pos())
	require.Equal(t, Trace{Zones: []ZoneGroup{
		{Zone: 5, Entries: []Entry{
			{Index: 2, Percentage: 1},
			{Index: 7, Percentage: 0},
			{Index: 3, Percentage: 1},
		}},
	}}, trace)

	p, ok := trace.Percentage(5, 7)
	require.True(t, ok)
	require.Equal(t, float32(0), p)
	_, ok = trace.Percentage(4, 7)
	require.False(t, ok)
	require.Equal(t, 3, trace.Len())
}

func TestDecode_GroupsByFirstAppearance(t *testing.T) {
	r := binio.NewReader([]byte{
		0x0B, 0x00,
		0xC2, 0x41,
		0xC0,
		0xC1, 0x81, 0x40,
		0xC2, 0x43,
		0xFF,
	}, binio.LittleEndian)
	trace, err := Decode(r)
	require.NoError(t, err)
	require.Equal(t, Trace{Zones: []ZoneGroup{
		{Zone: 2, Entries: []Entry{{Index: 1, Percentage: 1}, {Index: 3, Percentage: 1}}},
		{Zone: 1, Entries: []Entry{{Index: 1, Percentage: 0.25}}},
	}}, trace)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(binio.NewReader([]byte{0x00, 0x04, 0x10, 0xFF}, binio.BigEndian))
	require.Error(t, err)
	assert.True(t, errors.Is(err, binio.ErrNoZone))

	_, err = Decode(binio.NewReader([]byte{0x00, 0x09, 0xC0, 0x40, 0xFF}, binio.BigEndian))
	require.Error(t, err)
	assert.True(t, errors.Is(err, binio.ErrSizeMismatch))
	var formatErr *binio.FormatError
	require.True(t, errors.As(err, &formatErr))
	require.Equal(t, uint64(9), formatErr.Expected)
	require.Equal(t, uint64(5), formatErr.Found)

	// missing terminator
	_, err = Decode(binio.NewReader([]byte{0x00, 0x05, 0xC0, 0x40}, binio.BigEndian))
	assert.True(t, errors.Is(err, binio.ErrUnexpectedEOF))

	// partial record without its fraction byte
	_, err = Decode(binio.NewReader([]byte{0x00, 0x05, 0xC0, 0x80}, binio.BigEndian))
	assert.True(t, errors.Is(err, binio.ErrUnexpectedEOF))
}

func TestRoundTrip(t *testing.T) {
	trace := Trace{Zones: []ZoneGroup{
		{Zone: 0, Entries: []Entry{
			{Index: 0, Percentage: 1},
			{Index: 1, Percentage: 0.3},
			{Index: 2, Percentage: 0.0001},
			{Index: 63, Percentage: 0.999},
		}},
		{Zone: 62, Entries: []Entry{{Index: 4, Percentage: 1.0 / 256}}},
		{Zone: 7, Entries: []Entry{{Index: 0, Percentage: 0.5}}},
	}}

	for _, e := range []binio.Endian{binio.BigEndian, binio.LittleEndian} {
		data := encode(t, e, trace)
		r := binio.NewReader(data, e)
		decoded, err := Decode(r)
		require.NoError(t, err)
		require.Equal(t, len(data), r.Pos())

		require.Len(t, decoded.Zones, 3)
		require.Equal(t, []int32{0, 7, 62}, []int32{decoded.Zones[0].Zone, decoded.Zones[1].Zone, decoded.Zones[2].Zone})
		// below tolerance: gone
		require.Equal(t, 3, len(decoded.Zones[0].Entries))
		_, ok := decoded.Percentage(0, 2)
		require.False(t, ok)

		for _, g := range trace.Zones {
			for _, want := range g.Entries {
				if want.Percentage < Tolerance {
					continue
				}
				got, ok := decoded.Percentage(g.Zone, want.Index)
				require.True(t, ok)
				require.InDelta(t, want.Percentage, got, 1.0/256)
			}
		}

		// a decoded trace is a fixed point
		require.Equal(t, data, encode(t, e, decoded))
	}
}
