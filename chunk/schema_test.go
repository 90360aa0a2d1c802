// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bpowers/galaxysave/binio"
)

func galaxyLikeSchema() *Schema {
	return NewSchema(
		Field{Name: "mGalaxyName", Size: 2},
		Field{Name: "mPowerStarFlag", Size: 1},
		Field{Name: "mFirstPlayFlag", Size: 1},
		Field{Name: "mClearStageNum", Size: 16, Skip: true},
		Field{Name: "mMaxCoinNum", Size: 16},
	)
}

func TestSchema_Descriptors(t *testing.T) {
	s := galaxyLikeSchema()
	require.Equal(t, []Descriptor{
		{Key: 0x8208, Offset: 0},
		{Key: 0x2196, Offset: 2},
		{Key: 0xD423, Offset: 3},
		{Key: 0x817E, Offset: 4},
	}, s.Descriptors())
	require.Equal(t, 20, s.DataSize())
	require.Equal(t, 20, s.HeaderSize())
}

func TestSchema_Encode(t *testing.T) {
	s := galaxyLikeSchema()

	w := binio.NewWriter(binio.BigEndian, 0)
	s.Encode(w)
	require.Equal(t, []byte{
		0x00, 0x04, 0x00, 0x14,
		0x82, 0x08, 0x00, 0x00,
		0x21, 0x96, 0x00, 0x02,
		0xD4, 0x23, 0x00, 0x03,
		0x81, 0x7E, 0x00, 0x04,
	}, w.Bytes())

	w = binio.NewWriter(binio.LittleEndian, 0)
	s.Encode(w)
	require.Equal(t, []byte{
		0x04, 0x00, 0x14, 0x00,
		0x08, 0x82, 0x00, 0x00,
		0x96, 0x21, 0x02, 0x00,
		0x23, 0xD4, 0x03, 0x00,
		0x7E, 0x81, 0x04, 0x00,
	}, w.Bytes())

	r := binio.NewReader(append(w.Bytes(), 0xAB), binio.LittleEndian)
	require.NoError(t, s.Skip(r))
	require.Equal(t, s.HeaderSize(), r.Pos())
	b, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(0xAB), b)
}

func TestSchema_Empty(t *testing.T) {
	s := NewSchema()
	require.Equal(t, 4, s.HeaderSize())
	require.Equal(t, 0, s.DataSize())
	require.Empty(t, s.Descriptors())
}

func TestSchema_SkipTruncated(t *testing.T) {
	s := galaxyLikeSchema()
	r := binio.NewReader(make([]byte, 8), binio.BigEndian)
	require.Error(t, s.Skip(r))
}

func TestSchema_TooLarge(t *testing.T) {
	require.Panics(t, func() {
		NewSchema(Field{Name: "a", Size: 0x8000}, Field{Name: "b", Size: 0x8000})
	})
}
