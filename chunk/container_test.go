// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package chunk

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/hashcode"
)

const (
	pairMagic  = 0x50414952 // PAIR
	bytesMagic = 0x42595453 // BYTS
)

// pair is a fixed-size content whose length isn't a multiple of 4.
type pair struct {
	A uint8  `json:"a"`
	B uint16 `json:"b"`
}

func (*pair) HashCode() hashcode.Hash { return hashcode.FromString("pair") }
func (*pair) Magic() uint32           { return pairMagic }

func (p *pair) DecodeContent(s *binio.Stream, _ int) error {
	var err error
	if p.A, err = s.ReadU8(); err != nil {
		return err
	}
	p.B, err = s.ReadU16()
	return err
}

func (p *pair) EncodeContent(s *binio.Stream) error {
	s.WriteU8(p.A)
	s.WriteU16(p.B)
	return nil
}

// byteList sizes itself from the chunk size.
type byteList struct {
	Values []uint16 `json:"values"`
}

func (*byteList) HashCode() hashcode.Hash { return 0x12345679 }
func (*byteList) Magic() uint32           { return bytesMagic }

func (b *byteList) DecodeContent(s *binio.Stream, size int) error {
	b.Values = make([]uint16, 0, size/2)
	for i := 0; i < size/2; i++ {
		v, err := s.ReadU16()
		if err != nil {
			return err
		}
		b.Values = append(b.Values, v)
	}
	return nil
}

func (b *byteList) EncodeContent(s *binio.Stream) error {
	for _, v := range b.Values {
		s.WriteU16(v)
	}
	return nil
}

var testKind = &Kind{
	Name:       "TestData",
	Version:    3,
	BufferSize: 0x40,
	Variants: []Variant{
		{Name: "Pair", Magic: pairMagic, New: func() Content { return new(pair) }},
		{Name: "List", Magic: bytesMagic, New: func() Content { return new(byteList) }},
	},
}

func padTo(b []byte, n int) []byte {
	return append(b, make([]byte, n-len(b))...)
}

func TestContainer_EncodeBigEndian(t *testing.T) {
	c := NewContainer(testKind)
	c.Chunks = append(c.Chunks, &pair{A: 7, B: 0x1234})

	w := binio.NewWriter(binio.BigEndian, 0)
	require.NoError(t, testKind.Encode(w, c))
	expected := padTo([]byte{
		0x03, 0x01, 0x00, 0x00,
		'P', 'A', 'I', 'R',
		0x00, 0x34, 0x62, 0xDA,
		0x00, 0x00, 0x00, 0x0F,
		0x07, 0x12, 0x34,
	}, 0x40)
	require.Equal(t, expected, w.Bytes())

	r := binio.NewReader(w.Bytes(), binio.BigEndian)
	decoded, err := testKind.Decode(r)
	require.NoError(t, err)
	require.Equal(t, 0x40, r.Pos())
	require.Equal(t, uint8(3), decoded.Version)
	require.Equal(t, c.Chunks, decoded.Chunks)
}

func TestContainer_EncodeLittleEndian(t *testing.T) {
	c := NewContainer(testKind)
	c.Chunks = append(c.Chunks, &pair{A: 7, B: 0x1234})

	w := binio.NewWriter(binio.LittleEndian, 0)
	require.NoError(t, testKind.Encode(w, c))
	expected := padTo([]byte{
		0x03, 0x01, 0x00, 0x00,
		'R', 'I', 'A', 'P',
		0xDA, 0x62, 0x34, 0x00,
		0x10, 0x00, 0x00, 0x00,
		0x07, 0x34, 0x12, 0x00,
	}, 0x40)
	require.Equal(t, expected, w.Bytes())

	r := binio.NewReader(w.Bytes(), binio.LittleEndian)
	decoded, err := testKind.Decode(r)
	require.NoError(t, err)
	require.Equal(t, c.Chunks, decoded.Chunks)
}

func TestContainer_RoundTripDeterministic(t *testing.T) {
	for _, e := range []binio.Endian{binio.BigEndian, binio.LittleEndian} {
		c := NewContainer(testKind)
		c.Chunks = []Content{
			&byteList{Values: []uint16{1, 2, 3}},
			&pair{A: 0xFF, B: 0xFFFF},
			&byteList{Values: []uint16{}},
		}

		w1 := binio.NewWriter(e, 0)
		require.NoError(t, testKind.Encode(w1, c))
		require.Equal(t, testKind.BufferSize, w1.Len())

		r := binio.NewReader(w1.Bytes(), e)
		decoded, err := testKind.Decode(r)
		require.NoError(t, err)
		require.Len(t, decoded.Chunks, 3)
		require.Equal(t, c.Chunks[1], decoded.Chunks[1])

		w2 := binio.NewWriter(e, 0)
		require.NoError(t, testKind.Encode(w2, decoded))
		require.Equal(t, w1.Bytes(), w2.Bytes(), e.String())
	}
}

func TestContainer_Empty(t *testing.T) {
	w := binio.NewWriter(binio.BigEndian, 0)
	require.NoError(t, testKind.Encode(w, NewContainer(testKind)))
	require.Equal(t, padTo([]byte{0x03, 0x00, 0x00, 0x00}, 0x40), w.Bytes())
}

func TestContainer_BudgetExceeded(t *testing.T) {
	c := NewContainer(testKind)
	c.Chunks = append(c.Chunks, &byteList{Values: make([]uint16, 32)})

	w := binio.NewWriter(binio.BigEndian, 0)
	err := testKind.Encode(w, c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, binio.ErrBudgetExceeded))
	var formatErr *binio.FormatError
	require.True(t, errors.As(err, &formatErr))
	require.Equal(t, uint64(0x40), formatErr.Expected)
	require.Equal(t, uint64(4+12+64), formatErr.Found)
}

func TestContainer_TooManyChunks(t *testing.T) {
	c := NewContainer(testKind)
	for i := 0; i < 256; i++ {
		c.Chunks = append(c.Chunks, &byteList{})
	}
	err := testKind.Encode(binio.NewWriter(binio.BigEndian, 0), c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, binio.ErrValueRange))
}

func TestContainer_UnknownMagic(t *testing.T) {
	data := padTo([]byte{0x03, 0x01, 0x00, 0x00, 'N', 'O', 'P', 'E'}, 0x40)
	_, err := testKind.Decode(binio.NewReader(data, binio.BigEndian))
	require.Error(t, err)
	assert.True(t, errors.Is(err, binio.ErrUnknownMagic))
	var formatErr *binio.FormatError
	require.True(t, errors.As(err, &formatErr))
	require.Equal(t, int64(4), formatErr.Offset)
	require.Equal(t, uint64(0x4E4F5045), formatErr.Found)
}

type stranger struct{ pair }

func (*stranger) Magic() uint32 { return 0x53545247 }

func TestContainer_EncodeUnknownVariant(t *testing.T) {
	c := NewContainer(testKind)
	c.Chunks = append(c.Chunks, &stranger{})
	err := testKind.Encode(binio.NewWriter(binio.BigEndian, 0), c)
	assert.True(t, errors.Is(err, binio.ErrUnknownMagic))
}

func TestContainer_HashMismatch(t *testing.T) {
	data := padTo([]byte{
		0x03, 0x01, 0x00, 0x00,
		'P', 'A', 'I', 'R',
		0xDE, 0xAD, 0xBE, 0xEF,
		0x00, 0x00, 0x00, 0x0F,
		0x07, 0x12, 0x34,
	}, 0x40)
	_, err := testKind.Decode(binio.NewReader(data, binio.BigEndian))
	require.Error(t, err)
	assert.True(t, errors.Is(err, binio.ErrHashMismatch))
	var formatErr *binio.FormatError
	require.True(t, errors.As(err, &formatErr))
	require.Equal(t, int64(8), formatErr.Offset)
	require.Equal(t, uint64(0x3462DA), formatErr.Expected)
	require.Equal(t, uint64(0xDEADBEEF), formatErr.Found)
}

func TestContainer_SizeMismatch(t *testing.T) {
	// declares 16 bytes but the content only consumes 15 on big-endian
	data := padTo([]byte{
		0x03, 0x01, 0x00, 0x00,
		'P', 'A', 'I', 'R',
		0x00, 0x34, 0x62, 0xDA,
		0x00, 0x00, 0x00, 0x10,
		0x07, 0x12, 0x34,
	}, 0x40)
	_, err := testKind.Decode(binio.NewReader(data, binio.BigEndian))
	require.Error(t, err)
	assert.True(t, errors.Is(err, binio.ErrSizeMismatch))
	var formatErr *binio.FormatError
	require.True(t, errors.As(err, &formatErr))
	require.Equal(t, uint64(16), formatErr.Expected)
	require.Equal(t, uint64(15), formatErr.Found)

	// the same bytes are fine on little-endian once padding is accounted for
	le := padTo([]byte{
		0x03, 0x01, 0x00, 0x00,
		'R', 'I', 'A', 'P',
		0xDA, 0x62, 0x34, 0x00,
		0x10, 0x00, 0x00, 0x00,
		0x07, 0x34, 0x12,
	}, 0x40)
	decoded, err := testKind.Decode(binio.NewReader(le, binio.LittleEndian))
	require.NoError(t, err)
	require.Equal(t, &pair{A: 7, B: 0x1234}, decoded.Chunks[0])
}

func TestContainer_SizeBeyondData(t *testing.T) {
	data := padTo([]byte{
		0x03, 0x01, 0x00, 0x00,
		'B', 'Y', 'T', 'S',
		0x12, 0x34, 0x56, 0x79,
		0xFF, 0xFF, 0xFF, 0xF0,
	}, 0x40)
	_, err := testKind.Decode(binio.NewReader(data, binio.BigEndian))
	require.True(t, errors.Is(err, binio.ErrSizeMismatch))
	var formatErr *binio.FormatError
	require.True(t, errors.As(err, &formatErr))
	require.Equal(t, int64(12), formatErr.Offset)
	require.Equal(t, uint64(0xFFFFFFF0), formatErr.Expected)
	require.Equal(t, uint64(0x40-4), formatErr.Found)
}

func TestContainer_Find(t *testing.T) {
	c := NewContainer(testKind)
	c.Chunks = []Content{&byteList{}, &pair{A: 1}}
	found, ok := c.Find(pairMagic)
	require.True(t, ok)
	require.Equal(t, &pair{A: 1}, found)
	_, ok = c.Find(0)
	require.False(t, ok)
}

func TestContainer_JSON(t *testing.T) {
	c := NewContainer(testKind)
	c.Chunks = []Content{&pair{A: 1, B: 2}, &byteList{Values: []uint16{9}}}

	b, err := json.Marshal(c)
	require.NoError(t, err)
	require.JSONEq(t, `[{"Pair":{"a":1,"b":2}},{"List":{"values":[9]}}]`, string(b))

	decoded := &Container{Kind: testKind}
	require.NoError(t, json.Unmarshal(b, decoded))
	require.Equal(t, c.Chunks, decoded.Chunks)
	require.Equal(t, uint8(3), decoded.Version)

	err = json.Unmarshal([]byte(`[{"Nope":{}}]`), decoded)
	require.Error(t, err)
	err = json.Unmarshal([]byte(`[{"Pair":{},"List":{}}]`), decoded)
	require.Error(t, err)
	err = json.Unmarshal([]byte(`[]`), &Container{})
	require.Error(t, err)
}
