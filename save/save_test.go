// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package save

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/checksum"
	"github.com/bpowers/galaxysave/chunk"
	"github.com/bpowers/galaxysave/hashcode"
)

const noteMagic = 0x4E4F5445 // NOTE

type note struct {
	Value uint32 `json:"value"`
}

func (*note) HashCode() hashcode.Hash { return hashcode.FromString("note") }
func (*note) Magic() uint32           { return noteMagic }

func (n *note) DecodeContent(s *binio.Stream, _ int) error {
	var err error
	n.Value, err = s.ReadU32()
	return err
}

func (n *note) EncodeContent(s *binio.Stream) error {
	s.WriteU32(n.Value)
	return nil
}

var (
	noteVariant = chunk.Variant{Name: "Note", Magic: noteMagic, New: func() chunk.Content { return new(note) }}
	gameKind    = &chunk.Kind{Name: "GameData", Version: 1, BufferSize: 0x20, Variants: []chunk.Variant{noteVariant}}
	confKind    = &chunk.Kind{Name: "ConfigData", Version: 2, BufferSize: 0x10, Variants: []chunk.Variant{noteVariant}}
)

func testFormat() *Format {
	return &Format{
		Name:         "test",
		Version:      2,
		MaxUserFiles: 3,
		MaxFileSize:  0xFFFF,
		Kinds:        []*chunk.Kind{gameKind, confKind},
		Route: func(name string) *chunk.Kind {
			switch {
			case strings.HasPrefix(name, "mario"), strings.HasPrefix(name, "luigi"):
				return gameKind
			case strings.HasPrefix(name, "config"):
				return confKind
			}
			return nil
		},
	}
}

func testFile(f *Format) *File {
	game := chunk.NewContainer(gameKind)
	game.Chunks = []chunk.Content{&note{Value: 7}}
	return &File{
		Format: f,
		UserFiles: []UserFile{
			{Name: "mario1", Data: game},
			{Name: "config1", Data: chunk.NewContainer(confKind)},
		},
	}
}

func TestEncode_Layout(t *testing.T) {
	f := testFormat()
	buf, err := f.Encode(testFile(f), binio.BigEndian)
	require.NoError(t, err)
	require.Len(t, buf, 16+2*16+0x20+0x10)

	be := binary.BigEndian
	require.Equal(t, uint32(2), be.Uint32(buf[4:]))
	require.Equal(t, uint32(2), be.Uint32(buf[8:]))
	require.Equal(t, uint32(96), be.Uint32(buf[12:]))
	require.Equal(t, uint32(checksum.BigEndian(buf[4:])), be.Uint32(buf[0:]))

	require.Equal(t, []byte("mario1\x00\x00\x00\x00\x00\x00"), buf[16:28])
	require.Equal(t, uint32(48), be.Uint32(buf[28:]))
	require.Equal(t, []byte("config1\x00\x00\x00\x00\x00"), buf[32:44])
	require.Equal(t, uint32(80), be.Uint32(buf[44:]))

	// game container: version, count, reserved, then the NOTE chunk
	require.Equal(t, []byte{0x01, 0x01, 0x00, 0x00, 'N', 'O', 'T', 'E'}, buf[48:56])
	require.Equal(t, []byte{0x02, 0x00, 0x00, 0x00}, buf[80:84])

	require.NoError(t, f.Check(buf, binio.BigEndian))
}

func TestRoundTrip(t *testing.T) {
	f := testFormat()
	for _, e := range []binio.Endian{binio.BigEndian, binio.LittleEndian} {
		orig := testFile(f)
		buf, err := f.Encode(orig, e)
		require.NoError(t, err)
		require.NoError(t, f.Check(buf, e))

		decoded, err := f.Decode(buf, e)
		require.NoError(t, err)
		require.Len(t, decoded.UserFiles, 2)
		require.Equal(t, "mario1", decoded.UserFiles[0].Name)
		require.Equal(t, gameKind, decoded.UserFiles[0].Data.Kind)
		require.Equal(t, orig.UserFiles[0].Data.Chunks, decoded.UserFiles[0].Data.Chunks)
		require.Equal(t, confKind, decoded.UserFiles[1].Data.Kind)
		require.Empty(t, decoded.UserFiles[1].Data.Chunks)

		again, err := f.Encode(decoded, e)
		require.NoError(t, err)
		require.Equal(t, buf, again, e.String())

		c, ok := decoded.Lookup("config1")
		require.True(t, ok)
		require.Equal(t, uint8(2), c.Version)
		_, ok = decoded.Lookup("luigi1")
		require.False(t, ok)
	}
}

func TestEncode_Empty(t *testing.T) {
	f := testFormat()
	buf, err := f.Encode(&File{Format: f}, binio.LittleEndian)
	require.NoError(t, err)
	require.Len(t, buf, HeaderSize)
	require.NoError(t, f.Check(buf, binio.LittleEndian))

	decoded, err := f.Decode(buf, binio.LittleEndian)
	require.NoError(t, err)
	require.Empty(t, decoded.UserFiles)
}

func TestCheck_CorruptChecksum(t *testing.T) {
	f := testFormat()
	buf, err := f.Encode(testFile(f), binio.BigEndian)
	require.NoError(t, err)
	stored := binary.BigEndian.Uint32(buf)
	buf[0] ^= 0xFF

	err = f.Check(buf, binio.BigEndian)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChecksum))
	var headerErr *HeaderError
	require.True(t, errors.As(err, &headerErr))
	require.Equal(t, uint64(stored^0xFF000000), headerErr.Expected)
	require.Equal(t, uint64(stored), headerErr.Found)

	// the structure is still intact
	decoded, err := f.Decode(buf, binio.BigEndian, SkipValidation())
	require.NoError(t, err)
	require.Len(t, decoded.UserFiles, 2)
}

func TestValidate_FileSizeMismatch(t *testing.T) {
	f := testFormat()
	buf, err := f.Encode(testFile(f), binio.BigEndian)
	require.NoError(t, err)
	buf = append(buf, 0)

	err = f.Check(buf, binio.BigEndian)
	require.Error(t, err)
	var headerErr *HeaderError
	require.True(t, errors.As(err, &headerErr))
	require.True(t, errors.Is(err, ErrFileSizeMismatch))
	require.Equal(t, uint64(96), headerErr.Expected)
	require.Equal(t, uint64(97), headerErr.Found)
	require.Equal(t, "declared file size does not match the data length (expected 96, found 97)", err.Error())

	_, err = f.Decode(buf, binio.BigEndian)
	require.True(t, errors.Is(err, ErrFileSizeMismatch))

	decoded, err := f.Decode(buf, binio.BigEndian, SkipValidation())
	require.NoError(t, err)
	require.Len(t, decoded.UserFiles, 2)
}

func TestValidate_Limits(t *testing.T) {
	f := testFormat()
	buf, err := f.Encode(testFile(f), binio.LittleEndian)
	require.NoError(t, err)

	h, err := ReadHeader(buf, binio.LittleEndian)
	require.NoError(t, err)
	require.NoError(t, f.Validate(h, buf))

	bad := h
	bad.Version = 3
	assert.True(t, errors.Is(f.Validate(bad, buf), ErrVersion))

	bad = h
	bad.UserFileCount = 4
	assert.True(t, errors.Is(f.Validate(bad, buf), ErrTooManyUserFiles))

	small := testFormat()
	small.MaxFileSize = 64
	assert.True(t, errors.Is(small.Validate(h, buf), ErrFileTooLarge))

	_, err = ReadHeader(buf[:10], binio.LittleEndian)
	assert.True(t, errors.Is(err, binio.ErrUnexpectedEOF))
}

func TestEncode_Errors(t *testing.T) {
	f := testFormat()

	_, err := f.Encode(&File{UserFiles: []UserFile{{Name: "bogus", Data: chunk.NewContainer(gameKind)}}}, binio.BigEndian)
	assert.True(t, errors.Is(err, binio.ErrUnknownUserFile))

	_, err = f.Encode(&File{UserFiles: []UserFile{{Name: "mario1", Data: chunk.NewContainer(confKind)}}}, binio.BigEndian)
	assert.True(t, errors.Is(err, ErrKindMismatch))

	_, err = f.Encode(&File{UserFiles: []UserFile{{Name: "mario_too_long", Data: chunk.NewContainer(gameKind)}}}, binio.BigEndian)
	assert.True(t, errors.Is(err, binio.ErrNameTooLong))

	many := &File{}
	for i := 0; i < 4; i++ {
		many.UserFiles = append(many.UserFiles, UserFile{Name: "config1", Data: chunk.NewContainer(confKind)})
	}
	_, err = f.Encode(many, binio.BigEndian)
	assert.True(t, errors.Is(err, ErrTooManyUserFiles))

	small := testFormat()
	small.MaxFileSize = 64
	_, err = small.Encode(testFile(small), binio.BigEndian)
	assert.True(t, errors.Is(err, ErrFileTooLarge))

	full := testFile(f)
	for i := 0; i < 3; i++ {
		full.UserFiles[0].Data.Chunks = append(full.UserFiles[0].Data.Chunks, &note{})
	}
	_, err = f.Encode(full, binio.BigEndian)
	assert.True(t, errors.Is(err, binio.ErrBudgetExceeded))
}

func TestDecode_UnknownUserFile(t *testing.T) {
	f := testFormat()
	buf, err := f.Encode(testFile(f), binio.BigEndian)
	require.NoError(t, err)
	copy(buf[32:44], "sysconf\x00")

	_, err = f.Decode(buf, binio.BigEndian)
	require.Error(t, err)
	assert.True(t, errors.Is(err, binio.ErrUnknownUserFile))
	var formatErr *binio.FormatError
	require.True(t, errors.As(err, &formatErr))
	require.Equal(t, int64(32), formatErr.Offset)
}

func TestJSON_RoundTrip(t *testing.T) {
	f := testFormat()
	orig := testFile(f)

	b, err := json.Marshal(orig)
	require.NoError(t, err)
	require.JSONEq(t, `{"user_file_info":[
		{"name":"mario1","user_file":{"GameData":[{"Note":{"value":7}}]}},
		{"name":"config1","user_file":{"ConfigData":[]}}
	]}`, string(b))

	decoded := &File{Format: f}
	require.NoError(t, json.Unmarshal(b, decoded))

	want, err := f.Encode(orig, binio.BigEndian)
	require.NoError(t, err)
	got, err := f.Encode(decoded, binio.BigEndian)
	require.NoError(t, err)
	require.Equal(t, want, got)

	err = json.Unmarshal([]byte(`{"user_file_info":[{"name":"mario1","user_file":{"Nope":[]}}]}`), decoded)
	require.Error(t, err)
	err = json.Unmarshal(b, &File{})
	require.Error(t, err)
}
