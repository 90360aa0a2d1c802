// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package galaxysave converts Super Mario Galaxy and Super Mario Galaxy 2
// save files between their binary form and JSON.
package galaxysave

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/galaxy"
	"github.com/bpowers/galaxysave/galaxy2"
	"github.com/bpowers/galaxysave/hashcode"
	"github.com/bpowers/galaxysave/internal/fileio"
	"github.com/bpowers/galaxysave/save"
)

// Game selects which title's save layout to use.
type Game int

const (
	Galaxy Game = iota
	Galaxy2
)

func (g Game) String() string {
	switch g {
	case Galaxy:
		return "galaxy"
	case Galaxy2:
		return "galaxy2"
	}
	return fmt.Sprintf("Game(%d)", int(g))
}

// ParseGame resolves a game name, ignoring case.
func ParseGame(name string) (Game, error) {
	switch strings.ToLower(name) {
	case "galaxy", "smg", "smg1":
		return Galaxy, nil
	case "galaxy2", "smg2":
		return Galaxy2, nil
	}
	return 0, fmt.Errorf("unknown game %q (want galaxy or galaxy2)", name)
}

func (g Game) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Game) UnmarshalText(text []byte) error {
	v, err := ParseGame(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// Format returns the save file envelope of g.
func (g Game) Format() *save.Format {
	if g == Galaxy2 {
		return galaxy2.Format
	}
	return galaxy.Format
}

// Platform is a release of the game.  It decides the byte order of the save
// file and the text encoding of hashed labels.
type Platform int

const (
	Wii Platform = iota
	ShieldTV
	Switch
)

func (p Platform) String() string {
	switch p {
	case Wii:
		return "wii"
	case ShieldTV:
		return "shieldtv"
	case Switch:
		return "switch"
	}
	return fmt.Sprintf("Platform(%d)", int(p))
}

// ParsePlatform resolves a platform name, ignoring case.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(name) {
	case "wii":
		return Wii, nil
	case "shieldtv", "shield-tv", "shield":
		return ShieldTV, nil
	case "switch":
		return Switch, nil
	}
	return 0, fmt.Errorf("unknown platform %q (want wii, shieldtv or switch)", name)
}

func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Platform) UnmarshalText(text []byte) error {
	v, err := ParsePlatform(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Endian returns the byte order of save files written by p.
func (p Platform) Endian() binio.Endian {
	if p == Switch {
		return binio.LittleEndian
	}
	return binio.BigEndian
}

// Encoding returns the text encoding p hashes labels with.
func (p Platform) Encoding() hashcode.Encoding {
	if p == Switch {
		return hashcode.UTF8
	}
	return hashcode.ShiftJIS
}

// Option configures conversions.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	game     Game
	platform Platform
	force    bool
	strict   bool
}

// WithLogger sets an optional logger for progress updates.  If not provided,
// no logging output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithGame selects the title a save file belongs to.  The default is Galaxy.
func WithGame(g Game) Option {
	return func(opts *options) {
		opts.game = g
	}
}

// WithPlatform selects the release a save file belongs to.  The default is Wii.
func WithPlatform(p Platform) Option {
	return func(opts *options) {
		opts.platform = p
	}
}

// WithForce skips header validation and the checksum check when decoding.
func WithForce(force bool) Option {
	return func(opts *options) {
		opts.force = force
	}
}

// WithStrictLabels makes LoadLabels reject unknown labels in later JSON
// input instead of hashing them.
func WithStrictLabels(strict bool) Option {
	return func(opts *options) {
		opts.strict = strict
	}
}

func newOptions(opts []Option) options {
	var o options
	o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Check verifies the header and checksum of a binary save file.
func Check(buf []byte, opts ...Option) error {
	o := newOptions(opts)
	return check(buf, o)
}

func check(buf []byte, o options) error {
	err := o.game.Format().Check(buf, o.platform.Endian())
	o.logger.Info("header check",
		"game", o.game,
		"platform", o.platform,
		"size", len(buf),
		"ok", err == nil)
	return err
}

// Decode parses a binary save file.  Unless WithForce is given the header
// and checksum must be valid.
func Decode(buf []byte, opts ...Option) (*save.File, error) {
	o := newOptions(opts)
	o.logger.Debug("decoding", "fingerprint", fmt.Sprintf("%016x", fileio.Fingerprint(buf)))

	var decodeOpts []save.DecodeOption
	if o.force {
		decodeOpts = append(decodeOpts, save.SkipValidation())
	} else if err := check(buf, o); err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}

	file, err := o.game.Format().Decode(buf, o.platform.Endian(), decodeOpts...)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	logUserFiles(o.logger, "decoded", file)
	return file, nil
}

// Encode serializes file in the byte order of the configured platform.
func Encode(file *save.File, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	buf, err := o.game.Format().Encode(file, o.platform.Endian())
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	logUserFiles(o.logger, "encoded", file)
	o.logger.Debug("encoded",
		"size", len(buf),
		"fingerprint", fmt.Sprintf("%016x", fileio.Fingerprint(buf)))
	return buf, nil
}

func logUserFiles(logger *slog.Logger, op string, file *save.File) {
	logger.Info(op, "user_files", len(file.UserFiles))
	for _, uf := range file.UserFiles {
		if uf.Data == nil || uf.Data.Kind == nil {
			continue
		}
		logger.Debug("user file",
			"name", uf.Name,
			"kind", uf.Data.Kind.Name,
			"chunks", len(uf.Data.Chunks))
	}
}

// ToJSON converts a binary save file to indented JSON.
func ToJSON(buf []byte, opts ...Option) ([]byte, error) {
	file, err := Decode(buf, opts...)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}
	return data, nil
}

// FromJSON converts the JSON form produced by ToJSON back to a binary save
// file.
func FromJSON(data []byte, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	file := &save.File{Format: o.game.Format()}
	if err := json.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}
	return Encode(file, opts...)
}

// DefaultLabelsFile is read by LoadLabels when no path is given.
const DefaultLabelsFile = "labels.txt"

// LoadLabels adds the newline separated labels in path to the default
// registry, hashing them with the configured platform's encoding.  An empty
// path means DefaultLabelsFile.
func LoadLabels(path string, opts ...Option) error {
	o := newOptions(opts)
	if path == "" {
		path = DefaultLabelsFile
	}
	reg := hashcode.Default()
	if err := reg.ReadFile(o.platform.Encoding(), path); err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	reg.SetStrict(o.strict)
	o.logger.Info("labels loaded", "path", path, "count", reg.Len(), "strict", o.strict)
	return nil
}

// OutputPath returns where ConvertFile writes by default: JSON input becomes
// "<name>.bin" and anything else becomes "<input>.json".
func OutputPath(input string) string {
	if isJSON(input) {
		return strings.TrimSuffix(input, filepath.Ext(input)) + ".bin"
	}
	return input + ".json"
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// ConvertFile converts input to the other form, choosing the direction by
// the input's extension, and writes the result to output (or OutputPath when
// output is empty).  It returns the path written.
func ConvertFile(input, output string, opts ...Option) (string, error) {
	o := newOptions(opts)
	if output == "" {
		output = OutputPath(input)
	}

	in, err := fileio.ReadFile(input)
	if err != nil {
		return "", err
	}

	var out []byte
	if isJSON(input) {
		out, err = FromJSON(in, opts...)
	} else {
		out, err = ToJSON(in, opts...)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", input, err)
	}

	written, err := fileio.WriteFileAtomic(output, out, 0644)
	if err != nil {
		return "", err
	}
	o.logger.Info("converted",
		"input", input,
		"output", output,
		"bytes", len(out),
		"unchanged", !written)
	return output, nil
}
