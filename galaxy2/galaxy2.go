// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package galaxy2 defines the save data content of Super Mario Galaxy 2.
// Chunks whose layout is unchanged from the first game are shared with
// package galaxy.
package galaxy2

import (
	"strings"

	"github.com/bpowers/galaxysave/chunk"
	"github.com/bpowers/galaxysave/galaxy"
	"github.com/bpowers/galaxysave/save"
)

// Chunk magic tags new to this game.
const (
	MagicTicoFat  = 0x53544631 // STF1
	MagicWorldMap = 0x5353574D // SSWM
)

// GameData holds the progress of one file.
var GameData = &chunk.Kind{
	Name:       "GameData",
	Version:    2,
	BufferSize: 0xF80,
	Variants: []chunk.Variant{
		{Name: "PlayerStatus", Magic: galaxy.MagicPlayerStatus, New: func() chunk.Content { return NewPlayerStatus() }},
		{Name: "EventFlag", Magic: galaxy.MagicEventFlag, New: func() chunk.Content { return new(galaxy.EventFlags) }},
		{Name: "TicoFat", Magic: MagicTicoFat, New: func() chunk.Content { return new(TicoFat) }},
		{Name: "EventValue", Magic: galaxy.MagicEventValue, New: func() chunk.Content { return new(galaxy.EventValues) }},
		{Name: "Galaxy", Magic: galaxy.MagicGalaxy, New: func() chunk.Content { return new(GalaxyStorage) }},
		{Name: "WorldMap", Magic: MagicWorldMap, New: func() chunk.Content { return NewWorldMap() }},
	},
}

// ConfigData holds the icon and timestamps of one file.
var ConfigData = &chunk.Kind{
	Name:       "ConfigData",
	Version:    2,
	BufferSize: 0x60,
	Variants: []chunk.Variant{
		{Name: "Create", Magic: galaxy.MagicCreate, New: func() chunk.Content { return new(galaxy.Create) }},
		{Name: "Mii", Magic: galaxy.MagicMii, New: func() chunk.Content { return NewMii() }},
		{Name: "Misc", Magic: galaxy.MagicMisc, New: func() chunk.Content { return new(Misc) }},
	},
}

// SysConfigData holds what all files share.
var SysConfigData = &chunk.Kind{
	Name:       "SysConfigData",
	Version:    2,
	BufferSize: 0x80,
	Variants: []chunk.Variant{
		{Name: "SysConfig", Magic: galaxy.MagicSysConfig, New: func() chunk.Content { return new(SysConfig) }},
	},
}

// Route maps a user file name to the container kind stored under it.
func Route(name string) *chunk.Kind {
	switch {
	case strings.HasPrefix(name, "user"):
		return GameData
	case strings.HasPrefix(name, "config"):
		return ConfigData
	case name == "sysconf":
		return SysConfigData
	}
	return nil
}

// Format is the Super Mario Galaxy 2 save file envelope.
var Format = &save.Format{
	Name:         "Super Mario Galaxy 2",
	Version:      galaxy.Format.Version,
	MaxUserFiles: galaxy.Format.MaxUserFiles,
	MaxFileSize:  galaxy.Format.MaxFileSize,
	Kinds:        []*chunk.Kind{GameData, ConfigData, SysConfigData},
	Route:        Route,
}
