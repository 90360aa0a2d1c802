// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package galaxy defines the save data content of Super Mario Galaxy: the
// chunk types found in each user file and the container kinds and envelope
// format that hold them.
package galaxy

import (
	"strings"

	"github.com/bpowers/galaxysave/chunk"
	"github.com/bpowers/galaxysave/save"
)

// Chunk magic tags.
const (
	MagicPlayerStatus   = 0x504C4159 // PLAY
	MagicEventFlag      = 0x464C4731 // FLG1
	MagicStarPieceAlms  = 0x50434531 // PCE1
	MagicSpinDriverPath = 0x53504E31 // SPN1
	MagicEventValue     = 0x564C4531 // VLE1
	MagicGalaxy         = 0x47414C41 // GALA
	MagicCreate         = 0x434F4E46 // CONF
	MagicMii            = 0x4D494920 // "MII "
	MagicMisc           = 0x4D495343 // MISC
	MagicSysConfig      = 0x53595343 // SYSC
)

// GameData holds the progress of one character in one file.
var GameData = &chunk.Kind{
	Name:       "GameData",
	Version:    1,
	BufferSize: 0xF80,
	Variants: []chunk.Variant{
		{Name: "PlayerStatus", Magic: MagicPlayerStatus, New: func() chunk.Content { return NewPlayerStatus() }},
		{Name: "EventFlag", Magic: MagicEventFlag, New: func() chunk.Content { return new(EventFlags) }},
		{Name: "StarPieceAlms", Magic: MagicStarPieceAlms, New: func() chunk.Content { return new(StarPieceAlms) }},
		{Name: "SpinDriverPath", Magic: MagicSpinDriverPath, New: func() chunk.Content { return new(SpinDriverPaths) }},
		{Name: "EventValue", Magic: MagicEventValue, New: func() chunk.Content { return new(EventValues) }},
		{Name: "Galaxy", Magic: MagicGalaxy, New: func() chunk.Content { return new(GalaxyStorage) }},
	},
}

// ConfigData holds what a file's characters share.
var ConfigData = &chunk.Kind{
	Name:       "ConfigData",
	Version:    2,
	BufferSize: 0x60,
	Variants: []chunk.Variant{
		{Name: "Create", Magic: MagicCreate, New: func() chunk.Content { return new(Create) }},
		{Name: "Mii", Magic: MagicMii, New: func() chunk.Content { return NewMii() }},
		{Name: "Misc", Magic: MagicMisc, New: func() chunk.Content { return NewMisc() }},
	},
}

// SysConfigData holds what all files share.
var SysConfigData = &chunk.Kind{
	Name:       "SysConfigData",
	Version:    2,
	BufferSize: 0x80,
	Variants: []chunk.Variant{
		{Name: "SysConfig", Magic: MagicSysConfig, New: func() chunk.Content { return new(SysConfig) }},
	},
}

// Route maps a user file name to the container kind stored under it.
func Route(name string) *chunk.Kind {
	switch {
	case strings.HasPrefix(name, "mario"), strings.HasPrefix(name, "luigi"):
		return GameData
	case strings.HasPrefix(name, "config"):
		return ConfigData
	case name == "sysconf":
		return SysConfigData
	}
	return nil
}

// Format is the Super Mario Galaxy save file envelope.
var Format = &save.Format{
	Name:         "Super Mario Galaxy",
	Version:      2,
	MaxUserFiles: 23,
	MaxFileSize:  0xFFFF,
	Kinds:        []*chunk.Kind{GameData, ConfigData, SysConfigData},
	Route:        Route,
}
