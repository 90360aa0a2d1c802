// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/bpowers/galaxysave"
)

const defaultConfigFile = "galaxysave.toml"

// config holds settings that may come from the config file.  Flags given on
// the command line take precedence.
type config struct {
	Game     string `toml:"game"`
	Platform string `toml:"platform"`
	Labels   string `toml:"labels"`
	Strict   bool   `toml:"strict"`
	Force    bool   `toml:"force"`
}

// loadConfig reads path.  A missing file is only an error when the path was
// asked for explicitly.
func loadConfig(path string, explicit bool) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// settings are the resolved options of one invocation.
type settings struct {
	game     galaxysave.Game
	platform galaxysave.Platform
	labels   string
	strict   bool
	force    bool
}

func resolveSettings(c *cli.Context) (settings, error) {
	path := defaultConfigFile
	if c.IsSet("config") {
		path = c.String("config")
	}
	cfg, err := loadConfig(path, c.IsSet("config"))
	if err != nil {
		return settings{}, err
	}

	if c.IsSet("game") || cfg.Game == "" {
		cfg.Game = c.String("game")
	}
	if c.IsSet("platform") || cfg.Platform == "" {
		cfg.Platform = c.String("platform")
	}
	if c.IsSet("labels") {
		cfg.Labels = c.String("labels")
	}
	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}
	if c.IsSet("force") {
		cfg.Force = c.Bool("force")
	}

	g, err := galaxysave.ParseGame(cfg.Game)
	if err != nil {
		return settings{}, err
	}
	p, err := galaxysave.ParsePlatform(cfg.Platform)
	if err != nil {
		return settings{}, err
	}
	if cfg.Strict && cfg.Labels == "" {
		return settings{}, errors.New("--strict requires --labels")
	}
	return settings{
		game:     g,
		platform: p,
		labels:   cfg.Labels,
		strict:   cfg.Strict,
		force:    cfg.Force,
	}, nil
}
