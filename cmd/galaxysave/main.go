// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command galaxysave converts Super Mario Galaxy and Super Mario Galaxy 2 save
// files to JSON and back.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/bpowers/galaxysave"
	"github.com/bpowers/galaxysave/internal/fileio"
)

// flags returns the options shared by every command.
func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "game", Aliases: []string{"g"}, Value: "galaxy", Usage: "Game the save file belongs to: galaxy or galaxy2", EnvVars: []string{"GALAXYSAVE_GAME"}},
		&cli.StringFlag{Name: "platform", Aliases: []string{"p"}, Value: "wii", Usage: "Release the save file comes from: wii, shieldtv or switch", EnvVars: []string{"GALAXYSAVE_PLATFORM"}},
		&cli.StringFlag{Name: "labels", Aliases: []string{"l"}, TakesFile: true, Usage: "Newline separated labels used to name hashes (default \"" + galaxysave.DefaultLabelsFile + "\" when present)"},
		&cli.BoolFlag{Name: "strict", Usage: "Reject labels in JSON input that are not in the labels file"},
		&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Skip header and checksum validation"},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, TakesFile: true, Usage: "TOML config file (default \"" + defaultConfigFile + "\" when present)"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Log progress of the conversion"},
	}
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	app := &cli.App{
		Name:      "galaxysave",
		Usage:     "Super Mario Galaxy 1 and 2 save file converter",
		ArgsUsage: "INPUT [OUTPUT]",
		Flags:     flags(),
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Action: convert,
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "Convert a binary save file to JSON, or a .json file back to binary",
				ArgsUsage: "INPUT [OUTPUT]",
				Flags:     flags(),
				Action:    convert,
			},
			{
				Name:      "check",
				Usage:     "Verify the header and checksum of a binary save file",
				ArgsUsage: "INPUT",
				Flags:     flags(),
				Action:    check,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func libraryOptions(c *cli.Context, s settings) []galaxysave.Option {
	out := io.Discard
	if c.Bool("verbose") {
		out = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return []galaxysave.Option{
		galaxysave.WithLogger(logger),
		galaxysave.WithGame(s.game),
		galaxysave.WithPlatform(s.platform),
		galaxysave.WithForce(s.force),
		galaxysave.WithStrictLabels(s.strict),
	}
}

func loadLabels(s settings, opts []galaxysave.Option) error {
	if s.labels != "" {
		return galaxysave.LoadLabels(s.labels, opts...)
	}
	if err := galaxysave.LoadLabels("", opts...); err != nil {
		logrus.Infof("no labels loaded: %s", err)
	}
	return nil
}

func convert(c *cli.Context) error {
	if c.NArg() < 1 || c.NArg() > 2 {
		return cli.ShowAppHelp(c)
	}
	s, err := resolveSettings(c)
	if err != nil {
		return err
	}
	opts := libraryOptions(c, s)
	if err := loadLabels(s, opts); err != nil {
		return err
	}

	input := c.Args().Get(0)
	output, err := galaxysave.ConvertFile(input, c.Args().Get(1), opts...)
	if err != nil {
		return errors.Wrapf(err, "converting %s", input)
	}
	logrus.Infof("%s -> %s", input, output)
	return nil
}

func check(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowSubcommandHelp(c)
	}
	s, err := resolveSettings(c)
	if err != nil {
		return err
	}
	input := c.Args().First()
	buf, err := fileio.ReadFile(input)
	if err != nil {
		return err
	}
	if err := galaxysave.Check(buf, libraryOptions(c, s)...); err != nil {
		return errors.Wrapf(err, "checking %s", input)
	}
	logrus.Infof("%s: ok (%s on %s, %d bytes, fingerprint %016x)", input, s.game, s.platform, len(buf), fileio.Fingerprint(buf))
	fmt.Println("ok")
	return nil
}
