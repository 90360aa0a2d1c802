// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command gen-testdata writes a random but well-formed save file, useful for
// exercising the converter by hand.
package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/bpowers/galaxysave"
	"github.com/bpowers/galaxysave/bitset"
	"github.com/bpowers/galaxysave/chunk"
	"github.com/bpowers/galaxysave/galaxy"
	"github.com/bpowers/galaxysave/hashcode"
	"github.com/bpowers/galaxysave/internal/fileio"
	"github.com/bpowers/galaxysave/pathtrace"
	"github.com/bpowers/galaxysave/save"
)

const (
	maxFlags     = 200
	maxValues    = 50
	maxGalaxies  = 20
	maxSpinPaths = 5
)

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		var seedBytes [8]byte
		_, _ = crand.Read(seedBytes[:])
		seed = int64(binary.LittleEndian.Uint64(seedBytes[:]))
	}
	return rand.New(rand.NewSource(seed))
}

func randomName(rng *rand.Rand) hashcode.Hash16 {
	return hashcode.Hash16(rng.Intn(1 << 16))
}

func randomTrace(rng *rand.Rand) pathtrace.Trace {
	var t pathtrace.Trace
	for z, n := 0, rng.Intn(3); z < n; z++ {
		g := pathtrace.ZoneGroup{Zone: int32(z)}
		for i, n := 0, 1+rng.Intn(4); i < n; i++ {
			// multiples of 1/256 survive encoding exactly
			p := float32(1+rng.Intn(256)) / 256
			g.Entries = append(g.Entries, pathtrace.Entry{Index: int32(i), Percentage: p})
		}
		t.Zones = append(t.Zones, g)
	}
	return t
}

func gameData(rng *rand.Rand) *chunk.Container {
	flags := &galaxy.EventFlags{}
	for i, n := 0, 2*(1+rng.Intn(maxFlags/2)); i < n; i++ {
		flags.Flags = append(flags.Flags, galaxy.NewEventFlag(hashcode.Hash(rng.Uint32()), rng.Intn(2) == 0))
	}

	values := &galaxy.EventValues{}
	for i, n := 0, 1+rng.Intn(maxValues); i < n; i++ {
		values.Values = append(values.Values, galaxy.EventValue{Key: randomName(rng), Value: uint16(rng.Intn(1 << 16))})
	}

	alms := &galaxy.StarPieceAlms{}
	for row := range alms.StarPieceNum {
		for i := range alms.StarPieceNum[row] {
			alms.StarPieceNum[row][i] = uint16(rng.Intn(1600))
		}
	}

	spin := &galaxy.SpinDriverPaths{}
	for i, n := 0, rng.Intn(maxSpinPaths); i < n; i++ {
		g := galaxy.SpinDriverGalaxy{GalaxyName: randomName(rng)}
		for j, m := 0, 1+rng.Intn(3); j < m; j++ {
			g.Scenarios = append(g.Scenarios, randomTrace(rng))
		}
		spin.Galaxies = append(spin.Galaxies, g)
	}

	storage := &galaxy.GalaxyStorage{}
	for i, n := 0, 1+rng.Intn(maxGalaxies); i < n; i++ {
		r := galaxy.GalaxyRecord{
			GalaxyName:    randomName(rng),
			PowerStarFlag: bitset.Array8(rng.Intn(256)),
			FirstPlayFlag: bitset.Array8(rng.Intn(256)),
		}
		for j := range r.MaxCoinNum {
			r.MaxCoinNum[j] = uint16(rng.Intn(200))
		}
		storage.Galaxies = append(storage.Galaxies, r)
	}

	c := chunk.NewContainer(galaxy.GameData)
	c.Chunks = []chunk.Content{
		&galaxy.PlayerStatus{
			StoryProgress:       uint8(rng.Intn(64)),
			StockedStarPieceNum: uint32(rng.Intn(9999)),
			PlayerLeft:          uint16(rng.Intn(99)),
		},
		flags,
		alms,
		spin,
		values,
		storage,
	}
	return c
}

func configData(rng *rand.Rand) *chunk.Container {
	mii := galaxy.NewMii()
	mii.IconID = galaxy.MiiIcon(rng.Intn(int(galaxy.IconPeach) + 1))
	_, _ = rng.Read(mii.MiiID[:])
	c := chunk.NewContainer(galaxy.ConfigData)
	c.Chunks = []chunk.Content{
		&galaxy.Create{IsCreated: true},
		mii,
		&galaxy.Misc{Flag: galaxy.MiscFlag(rng.Intn(8)), LastModified: rng.Int63()},
	}
	return c
}

// generate returns a save file with nFiles slots, each holding a config,
// a Mario and a Luigi entry, followed by the shared sysconf.
func generate(rng *rand.Rand, nFiles int) *save.File {
	file := &save.File{Format: galaxy.Format}
	for i := 1; i <= nFiles; i++ {
		file.UserFiles = append(file.UserFiles,
			save.UserFile{Name: fmt.Sprintf("config%d", i), Data: configData(rng)},
			save.UserFile{Name: fmt.Sprintf("mario%d", i), Data: gameData(rng)},
			save.UserFile{Name: fmt.Sprintf("luigi%d", i), Data: gameData(rng)},
		)
	}
	sys := chunk.NewContainer(galaxy.SysConfigData)
	sys.Chunks = []chunk.Content{&galaxy.SysConfig{
		TimeAnnounced: rng.Int63(),
		TimeSent:      rng.Int63(),
		SentBytes:     rng.Uint32(),
	}}
	file.UserFiles = append(file.UserFiles, save.UserFile{Name: "sysconf", Data: sys})
	return file
}

func main() {
	app := &cli.App{
		Name:      "gen-testdata",
		Usage:     "Write a random Super Mario Galaxy save file",
		ArgsUsage: "OUTPUT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "platform", Value: "wii", Usage: "Byte order to write: wii, shieldtv or switch"},
			&cli.IntFlag{Name: "files", Value: 1, Usage: "Number of file slots (1 to 7)"},
			&cli.Int64Flag{Name: "seed", Usage: "Random seed (0 picks one)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.ShowAppHelp(c)
			}
			p, err := galaxysave.ParsePlatform(c.String("platform"))
			if err != nil {
				return err
			}
			n := c.Int("files")
			if n < 1 || 3*n+1 > int(galaxy.Format.MaxUserFiles) {
				return fmt.Errorf("--files must be between 1 and %d", (galaxy.Format.MaxUserFiles-1)/3)
			}

			buf, err := galaxysave.Encode(generate(newRand(c.Int64("seed")), n), galaxysave.WithPlatform(p))
			if err != nil {
				return err
			}
			if _, err := fileio.WriteFileAtomic(c.Args().First(), buf, 0644); err != nil {
				return err
			}
			logrus.Infof("wrote %s (%d bytes)", c.Args().First(), len(buf))
			return nil
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
