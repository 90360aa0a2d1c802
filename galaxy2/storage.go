// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package galaxy2

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/bpowers/galaxysave/binio"
	"github.com/bpowers/galaxysave/chunk"
	"github.com/bpowers/galaxysave/galaxy"
	"github.com/bpowers/galaxysave/hashcode"
)

var (
	stageSchema = chunk.NewSchema(
		chunk.Field{Name: "mGalaxyName", Size: 2},
		chunk.Field{Name: "mDataSize", Size: 2},
		chunk.Field{Name: "mScenarioNum", Size: 1},
		chunk.Field{Name: "mGalaxyState", Size: 1},
		chunk.Field{Name: "mFlag", Size: 1},
		chunk.Field{Name: "scenario", Skip: true},
	)
	scenarioSchema = chunk.NewSchema(
		chunk.Field{Name: "mMissNum", Size: 1},
		chunk.Field{Name: "mBestTime", Size: 4},
		chunk.Field{Name: "mFlag", Size: 1},
	)
)

// GalaxyState is the state of a galaxy's node on the world map.
type GalaxyState uint8

const (
	GalaxyClosed GalaxyState = iota
	GalaxyNew
	GalaxyOpened
)

var galaxyStateNames = [...]string{"Closed", "New", "Opened"}

func (g GalaxyState) valid() bool {
	return int(g) < len(galaxyStateNames)
}

func (g GalaxyState) String() string {
	if !g.valid() {
		return fmt.Sprintf("GalaxyState(%d)", uint8(g))
	}
	return galaxyStateNames[g]
}

func (g GalaxyState) MarshalText() ([]byte, error) {
	if !g.valid() {
		return nil, fmt.Errorf("invalid galaxy state %d", uint8(g))
	}
	return []byte(galaxyStateNames[g]), nil
}

func (g *GalaxyState) UnmarshalText(text []byte) error {
	for v, name := range galaxyStateNames {
		if name == string(text) {
			*g = GalaxyState(v)
			return nil
		}
	}
	return fmt.Errorf("unknown galaxy state %q", text)
}

// GalaxyFlag holds the flag bits of a galaxy.
type GalaxyFlag uint8

const (
	// GalaxyTicoCoin is set once the comet medal was collected.
	GalaxyTicoCoin GalaxyFlag = 1 << iota
	// GalaxyComet is set while a prankster comet is in orbit.
	GalaxyComet
)

type galaxyFlagJSON struct {
	TicoCoin bool `json:"tico_coin"`
	Comet    bool `json:"comet"`
}

func (f GalaxyFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(galaxyFlagJSON{
		TicoCoin: f&GalaxyTicoCoin != 0,
		Comet:    f&GalaxyComet != 0,
	})
}

func (f *GalaxyFlag) UnmarshalJSON(data []byte) error {
	var v galaxyFlagJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = 0
	if v.TicoCoin {
		*f |= GalaxyTicoCoin
	}
	if v.Comet {
		*f |= GalaxyComet
	}
	return nil
}

// ScenarioFlag holds the flag bits of a mission.
type ScenarioFlag uint8

const (
	ScenarioPowerStar ScenarioFlag = 1 << iota
	ScenarioBronzeStar
	ScenarioAlreadyVisited
	// ScenarioGhostLuigi is set when the Luigi ghost may appear.
	ScenarioGhostLuigi
	// ScenarioIntrusivelyLuigi is set once Luigi has waited on standby.
	ScenarioIntrusivelyLuigi
)

type scenarioFlagJSON struct {
	PowerStar        bool `json:"power_star"`
	BronzeStar       bool `json:"bronze_star"`
	AlreadyVisited   bool `json:"already_visited"`
	GhostLuigi       bool `json:"ghost_luigi"`
	IntrusivelyLuigi bool `json:"intrusively_luigi"`
}

func (f ScenarioFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(scenarioFlagJSON{
		PowerStar:        f&ScenarioPowerStar != 0,
		BronzeStar:       f&ScenarioBronzeStar != 0,
		AlreadyVisited:   f&ScenarioAlreadyVisited != 0,
		GhostLuigi:       f&ScenarioGhostLuigi != 0,
		IntrusivelyLuigi: f&ScenarioIntrusivelyLuigi != 0,
	})
}

func (f *ScenarioFlag) UnmarshalJSON(data []byte) error {
	var v scenarioFlagJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = 0
	for bit, set := range []bool{v.PowerStar, v.BronzeStar, v.AlreadyVisited, v.GhostLuigi, v.IntrusivelyLuigi} {
		if set {
			*f |= 1 << bit
		}
	}
	return nil
}

// Scenario is the state of one mission.
type Scenario struct {
	MissNum uint8 `json:"miss_num"`
	// BestTime is the best clear time in frames.
	BestTime uint32       `json:"best_time"`
	Flag     ScenarioFlag `json:"flag"`
}

// Stage is the state of one galaxy.
type Stage struct {
	GalaxyName hashcode.Hash16 `json:"galaxy_name"`
	// DataSize is stored as found; the game fills it in.
	DataSize    uint16      `json:"data_size"`
	GalaxyState GalaxyState `json:"galaxy_state"`
	Flag        GalaxyFlag  `json:"flag"`
	Scenarios   []Scenario  `json:"scenario"`
}

// GalaxyStorage is the GALA chunk.  Its stages are preceded by the field
// descriptor tables of stages and scenarios.
type GalaxyStorage struct {
	Galaxies []Stage `json:"galaxy"`
}

func (*GalaxyStorage) HashCode() hashcode.Hash {
	return hashcode.Hash(scenarioSchema.DataSize() + stageSchema.HeaderSize() + 2)
}

func (*GalaxyStorage) Magic() uint32 { return galaxy.MagicGalaxy }

func (g *GalaxyStorage) DecodeContent(s *binio.Stream, _ int) error {
	n, err := s.ReadU16()
	if err != nil {
		return err
	}
	if err := stageSchema.Skip(s); err != nil {
		return err
	}
	if err := scenarioSchema.Skip(s); err != nil {
		return err
	}
	g.Galaxies = make([]Stage, 0, n)
	for i := 0; i < int(n); i++ {
		var st Stage
		if err := st.decode(s); err != nil {
			return err
		}
		g.Galaxies = append(g.Galaxies, st)
	}
	return nil
}

func (st *Stage) decode(s *binio.Stream) error {
	name, err := s.ReadU16()
	if err != nil {
		return err
	}
	st.GalaxyName = hashcode.Hash16(name)
	if st.DataSize, err = s.ReadU16(); err != nil {
		return err
	}
	num, err := s.ReadU8()
	if err != nil {
		return err
	}
	pos := s.Pos()
	state, err := s.ReadU8()
	if err != nil {
		return err
	}
	st.GalaxyState = GalaxyState(state)
	if !st.GalaxyState.valid() {
		return binio.Mismatch(pos, binio.ErrValueRange, uint64(len(galaxyStateNames)-1), uint64(state))
	}
	flag, err := s.ReadU8()
	if err != nil {
		return err
	}
	st.Flag = GalaxyFlag(flag)
	st.Scenarios = make([]Scenario, num)
	for i := range st.Scenarios {
		sc := &st.Scenarios[i]
		if sc.MissNum, err = s.ReadU8(); err != nil {
			return err
		}
		if sc.BestTime, err = s.ReadU32(); err != nil {
			return err
		}
		flag, err := s.ReadU8()
		if err != nil {
			return err
		}
		sc.Flag = ScenarioFlag(flag)
	}
	return nil
}

func (g *GalaxyStorage) EncodeContent(s *binio.Stream) error {
	if len(g.Galaxies) > math.MaxUint16 {
		return binio.Mismatch(s.Pos(), binio.ErrValueRange, math.MaxUint16, uint64(len(g.Galaxies)))
	}
	s.WriteU16(uint16(len(g.Galaxies)))
	stageSchema.Encode(s)
	scenarioSchema.Encode(s)
	for _, st := range g.Galaxies {
		if err := st.encode(s); err != nil {
			return err
		}
	}
	return nil
}

func (st *Stage) encode(s *binio.Stream) error {
	if len(st.Scenarios) > math.MaxUint8 {
		return binio.Mismatch(s.Pos(), binio.ErrValueRange, math.MaxUint8, uint64(len(st.Scenarios)))
	}
	if !st.GalaxyState.valid() {
		return binio.Mismatch(s.Pos(), binio.ErrValueRange, uint64(len(galaxyStateNames)-1), uint64(st.GalaxyState))
	}
	s.WriteU16(uint16(st.GalaxyName))
	s.WriteU16(st.DataSize)
	s.WriteU8(uint8(len(st.Scenarios)))
	s.WriteU8(uint8(st.GalaxyState))
	s.WriteU8(uint8(st.Flag))
	for _, sc := range st.Scenarios {
		s.WriteU8(sc.MissNum)
		s.WriteU32(sc.BestTime)
		s.WriteU8(uint8(sc.Flag))
	}
	return nil
}

// Galaxy returns the state of the galaxy named name.
func (g *GalaxyStorage) Galaxy(name hashcode.Hash) (*Stage, bool) {
	for i := range g.Galaxies {
		if name.Equal16(g.Galaxies[i].GalaxyName) {
			return &g.Galaxies[i], true
		}
	}
	return nil, false
}
