package config

import (
	_ "embed"
)

//go:embed defaults/dogdash.yaml
var defaultDogDashYAML []byte

// DefaultDogDashConfig returns the hardcoded default configuration.
// defaults/dogdash.yaml mirrors these values.
func DefaultDogDashConfig() DogDashConfig {
	return DogDashConfig{
		Physics: Physics{
			Gravity:     0.7,
			JumpImpulse: -12,
			PadImpulse:  -18,
			Speed:       5,
		},
		Player: Player{
			Size:          36,
			StartColumn:   3,
			InsetX:        5,
			InsetY:        3,
			LandTolerance: 4,
		},
		World: World{
			BlockSize:      40,
			Width:          800,
			Height:         500,
			GroundOffset:   80,
			ChunkSize:      40,
			GenAhead:       30,
			SafeZone:       10,
			EvictionWindow: 60,
			NearbyBlocks:   2,
			PitDeathDepth:  50,
			FallOutDepth:   100,
		},
		Generator: Generator{
			GapBand:          Ramp{Base: 0.05, Slope: 0.1},
			GapWideChance:    Ramp{Base: 0.3, Slope: 0.2},
			GapSpikeChance:   Ramp{Base: 0, Slope: 0.5},
			GapSpikeMinLevel: 0.3,

			PlatformBand:        Ramp{Base: 0.15, Slope: 0.1},
			PlatformSpikeChance: Ramp{Base: 0.4, Slope: 0.3},

			PadBand:     Ramp{Base: 0.2, Slope: 0.05},
			PadMinLevel: 0.2,
			PadRun:      Ramp{Base: 2, Slope: 4},

			ClusterSpread: Ramp{Base: 1, Slope: 2},

			MinGap:      Ramp{Base: 6, Slope: -4},
			MinGapFloor: 2,
			MaxGap:      Ramp{Base: 10, Slope: -5},
			MaxGapFloor: 3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "column",
				MaxAt: 400,
			},
		},
		Run: Run{
			RetryDelay: 30,
		},
		Levels: DefaultLevels(),
	}
}

// DefaultLevels returns the built-in fixed courses.
//
// Layout runes, one per column:
//
//	.  ground        ^  spike       #  block on the ground
//	=  raised block  p  pad         _  pit
//	|  finish line
func DefaultLevels() []Level {
	return []Level{
		{
			ID:     "01-backyard",
			Name:   "Backyard",
			Layout: "..........^......^.......##.......^^......__.......#....^.......__......^^......###...^......|",
		},
		{
			ID:     "02-park",
			Name:   "Park",
			Layout: "..........^^.....##...^.....___.....p^^^.....^..^.....=.=.....^^.....__..^.....p^^^^.....#...^^....|",
		},
		{
			ID:     "03-rooftops",
			Name:   "Rooftops",
			Layout: "..........^^^....___..^....##...^^....p^^^^....__...^^....###...^....___..^^....p^^^^^....==....^^^....|",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDogDashYAML
}
