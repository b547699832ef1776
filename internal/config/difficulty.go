package config

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases along the course.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "column" or "none"
	MaxAt int    `yaml:"max_at"` // Column at which max difficulty is reached
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *DogDashConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// DifficultyCurve maps a world column to a difficulty level in [0, 1].
// It is stateless: the same column always yields the same level.
type DifficultyCurve struct {
	cfg DifficultyConfig
}

// NewDifficultyCurve creates a curve from config.
func NewDifficultyCurve(cfg DifficultyConfig) DifficultyCurve {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0, 1)
	return DifficultyCurve{cfg: cfg}
}

// IsEnabled returns whether difficulty progresses along the course.
func (d DifficultyCurve) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty at the given column. With initial level 0
// this is min(1, column/max_at); a higher initial level shifts the whole
// ramp up while keeping it monotonic and capped at 1.
func (d DifficultyCurve) Level(column int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "column" {
		return d.cfg.InitialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(float64(column)/maxAt, 0.0, 1.0)

	return min(1.0, d.cfg.InitialLevel+progress*(1.0-d.cfg.InitialLevel))
}

func clampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
