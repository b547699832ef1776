package dogdash

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/dogdash/internal/config"
)

func TestDefaultLevelsParse(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	courses, err := LoadCourses(cfg)
	if err != nil {
		t.Fatalf("LoadCourses: %v", err)
	}
	if len(courses) != len(cfg.Levels) {
		t.Fatalf("Parsed %d courses, want %d", len(courses), len(cfg.Levels))
	}
	for _, c := range courses {
		if c.FinishColumn() != c.Len()-1 {
			t.Errorf("%s: finish at %d, layout length %d", c.ID, c.FinishColumn(), c.Len())
		}
	}
}

func TestParseCourseErrors(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	safe := strings.Repeat(".", cfg.World.SafeZone)

	tests := []struct {
		name   string
		layout string
	}{
		{"unknown rune", safe + "..x..|"},
		{"no finish", safe + "..^.."},
		{"two finishes", safe + "..|..|"},
		{"hazard in start zone", "..^" + safe + "|"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCourse(config.Level{ID: "bad", Layout: tt.layout}, cfg.World)
			if err == nil {
				t.Fatal("Expected error")
			}
		})
	}

	_, err := ParseCourse(config.Level{ID: "bad", Layout: safe + "..."}, cfg.World)
	if !errors.Is(err, ErrNoFinish) {
		t.Errorf("err = %v, want ErrNoFinish", err)
	}
}

func TestLoadCoursesDuplicateID(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	cfg.Levels = append(cfg.Levels, cfg.Levels[0])

	if _, err := LoadCourses(cfg); err == nil {
		t.Fatal("Expected duplicate id error")
	}
}

func TestCourseFill(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	bs := cfg.World.BlockSize
	ground := cfg.World.GroundY() - bs

	c := testCourse(t, cfg, 30, map[int]rune{
		12: RuneSpike,
		14: RuneBlock,
		16: RuneRaisedBlock,
		18: RunePad,
		20: RunePit,
	})
	w := NewWorld(cfg.World, c)
	w.Generate(0, 40)

	want := []Obstacle{
		{Kind: KindSpike, X: 12 * bs, Y: ground},
		{Kind: KindBlock, X: 14 * bs, Y: ground},
		{Kind: KindBlock, X: 16 * bs, Y: ground - bs},
		{Kind: KindPad, X: 18 * bs, Y: ground},
	}
	got := w.Obstacles()
	if len(got) != len(want) {
		t.Fatalf("Obstacles = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Obstacle %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if !w.IsPit(20) || w.IsPit(19) {
		t.Error("Pit placement wrong")
	}
	if c.FinishX() != 30*bs {
		t.Errorf("FinishX = %v, want %v", c.FinishX(), 30*bs)
	}
}
