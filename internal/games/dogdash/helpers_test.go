package dogdash

import (
	"strings"
	"testing"

	"github.com/vovakirdan/dogdash/internal/config"
)

// testCourse builds a course of plain ground with the given runes placed by
// column and a finish line at finish.
func testCourse(t *testing.T, cfg config.DogDashConfig, finish int, marks map[int]rune) *Course {
	t.Helper()

	layout := []rune(strings.Repeat(".", finish+1))
	for col, r := range marks {
		layout[col] = r
	}
	layout[finish] = RuneFinish

	c, err := ParseCourse(config.Level{ID: "test", Name: "Test", Layout: string(layout)}, cfg.World)
	if err != nil {
		t.Fatalf("ParseCourse: %v", err)
	}
	return c
}

// testWorld builds a world fed by a fixed course.
func testWorld(t *testing.T, cfg config.DogDashConfig, marks map[int]rune) *World {
	t.Helper()
	return NewWorld(cfg.World, testCourse(t, cfg, 200, marks))
}
