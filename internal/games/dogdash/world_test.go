package dogdash

import (
	"testing"

	"github.com/vovakirdan/dogdash/internal/config"
)

func filledWorld(cfg config.DogDashConfig, columns int) *World {
	w := NewWorld(cfg.World, nil)
	bs := cfg.World.BlockSize
	for col := 0; col < columns; col++ {
		w.AddObstacle(Obstacle{Kind: KindSpike, X: float64(col) * bs, Y: cfg.World.GroundY() - bs})
		if col%5 == 0 {
			w.MarkPit(col)
		}
	}
	return w
}

func TestEvictBehind(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	bs := cfg.World.BlockSize
	w := filledWorld(cfg, 200)

	w.EvictBehind(100)

	cutoff := 100 - cfg.World.EvictionWindow
	obs := w.Obstacles()
	if len(obs) == 0 {
		t.Fatal("Eviction removed everything")
	}
	if first := obs[0].Column(bs); first != cutoff {
		t.Errorf("First live obstacle at column %d, want %d", first, cutoff)
	}
	if len(obs) != 200-cutoff {
		t.Errorf("Live obstacles = %d, want %d", len(obs), 200-cutoff)
	}

	for _, p := range w.Pits() {
		if p < cutoff {
			t.Errorf("Pit %d survived eviction", p)
		}
	}
	if w.IsPit(35) {
		t.Error("Evicted pit still reported")
	}
	if !w.IsPit(40) {
		t.Error("Pit at the window edge was evicted")
	}
}

func TestEvictionWindowDuringRun(t *testing.T) {
	_, w, cfg := newTestGenerator(11)
	bs := cfg.World.BlockSize

	for p := 0; p < 3000; p++ {
		w.EnsureGenerated(p)
		w.EvictBehind(p)

		if obs := w.Obstacles(); len(obs) > 0 && obs[0].Column(bs) < p-cfg.World.EvictionWindow {
			t.Fatalf("At column %d an obstacle at %d is behind the window", p, obs[0].Column(bs))
		}
		if pits := w.Pits(); len(pits) > 0 && pits[0] < p-cfg.World.EvictionWindow {
			t.Fatalf("At column %d a pit at %d is behind the window", p, pits[0])
		}
	}
}

func TestQueryNearby(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	bs := cfg.World.BlockSize
	w := filledWorld(cfg, 50)

	got := w.QueryNearby(10 * bs)
	if len(got) != 5 {
		t.Fatalf("QueryNearby returned %d obstacles, want 5", len(got))
	}
	for i, o := range got {
		if want := 8 + i; o.Column(bs) != want {
			t.Errorf("got[%d] at column %d, want %d", i, o.Column(bs), want)
		}
	}

	if got := w.QueryNearby(1000 * bs); len(got) != 0 {
		t.Errorf("QueryNearby far ahead returned %d obstacles", len(got))
	}
}

func TestPitsBetween(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	w := filledWorld(cfg, 50)

	got := w.PitsBetween(12, 31)
	want := []int{15, 20, 25, 30}
	if len(got) != len(want) {
		t.Fatalf("PitsBetween = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PitsBetween = %v, want %v", got, want)
		}
	}
}

func TestWorldOrderingPanics(t *testing.T) {
	cfg := config.DefaultDogDashConfig()

	tests := []struct {
		name string
		fn   func(w *World)
	}{
		{"obstacle out of order", func(w *World) {
			w.AddObstacle(Obstacle{Kind: KindSpike, X: 400})
			w.AddObstacle(Obstacle{Kind: KindSpike, X: 360})
		}},
		{"pit out of order", func(w *World) {
			w.MarkPit(12)
			w.MarkPit(11)
		}},
		{"duplicate pit", func(w *World) {
			w.MarkPit(12)
			w.MarkPit(12)
		}},
		{"generate backwards", func(w *World) {
			w.Generate(0, 40)
			w.Generate(0, 20)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Expected panic")
				}
			}()
			tt.fn(NewWorld(cfg.World, nil))
		})
	}
}
