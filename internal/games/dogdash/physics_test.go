package dogdash

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/dogdash/internal/config"
	"github.com/vovakirdan/dogdash/internal/core"
)

func groundedActor(cfg config.DogDashConfig, x float64) Actor {
	a := NewActor(cfg)
	a.X = x
	return a
}

func TestNewActor(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	a := NewActor(cfg)

	if a.X != 120 || a.Y != 384 || !a.Grounded || a.VY != 0 {
		t.Errorf("NewActor = %+v, want x=120 y=384 grounded", a)
	}
}

func TestGroundSnapIdempotent(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	p := NewPhysics(cfg)
	w := testWorld(t, cfg, nil)
	a := groundedActor(cfg, 400)

	for i := 0; i < 10; i++ {
		res := p.Step(&a, w, false, 0)
		if res.Outcome != OutcomeAlive {
			t.Fatalf("tick %d: outcome %v", i, res.Outcome)
		}
		if a.Y != 384 || a.VY != 0 || !a.Grounded {
			t.Fatalf("tick %d: actor drifted to %+v", i, a)
		}
		if core.Has(res.Events, core.EventLand) {
			t.Fatalf("tick %d: resting actor reported a landing", i)
		}
	}
}

func TestJump(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	p := NewPhysics(cfg)
	w := testWorld(t, cfg, nil)
	a := groundedActor(cfg, 400)

	res := p.Step(&a, w, true, 0)
	if !core.Has(res.Events, core.EventJump) {
		t.Fatal("Expected jump event")
	}
	if a.Grounded {
		t.Error("Actor still grounded after jump")
	}
	if want := cfg.Physics.JumpImpulse + cfg.Physics.Gravity; a.VY != want {
		t.Errorf("VY = %v, want %v", a.VY, want)
	}

	// A press while airborne is consumed without effect.
	vy := a.VY
	res = p.Step(&a, w, true, 0)
	if core.Has(res.Events, core.EventJump) {
		t.Error("Airborne press triggered a jump")
	}
	if want := vy + cfg.Physics.Gravity; a.VY != want {
		t.Errorf("VY = %v, want %v", a.VY, want)
	}
}

func TestJumpLandsAgain(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	p := NewPhysics(cfg)
	w := testWorld(t, cfg, nil)
	a := groundedActor(cfg, 400)

	p.Step(&a, w, true, 0)
	landed := false
	for i := 0; i < 60 && !landed; i++ {
		res := p.Step(&a, w, false, 0)
		landed = core.Has(res.Events, core.EventLand)
	}
	if !landed {
		t.Fatal("Actor never landed")
	}
	if a.Y != 384 || !a.Grounded {
		t.Errorf("Landed actor = %+v", a)
	}
}

func TestSpikeDeathDeterministic(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	p := NewPhysics(cfg)

	run := func() (Actor, TickResult) {
		w := testWorld(t, cfg, map[int]rune{20: RuneSpike})
		a := groundedActor(cfg, 780)
		res := p.Step(&a, w, false, 0)
		return a, res
	}

	a1, r1 := run()
	a2, r2 := run()

	if r1.Outcome != OutcomeDead || r1.Cause != CauseSpike {
		t.Fatalf("Outcome = %v cause %q, want spike death", r1.Outcome, r1.Cause)
	}
	if !core.Has(r1.Events, core.EventDeath) {
		t.Error("Expected death event")
	}
	if a1 != a2 || !reflect.DeepEqual(r1, r2) {
		t.Error("Identical ticks diverged")
	}
	if got := a1.Column(cfg.World.BlockSize); got != 19 {
		t.Errorf("Death column = %d, want 19", got)
	}
}

func TestSpikeMissedJustBefore(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	p := NewPhysics(cfg)
	w := testWorld(t, cfg, map[int]rune{20: RuneSpike})
	a := groundedActor(cfg, 770)

	// Hitbox right edge reaches 811 only at x=780.
	if res := p.Step(&a, w, false, 0); res.Outcome != OutcomeAlive {
		t.Fatalf("Actor at x=%v died early", a.X)
	}
}

func TestBlockAtColumn62(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	p := NewPhysics(cfg)

	t.Run("landing from above", func(t *testing.T) {
		w := testWorld(t, cfg, map[int]rune{62: RuneBlock})
		a := Actor{X: 2465, Y: 345, VY: 2}

		res := p.Step(&a, w, false, 0)
		if res.Outcome != OutcomeAlive {
			t.Fatalf("Outcome = %v cause %q, want alive", res.Outcome, res.Cause)
		}
		if a.Y != 380-cfg.Player.Size || a.VY != 0 || !a.Grounded {
			t.Errorf("Actor = %+v, want standing on block top", a)
		}
		if !core.Has(res.Events, core.EventBlock) {
			t.Error("Expected block landing event")
		}
	})

	t.Run("running into the side", func(t *testing.T) {
		w := testWorld(t, cfg, map[int]rune{62: RuneBlock})
		a := groundedActor(cfg, 2450)

		res := p.Step(&a, w, false, 0)
		if res.Outcome != OutcomeDead || res.Cause != CauseBlock {
			t.Fatalf("Outcome = %v cause %q, want block death", res.Outcome, res.Cause)
		}
	})
}

func TestPitDepth(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	p := NewPhysics(cfg)
	limit := cfg.World.Height + cfg.World.PitDeathDepth

	tests := []struct {
		name    string
		y       float64
		outcome Outcome
	}{
		{"just above the limit", limit - 1, OutcomeAlive},
		{"at the limit", limit, OutcomeAlive},
		{"past the limit", limit + 1, OutcomeDead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWorld(t, cfg, map[int]rune{20: RunePit})
			// Center lands on column 20 after moving; gravity cancels VY.
			a := Actor{X: 785, Y: tt.y, VY: -cfg.Physics.Gravity}

			res := p.Step(&a, w, false, 0)
			if res.Outcome != tt.outcome {
				t.Fatalf("y=%v: outcome %v, want %v", tt.y, res.Outcome, tt.outcome)
			}
			if tt.outcome == OutcomeDead && res.Cause != CausePit {
				t.Errorf("Cause = %q, want pit", res.Cause)
			}
			if tt.outcome == OutcomeAlive && a.Y != tt.y {
				t.Errorf("Y = %v, want %v", a.Y, tt.y)
			}
		})
	}
}

func TestFallIntoPit(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	p := NewPhysics(cfg)
	w := testWorld(t, cfg, map[int]rune{20: RunePit, 21: RunePit, 22: RunePit, 23: RunePit})
	a := groundedActor(cfg, 760)

	var res TickResult
	for i := 0; i < 40; i++ {
		res = p.Step(&a, w, false, 0)
		if res.Outcome != OutcomeAlive {
			break
		}
	}
	if res.Outcome != OutcomeDead || res.Cause != CausePit {
		t.Fatalf("Outcome = %v cause %q, want pit death", res.Outcome, res.Cause)
	}
}

func TestPadBoost(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	p := NewPhysics(cfg)

	t.Run("falling onto pad", func(t *testing.T) {
		w := testWorld(t, cfg, map[int]rune{20: RunePad})
		a := Actor{X: 775, Y: 380, VY: 5}

		res := p.Step(&a, w, false, 0)
		if !core.Has(res.Events, core.EventPadBoost) {
			t.Fatal("Expected pad boost")
		}
		if a.VY != cfg.Physics.PadImpulse {
			t.Errorf("VY = %v, want exactly %v", a.VY, cfg.Physics.PadImpulse)
		}
		if a.Grounded {
			t.Error("Boosted actor still grounded")
		}
		if a.VY >= cfg.Physics.JumpImpulse {
			t.Error("Pad boost is not stronger than a jump")
		}
	})

	t.Run("rising through pad", func(t *testing.T) {
		w := testWorld(t, cfg, map[int]rune{20: RunePad})
		a := Actor{X: 775, Y: 384, VY: -3}

		res := p.Step(&a, w, false, 0)
		if core.Has(res.Events, core.EventPadBoost) {
			t.Fatal("Rising actor was boosted")
		}
		if a.VY == cfg.Physics.PadImpulse {
			t.Error("VY replaced by pad impulse")
		}
		if res.Outcome != OutcomeAlive {
			t.Errorf("Pad killed the actor: %v", res.Cause)
		}
	})
}

func TestLethalContactBeatsPad(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	p := NewPhysics(cfg)

	tests := []struct {
		name  string
		next  rune
		cause Cause
	}{
		{"spike after pad", RuneSpike, CauseSpike},
		{"block side after pad", RuneBlock, CauseBlock},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testWorld(t, cfg, map[int]rune{20: RunePad, 21: tc.next})
			// Falling into both the pad at column 20 and the obstacle at 21.
			a := Actor{X: 820, Y: 380, VY: 2}

			res := p.Step(&a, w, false, 0)
			if res.Outcome != OutcomeDead {
				t.Fatalf("Outcome = %v, want dead", res.Outcome)
			}
			if res.Cause != tc.cause {
				t.Errorf("Cause = %q, want %q", res.Cause, tc.cause)
			}
			if core.Has(res.Events, core.EventPadBoost) {
				t.Errorf("Events = %v, pad fired after a lethal contact", res.Events)
			}
			if a.VY == cfg.Physics.PadImpulse {
				t.Error("VY replaced by pad impulse")
			}
		})
	}
}

func TestFinishLine(t *testing.T) {
	cfg := config.DefaultDogDashConfig()
	p := NewPhysics(cfg)
	course := testCourse(t, cfg, 15, nil)
	w := NewWorld(cfg.World, course)

	a := groundedActor(cfg, 590)
	if res := p.Step(&a, w, false, course.FinishX()); res.Outcome != OutcomeAlive {
		t.Fatalf("Completed before the finish at x=%v", a.X)
	}
	res := p.Step(&a, w, false, course.FinishX())
	if res.Outcome != OutcomeComplete || !core.Has(res.Events, core.EventWin) {
		t.Fatalf("Outcome = %v, want complete at x=%v", res.Outcome, a.X)
	}
}

func TestStepExtendsAndTrimsWorld(t *testing.T) {
	_, w, cfg := newTestGenerator(5)
	p := NewPhysics(cfg)
	a := groundedActor(cfg, 200*cfg.World.BlockSize)

	p.Step(&a, w, false, 0)
	if w.GeneratedUpTo() < 200+cfg.World.GenAhead {
		t.Errorf("GeneratedUpTo = %d, want at least %d", w.GeneratedUpTo(), 200+cfg.World.GenAhead)
	}
	for _, o := range w.Obstacles() {
		if o.Column(cfg.World.BlockSize) < 200-cfg.World.EvictionWindow {
			t.Fatalf("Obstacle at column %d not evicted", o.Column(cfg.World.BlockSize))
		}
	}
}
