package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() {
		t.Fatal("zero frame not empty")
	}

	f.Set(ActionJump)
	f.Set(ActionJump)
	f.Set(ActionNone)

	if !f.Has(ActionJump) {
		t.Error("jump not recorded")
	}
	if f.Has(ActionPause) || f.Has(ActionNone) {
		t.Error("unexpected action recorded")
	}

	// Frames are values
	g := f
	g.Set(ActionPause)
	if f.Has(ActionPause) {
		t.Error("copy shares state with original")
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionJump) {
		t.Error("Clear kept presses")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionJump, "jump"},
		{ActionRestart, "restart"},
		{ActionQuit, "quit"},
		{Action(200), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
