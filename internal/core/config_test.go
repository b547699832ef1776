package core

import "testing"

func TestStepResultEnded(t *testing.T) {
	tests := []struct {
		events []Event
		want   bool
	}{
		{nil, false},
		{[]Event{EventJump, EventLand}, false},
		{[]Event{EventDeath}, true},
		{[]Event{EventPadBoost, EventWin}, true},
		{[]Event{EventStart}, false},
	}

	for _, tc := range tests {
		if got := (StepResult{Events: tc.events}).Ended(); got != tc.want {
			t.Errorf("Ended(%v) = %v, expected %v", tc.events, got, tc.want)
		}
	}
}
