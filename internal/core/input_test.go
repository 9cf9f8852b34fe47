package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	var f InputFrame
	if f.Has(ActionConfirm) {
		t.Error("zero frame should have no actions")
	}
	if !f.Empty() {
		t.Error("zero frame should be empty")
	}

	f.Set(ActionConfirm)
	f.Set(ActionLeft)
	if !f.Has(ActionConfirm) || !f.Has(ActionLeft) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Has(ActionCancel) {
		t.Error("unset action should not be reported")
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove all actions")
	}
	if !clone.Has(ActionConfirm) {
		t.Error("Clone should be independent of the original")
	}
}

func TestFrameOf(t *testing.T) {
	f := FrameOf(ActionCancel, ActionRight)
	if !f.Has(ActionCancel) || !f.Has(ActionRight) || f.Has(ActionConfirm) {
		t.Errorf("FrameOf built unexpected frame: %v", f.Actions)
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionLeft, "Left"},
		{ActionRight, "Right"},
		{ActionConfirm, "Confirm"},
		{ActionCancel, "Cancel"},
		{ActionLedger, "Ledger"},
		{ActionHelp, "Help"},
		{ActionQuit, "Quit"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}

func TestEventAttr(t *testing.T) {
	ev := Event{Name: "scene.completed", Attrs: []any{"scene", "1", "partner", "cat"}}
	if ev.Attr("scene") != "1" || ev.Attr("partner") != "cat" {
		t.Errorf("Attr lookups failed: %v", ev.Attrs)
	}
	if ev.Attr("missing") != "" {
		t.Error("missing attr should be empty")
	}
}
