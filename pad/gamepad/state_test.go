package gamepad_test

import (
	"testing"

	"github.com/incognitojam/minepad/pad/gamepad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogPartition(t *testing.T) {
	buttons := gamepad.Controls(gamepad.KindButton)
	triggers := gamepad.Controls(gamepad.KindTrigger)
	axes := gamepad.Controls(gamepad.KindAxis)

	assert.Len(t, buttons, 15)
	assert.Len(t, triggers, 2)
	assert.Len(t, axes, 4)

	seen := make(map[string]bool)
	for _, name := range append(append(buttons, triggers...), axes...) {
		assert.False(t, seen[name], "control %s appears in more than one class", name)
		seen[name] = true

		_, ok := gamepad.Lookup(name)
		assert.True(t, ok, "catalog name %s must resolve", name)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := gamepad.Lookup("TOUCHPAD")
	assert.False(t, ok)
}

func TestApplyButton(t *testing.T) {
	cases := []struct {
		name    string
		value   float64
		pressed bool
	}{
		{"wire 1.0 is pressed", 1.0, true},
		{"wire 0.0 is released", 0.0, false},
		{"non-binary value is released", 0.5, false},
		{"negative value is released", -1.0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var s gamepad.State
			kind, ok := s.Apply(gamepad.NameFace1, tc.value)
			require.True(t, ok)
			assert.Equal(t, gamepad.KindButton, kind)
			assert.Equal(t, tc.pressed, s.Face1)
		})
	}
}

func TestApplyStoresWireValueExactly(t *testing.T) {
	var s gamepad.State

	kind, ok := s.Apply(gamepad.NameLeftBottomShoulder, 0.421875)
	require.True(t, ok)
	assert.Equal(t, gamepad.KindTrigger, kind)
	assert.Equal(t, 0.421875, s.LeftBottomShoulder)

	// No clamping inside the model; out-of-range values pass through.
	kind, ok = s.Apply(gamepad.NameRightStickX, 1.5)
	require.True(t, ok)
	assert.Equal(t, gamepad.KindAxis, kind)
	assert.Equal(t, 1.5, s.RightStickX)
}

func TestApplyUnknownLeavesStateUntouched(t *testing.T) {
	var s gamepad.State
	_, ok := s.Apply("NOT_A_CONTROL", 1.0)
	assert.False(t, ok)
	assert.Equal(t, gamepad.State{}, s)
}

func TestApplyIndependentFields(t *testing.T) {
	var s gamepad.State
	s.Apply(gamepad.NameFace2, 1.0)
	s.Apply(gamepad.NameLeftStickX, -0.5)

	assert.True(t, s.Face2)
	assert.Equal(t, -0.5, s.LeftStickX)
	assert.False(t, s.Face1)
	assert.Zero(t, s.RightStickX)
}

func TestAccessors(t *testing.T) {
	s := gamepad.State{
		Face1: true, Face2: true, Face3: true, Face4: true,
		LeftTopShoulder: true, RightTopShoulder: true,
		LeftBottomShoulder: 0.25, RightBottomShoulder: 0.75,
		SelectBack: true, StartForward: true,
		LeftStick: true, RightStick: true,
		DPadUp: true, DPadDown: true, DPadLeft: true, DPadRight: true,
		LeftStickX: 0.1, LeftStickY: 0.2, RightStickX: 0.3, RightStickY: 0.4,
	}

	assert.True(t, s.A())
	assert.True(t, s.B())
	assert.True(t, s.X())
	assert.True(t, s.Y())
	assert.True(t, s.LB())
	assert.True(t, s.RB())
	assert.Equal(t, 0.25, s.LT())
	assert.Equal(t, 0.75, s.RT())
	assert.True(t, s.Back())
	assert.True(t, s.Start())
	assert.True(t, s.LS())
	assert.True(t, s.RS())
	assert.True(t, s.Up())
	assert.True(t, s.Down())
	assert.True(t, s.Left())
	assert.True(t, s.Right())
	assert.Equal(t, 0.1, s.LeftX())
	assert.Equal(t, 0.3, s.RightX())
}

func TestVerticalAxesInvertedAtReadTime(t *testing.T) {
	var s gamepad.State
	s.Apply(gamepad.NameLeftStickY, -0.75)
	s.Apply(gamepad.NameRightStickY, 0.5)

	// Raw wire values are stored as-is; the accessors flip the sign so
	// positive means up.
	assert.Equal(t, -0.75, s.LeftStickY)
	assert.Equal(t, 0.75, s.LeftY())
	assert.Equal(t, 0.5, s.RightStickY)
	assert.Equal(t, -0.5, s.RightY())
}
