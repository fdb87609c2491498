package gamepad

// Accessors named after the physical Xbox-style pad. Game code reads these
// rather than the raw wire-named fields.
//
// The raw vertical stick values grow downward on the wire; LeftY and RightY
// invert the sign so positive means up, which is what movement code expects.

// A reports the bottom face button.
func (s State) A() bool { return s.Face1 }

// B reports the right face button.
func (s State) B() bool { return s.Face2 }

// X reports the left face button.
func (s State) X() bool { return s.Face3 }

// Y reports the top face button.
func (s State) Y() bool { return s.Face4 }

// LB and RB report the shoulder bumpers.
func (s State) LB() bool { return s.LeftTopShoulder }
func (s State) RB() bool { return s.RightTopShoulder }

// LT and RT report the analog triggers, 0 released to 1 fully pressed.
func (s State) LT() float64 { return s.LeftBottomShoulder }
func (s State) RT() float64 { return s.RightBottomShoulder }

// Back and Start report the center cluster buttons.
func (s State) Back() bool  { return s.SelectBack }
func (s State) Start() bool { return s.StartForward }

// LS and RS report the stick click buttons.
func (s State) LS() bool { return s.LeftStick }
func (s State) RS() bool { return s.RightStick }

// D-pad directions.
func (s State) Up() bool    { return s.DPadUp }
func (s State) Down() bool  { return s.DPadDown }
func (s State) Left() bool  { return s.DPadLeft }
func (s State) Right() bool { return s.DPadRight }

// LeftX is the left stick horizontal axis, -1 full left to 1 full right.
func (s State) LeftX() float64 { return s.LeftStickX }

// LeftY is the left stick vertical axis, -1 full down to 1 full up.
func (s State) LeftY() float64 { return -s.LeftStickY }

// RightX is the right stick horizontal axis, -1 full left to 1 full right.
func (s State) RightX() float64 { return s.RightStickX }

// RightY is the right stick vertical axis, -1 full down to 1 full up.
func (s State) RightY() float64 { return -s.RightStickY }
