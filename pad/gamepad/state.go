// Package gamepad models the full input state of a standard dual-stick
// gamepad and the closed catalog of named controls the web pad reports.
//
// Control names on the wire ("FACE_1", "LEFT_STICK_Y", ...) are partitioned
// into three disjoint classes: buttons carry boolean values, triggers carry
// floats in [0, 1], and stick axes carry floats in [-1, 1]. The mapping from
// a wire name to the field it updates is an explicit setter table built at
// init, so applying a control never involves reflection.
package gamepad

// Kind classifies a named control.
type Kind int

const (
	KindButton Kind = iota
	KindTrigger
	KindAxis
)

func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindTrigger:
		return "trigger"
	case KindAxis:
		return "axis"
	default:
		return "unknown"
	}
}

// Wire names for every control the web pad can report.
const (
	NameFace1 = "FACE_1"
	NameFace2 = "FACE_2"
	NameFace3 = "FACE_3"
	NameFace4 = "FACE_4"

	NameLeftTopShoulder     = "LEFT_TOP_SHOULDER"
	NameRightTopShoulder    = "RIGHT_TOP_SHOULDER"
	NameLeftBottomShoulder  = "LEFT_BOTTOM_SHOULDER"
	NameRightBottomShoulder = "RIGHT_BOTTOM_SHOULDER"

	NameHome         = "HOME"
	NameSelectBack   = "SELECT_BACK"
	NameStartForward = "START_FORWARD"

	NameLeftStick  = "LEFT_STICK"
	NameRightStick = "RIGHT_STICK"

	NameDPadUp    = "DPAD_UP"
	NameDPadDown  = "DPAD_DOWN"
	NameDPadLeft  = "DPAD_LEFT"
	NameDPadRight = "DPAD_RIGHT"

	NameLeftStickX  = "LEFT_STICK_X"
	NameLeftStickY  = "LEFT_STICK_Y"
	NameRightStickX = "RIGHT_STICK_X"
	NameRightStickY = "RIGHT_STICK_Y"
)

// State is a snapshot of every control on the pad. The zero value is the
// at-rest state. Each field is only ever written by its own named control.
type State struct {
	Face1 bool `json:"FACE_1"`
	Face2 bool `json:"FACE_2"`
	Face3 bool `json:"FACE_3"`
	Face4 bool `json:"FACE_4"`

	LeftTopShoulder     bool    `json:"LEFT_TOP_SHOULDER"`
	RightTopShoulder    bool    `json:"RIGHT_TOP_SHOULDER"`
	LeftBottomShoulder  float64 `json:"LEFT_BOTTOM_SHOULDER"`
	RightBottomShoulder float64 `json:"RIGHT_BOTTOM_SHOULDER"`

	Home         bool `json:"HOME"`
	SelectBack   bool `json:"SELECT_BACK"`
	StartForward bool `json:"START_FORWARD"`

	LeftStick  bool `json:"LEFT_STICK"`
	RightStick bool `json:"RIGHT_STICK"`

	DPadUp    bool `json:"DPAD_UP"`
	DPadDown  bool `json:"DPAD_DOWN"`
	DPadLeft  bool `json:"DPAD_LEFT"`
	DPadRight bool `json:"DPAD_RIGHT"`

	LeftStickX  float64 `json:"LEFT_STICK_X"`
	LeftStickY  float64 `json:"LEFT_STICK_Y"`
	RightStickX float64 `json:"RIGHT_STICK_X"`
	RightStickY float64 `json:"RIGHT_STICK_Y"`
}

// control binds a wire name to its class and the field it updates. Button
// setters treat exactly 1.0 as pressed; any other value releases the button.
type control struct {
	kind Kind
	set  func(*State, float64)
}

func button(set func(*State, bool)) control {
	return control{KindButton, func(s *State, v float64) { set(s, v == 1.0) }}
}

func trigger(set func(*State, float64)) control {
	return control{KindTrigger, set}
}

func axis(set func(*State, float64)) control {
	return control{KindAxis, set}
}

var controls = map[string]control{
	NameFace1: button(func(s *State, v bool) { s.Face1 = v }),
	NameFace2: button(func(s *State, v bool) { s.Face2 = v }),
	NameFace3: button(func(s *State, v bool) { s.Face3 = v }),
	NameFace4: button(func(s *State, v bool) { s.Face4 = v }),

	NameLeftTopShoulder:     button(func(s *State, v bool) { s.LeftTopShoulder = v }),
	NameRightTopShoulder:    button(func(s *State, v bool) { s.RightTopShoulder = v }),
	NameLeftBottomShoulder:  trigger(func(s *State, v float64) { s.LeftBottomShoulder = v }),
	NameRightBottomShoulder: trigger(func(s *State, v float64) { s.RightBottomShoulder = v }),

	NameHome:         button(func(s *State, v bool) { s.Home = v }),
	NameSelectBack:   button(func(s *State, v bool) { s.SelectBack = v }),
	NameStartForward: button(func(s *State, v bool) { s.StartForward = v }),

	NameLeftStick:  button(func(s *State, v bool) { s.LeftStick = v }),
	NameRightStick: button(func(s *State, v bool) { s.RightStick = v }),

	NameDPadUp:    button(func(s *State, v bool) { s.DPadUp = v }),
	NameDPadDown:  button(func(s *State, v bool) { s.DPadDown = v }),
	NameDPadLeft:  button(func(s *State, v bool) { s.DPadLeft = v }),
	NameDPadRight: button(func(s *State, v bool) { s.DPadRight = v }),

	NameLeftStickX:  axis(func(s *State, v float64) { s.LeftStickX = v }),
	NameLeftStickY:  axis(func(s *State, v float64) { s.LeftStickY = v }),
	NameRightStickX: axis(func(s *State, v float64) { s.RightStickX = v }),
	NameRightStickY: axis(func(s *State, v float64) { s.RightStickY = v }),
}

// Lookup reports the class of a wire control name. ok is false for names
// outside the catalog.
func Lookup(name string) (kind Kind, ok bool) {
	c, ok := controls[name]
	return c.kind, ok
}

// Controls returns all catalog names of the given kind, in no particular
// order.
func Controls(kind Kind) []string {
	var names []string
	for name, c := range controls {
		if c.kind == kind {
			names = append(names, name)
		}
	}
	return names
}

// Apply updates the field addressed by the named control and reports its
// class. ok is false (and the state untouched) for unknown names. Trigger
// and axis values are stored exactly as given; clamping is the sender's
// responsibility.
func (s *State) Apply(name string, value float64) (kind Kind, ok bool) {
	c, ok := controls[name]
	if !ok {
		return 0, false
	}
	c.set(s, value)
	return c.kind, true
}
