package controller

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedEvent reports a state-update payload that could not be decoded
// into a control event. Decoding is all-or-nothing; callers drop the message.
var ErrMalformedEvent = errors.New("malformed control event")

// ControlEvent is one decoded state update from the web pad: a control name
// and its new numeric value. Events are consumed immediately and never
// stored.
type ControlEvent struct {
	Control string  `json:"control"`
	Value   float64 `json:"value"`
}

// DecodeControlEvent parses the JSON payload of an update_state message.
// Both fields are required and must have the right types; extra fields are
// ignored.
func DecodeControlEvent(payload []byte) (ControlEvent, error) {
	var raw struct {
		Control *string  `json:"control"`
		Value   *float64 `json:"value"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return ControlEvent{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if raw.Control == nil || raw.Value == nil {
		return ControlEvent{}, fmt.Errorf("%w: missing control or value", ErrMalformedEvent)
	}
	return ControlEvent{Control: *raw.Control, Value: *raw.Value}, nil
}
