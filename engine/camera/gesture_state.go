package camera

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// GestureState is the interaction mode the controller is currently in.
type GestureState int

const (
	StateNone GestureState = iota
	StateRotate
	StateDolly
	StatePan
	StateTouchRotate
	StateTouchPan
	StateTouchDollyPan
	StateTouchDollyRotate
)

var gestureStateNames = map[GestureState]string{
	StateNone:             "none",
	StateRotate:           "rotate",
	StateDolly:            "dolly",
	StatePan:              "pan",
	StateTouchRotate:      "touch_rotate",
	StateTouchPan:         "touch_pan",
	StateTouchDollyPan:    "touch_dolly_pan",
	StateTouchDollyRotate: "touch_dolly_rotate",
}

func (s GestureState) String() string {
	if name, ok := gestureStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("GestureState(%d)", int(s))
}

// MouseAction is what a mouse button does when pressed.
type MouseAction int

const (
	MouseActionNone MouseAction = iota
	MouseActionRotate
	MouseActionDolly
	MouseActionPan
)

var mouseActionNames = []string{"none", "rotate", "dolly", "pan"}

func (a MouseAction) String() string {
	if a >= 0 && int(a) < len(mouseActionNames) {
		return mouseActionNames[a]
	}
	return fmt.Sprintf("MouseAction(%d)", int(a))
}

// MarshalYAML encodes the action by name.
func (a MouseAction) MarshalYAML() (any, error) {
	return a.String(), nil
}

// UnmarshalYAML decodes an action name such as "rotate".
func (a *MouseAction) UnmarshalYAML(value *yaml.Node) error {
	idx, err := lookupName(value, mouseActionNames)
	if err != nil {
		return fmt.Errorf("mouse action: %w", err)
	}
	*a = MouseAction(idx)
	return nil
}

// TouchAction is what a one- or two-finger touch does.
type TouchAction int

const (
	TouchActionNone TouchAction = iota
	TouchActionRotate
	TouchActionPan
	TouchActionDollyPan
	TouchActionDollyRotate
)

var touchActionNames = []string{"none", "rotate", "pan", "dolly_pan", "dolly_rotate"}

func (a TouchAction) String() string {
	if a >= 0 && int(a) < len(touchActionNames) {
		return touchActionNames[a]
	}
	return fmt.Sprintf("TouchAction(%d)", int(a))
}

// MarshalYAML encodes the action by name.
func (a TouchAction) MarshalYAML() (any, error) {
	return a.String(), nil
}

// UnmarshalYAML decodes an action name such as "dolly_pan".
func (a *TouchAction) UnmarshalYAML(value *yaml.Node) error {
	idx, err := lookupName(value, touchActionNames)
	if err != nil {
		return fmt.Errorf("touch action: %w", err)
	}
	*a = TouchAction(idx)
	return nil
}

func lookupName(value *yaml.Node, names []string) (int, error) {
	var s string
	if err := value.Decode(&s); err != nil {
		return 0, err
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q (want one of %s)", s, strings.Join(names, ", "))
}
