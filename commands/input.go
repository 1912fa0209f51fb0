package commands

import (
	"fmt"
)

// TapRequest taps the display at x,y in display coordinates.
type TapRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SwipeRequest injects a directional swipe.
type SwipeRequest struct {
	Direction string `json:"direction"` // "left", "right", "up", "down"
}

// LongPressRequest long-presses the display at x,y.
type LongPressRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TapCommand injects a tap gesture, going through the same dispatch path
// as a physical touch.
func TapCommand(req TapRequest) *CommandResponse {
	d, err := requireDashboard()
	if err != nil {
		return NewErrorResponse(err)
	}
	if err := d.InjectGesture("tap", req.X, req.Y); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]string{"screen": d.CurrentScreen()})
}

// SwipeCommand injects a directional swipe gesture.
func SwipeCommand(req SwipeRequest) *CommandResponse {
	d, err := requireDashboard()
	if err != nil {
		return NewErrorResponse(err)
	}
	switch req.Direction {
	case "left", "right", "up", "down":
	default:
		return NewErrorResponse(fmt.Errorf("invalid direction %q, expected left, right, up or down", req.Direction))
	}
	if err := d.InjectGesture("swipe_"+req.Direction, 0, 0); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]string{"screen": d.CurrentScreen()})
}

// LongPressCommand injects a long-press gesture.
func LongPressCommand(req LongPressRequest) *CommandResponse {
	d, err := requireDashboard()
	if err != nil {
		return NewErrorResponse(err)
	}
	if err := d.InjectGesture("long_press", req.X, req.Y); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(nil)
}
