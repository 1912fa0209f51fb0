package server

import (
	"encoding/json"
	"fmt"

	"github.com/inkdash/inkdash/commands"
)

// HandlerFunc is the signature for JSON-RPC method handlers.
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// GetMethodRegistry returns a map of method names to handler functions.
// The HTTP endpoint and the websocket share it.
func GetMethodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"screens":         handleScreens,
		"screen_goto":     handleScreenGoto,
		"io_tap":          handleIoTap,
		"io_swipe":        handleIoSwipe,
		"io_longpress":    handleIoLongPress,
		"widgets_refresh": handleWidgetsRefresh,
		"frame":           handleFrame,
		"config_get":      handleConfigGet,
		"config_set":      handleConfigSet,
		"zip_prompt":      handleZipPrompt,
	}
}

// Execute dispatches a method call using the registry.
func Execute(method string, params json.RawMessage) (interface{}, error) {
	handler, exists := GetMethodRegistry()[method]
	if !exists {
		return nil, fmt.Errorf("method not found: %s", method)
	}
	return handler(params)
}

func unwrap(response *commands.CommandResponse) (interface{}, error) {
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	if response.Data != nil {
		return response.Data, nil
	}
	return okResponse, nil
}

func handleScreens(json.RawMessage) (interface{}, error) {
	return unwrap(commands.ScreensCommand())
}

type ScreenGotoParams struct {
	Name string `json:"name"`
}

func handleScreenGoto(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: name")
	}
	var p ScreenGotoParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v. Expected fields: name", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("'name' is required")
	}
	return unwrap(commands.ScreenGotoCommand(p.Name))
}

type IoTapParams struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func handleIoTap(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: x, y")
	}
	var p IoTapParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v. Expected fields: x, y", err)
	}
	return unwrap(commands.TapCommand(commands.TapRequest{X: p.X, Y: p.Y}))
}

type IoSwipeParams struct {
	Direction string `json:"direction"`
}

func handleIoSwipe(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: direction")
	}
	var p IoSwipeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v. Expected fields: direction", err)
	}
	return unwrap(commands.SwipeCommand(commands.SwipeRequest{Direction: p.Direction}))
}

type IoLongPressParams struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func handleIoLongPress(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: x, y")
	}
	var p IoLongPressParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v. Expected fields: x, y", err)
	}
	return unwrap(commands.LongPressCommand(commands.LongPressRequest{X: p.X, Y: p.Y}))
}

func handleWidgetsRefresh(json.RawMessage) (interface{}, error) {
	return unwrap(commands.RefreshCommand())
}

func handleFrame(json.RawMessage) (interface{}, error) {
	result, err := unwrap(commands.FrameCommand())
	if err != nil {
		return nil, err
	}
	if frame, ok := result.(commands.FrameResponse); ok {
		return map[string]interface{}{
			"format": frame.Format,
			"data":   fmt.Sprintf("data:image/%s;base64,%s", frame.Format, frame.Data),
		}, nil
	}
	return nil, fmt.Errorf("unexpected response format")
}

type ConfigGetParams struct {
	Key string `json:"key,omitempty"`
}

func handleConfigGet(params json.RawMessage) (interface{}, error) {
	var p ConfigGetParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %v. Expected fields: key", err)
		}
	}
	return unwrap(commands.ConfigGetCommand(p.Key))
}

type ConfigSetParams struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func handleConfigSet(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: key, value")
	}
	var p ConfigSetParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v. Expected fields: key, value", err)
	}
	if p.Key == "" {
		return nil, fmt.Errorf("'key' is required")
	}
	return unwrap(commands.ConfigSetCommand(p.Key, p.Value))
}

func handleZipPrompt(json.RawMessage) (interface{}, error) {
	return unwrap(commands.ZipPromptCommand())
}
