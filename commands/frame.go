package commands

// FrameResponse carries the current frame as base64 PNG.
type FrameResponse struct {
	Format string `json:"format"`
	Data   string `json:"data"`
}

// FrameCommand captures the frame the display is currently showing.
func FrameCommand() *CommandResponse {
	d, err := requireDashboard()
	if err != nil {
		return NewErrorResponse(err)
	}
	data, err := d.FramePNG()
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(FrameResponse{Format: "png", Data: data})
}
