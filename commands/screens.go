package commands

// ScreensCommand lists the configured screens and which one is active.
func ScreensCommand() *CommandResponse {
	d, err := requireDashboard()
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(d.Screens())
}

// ScreenGotoCommand jumps to the named screen.
func ScreenGotoCommand(name string) *CommandResponse {
	d, err := requireDashboard()
	if err != nil {
		return NewErrorResponse(err)
	}
	if err := d.GoToScreen(name); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]string{"screen": name})
}

// ZipPromptCommand opens the on-screen numpad for postal code entry.
func ZipPromptCommand() *CommandResponse {
	d, err := requireDashboard()
	if err != nil {
		return NewErrorResponse(err)
	}
	d.PromptZIP()
	return NewSuccessResponse(nil)
}

// RefreshCommand re-fetches every widget's data and redraws.
func RefreshCommand() *CommandResponse {
	d, err := requireDashboard()
	if err != nil {
		return NewErrorResponse(err)
	}
	if err := d.RefreshWidgets(); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(nil)
}
