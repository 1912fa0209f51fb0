// Package commands holds the operations shared by the CLI and the
// JSON-RPC server, all returning a uniform response envelope.
package commands

import (
	"fmt"

	"github.com/inkdash/inkdash/dashboard"
)

// CommandResponse is the standardized response format for all commands.
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response.
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

// dash is the running dashboard instance commands operate on. It is set
// once at startup, before the server or any command runs.
var dash *dashboard.Dashboard

// SetDashboard wires the running dashboard into the command layer.
func SetDashboard(d *dashboard.Dashboard) {
	dash = d
}

// GetDashboard returns the wired dashboard, or nil before startup.
func GetDashboard() *dashboard.Dashboard {
	return dash
}

func requireDashboard() (*dashboard.Dashboard, error) {
	if dash == nil {
		return nil, fmt.Errorf("dashboard is not running")
	}
	return dash, nil
}
