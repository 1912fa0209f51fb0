// Package display renders 1-bit frames and pushes them to an
// electrophoretic panel. The panel is slow (seconds for a full refresh),
// so the driver layer decides between full and partial refreshes.
package display

import "image"

// Driver consumes finished frames. Implementations decide how a partial
// request maps onto the hardware's refresh modes.
type Driver interface {
	Init() error
	// Render pushes a full frame. When partial is true the driver may
	// use a faster partial refresh, subject to its ghosting policy.
	Render(frame *image.Gray, partial bool) error
	Clear() error
	Sleep() error
	Close() error
}
