// Package renderer draws scene snapshots. The wgpu backend owns the GPU
// device and surface; the Recorder keeps snapshots in memory for headless runs.
package renderer

import "errors"

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("renderer closed")

// Renderer consumes one SceneSnapshot per frame.
//
// Implementations are driven from the frame loop thread only.
type Renderer interface {
	// Submit uploads the snapshot and draws one frame.
	//
	// Parameters:
	//   - snap: the frame's scene state; must not be retained after return
	//
	// Returns:
	//   - error: an error if the frame could not be produced
	Submit(snap *SceneSnapshot) error

	// Resize configures the underlying surface for a new size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Close releases every GPU resource. Submit fails afterwards.
	//
	// Returns:
	//   - error: an error if releasing failed
	Close() error
}
