//go:build !sdl2

package display

import "imageviewer/internal/viewer"

const Backend = "opencv"

// Open creates the default OpenCV-backed surface.
func Open(title string, width, height int) (viewer.Surface, error) {
	return NewWindow(title, width, height)
}
