//go:build sdl2

package display

import "imageviewer/internal/viewer"

const Backend = "sdl2"

// Open creates an SDL2-backed surface.
func Open(title string, width, height int) (viewer.Surface, error) {
	return NewSDLWindow(title, width, height)
}
