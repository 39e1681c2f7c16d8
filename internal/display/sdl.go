//go:build sdl2

package display

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"gocv.io/x/gocv"
)

// SDLWindow renders the image through SDL2. Keys are reported as SDL keycodes,
// which match ASCII for printable characters.
type SDLWindow struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
}

func NewSDLWindow(title string, width, height int) (*SDLWindow, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to init SDL: %w", err)
	}

	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(width),
		int32(height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, err
	}

	return &SDLWindow{window: window, renderer: renderer}, nil
}

// Load decodes data with OpenCV and uploads it as an ARGB8888 texture.
func (w *SDLWindow) Load(data []byte) error {
	mat, err := decode(data)
	if err != nil {
		return err
	}
	defer mat.Close()

	bgra := gocv.NewMat()
	defer bgra.Close()
	if err := gocv.CvtColor(mat, &bgra, gocv.ColorBGRToBGRA); err != nil {
		return fmt.Errorf("failed to convert image to BGRA: %w", err)
	}

	cols, rows := bgra.Cols(), bgra.Rows()
	texture, err := w.renderer.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(cols),
		int32(rows),
	)
	if err != nil {
		return err
	}

	src := bgra.ToBytes()
	pixels, pitch, err := texture.Lock(nil)
	if err != nil {
		texture.Destroy()
		return err
	}
	// ARGB8888 is stored little-endian as b,g,r,a, same as BGRA rows
	rowBytes := cols * 4
	for row := 0; row < rows; row++ {
		copy(pixels[row*pitch:row*pitch+rowBytes], src[row*rowBytes:(row+1)*rowBytes])
	}
	texture.Unlock()

	if w.texture != nil {
		w.texture.Destroy()
	}
	w.texture = texture
	return nil
}

func (w *SDLWindow) Show() error {
	if w.texture == nil {
		return ErrEmptyImage
	}
	w.renderer.Clear()
	w.renderer.Copy(w.texture, nil, nil)
	w.renderer.Present()
	return nil
}

// WaitKey blocks on the SDL event queue until a key goes down. Window
// exposure and resize events repaint the image while waiting.
func (w *SDLWindow) WaitKey() int {
	for {
		switch event := sdl.WaitEvent().(type) {
		case *sdl.KeyboardEvent:
			if event.Type == sdl.KEYDOWN {
				return int(event.Keysym.Sym)
			}
		case *sdl.WindowEvent:
			if event.Event == sdl.WINDOWEVENT_EXPOSED || event.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				w.Show()
			}
		case *sdl.QuitEvent:
			return -1
		}
	}
}

func (w *SDLWindow) Close() error {
	if w.texture != nil {
		w.texture.Destroy()
		w.texture = nil
	}
	w.renderer.Destroy()
	err := w.window.Destroy()
	sdl.Quit()
	return err
}
