package display

import (
	"gocv.io/x/gocv"
)

// Window is a resizable OpenCV highgui window.
type Window struct {
	window *gocv.Window
	image  gocv.Mat
	loaded bool
}

// NewWindow opens a resizable window with the given title and size.
func NewWindow(title string, width, height int) (*Window, error) {
	w := gocv.NewWindow(title)
	w.SetWindowProperty(gocv.WindowPropertyAutosize, gocv.WindowNormal)
	w.ResizeWindow(width, height)

	return &Window{window: w, image: gocv.NewMat()}, nil
}

// Load decodes data and keeps the matrix for Show.
func (w *Window) Load(data []byte) error {
	mat, err := decode(data)
	if err != nil {
		return err
	}

	w.image.Close()
	w.image = mat
	w.loaded = true
	return nil
}

func (w *Window) Show() error {
	if !w.loaded {
		return ErrEmptyImage
	}
	w.window.IMShow(w.image)
	return nil
}

// WaitKey blocks with no timeout until a key is pressed.
func (w *Window) WaitKey() int {
	return w.window.WaitKey(0)
}

func (w *Window) Close() error {
	w.image.Close()
	w.loaded = false
	return w.window.Close()
}
