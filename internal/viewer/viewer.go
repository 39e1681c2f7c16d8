package viewer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"imageviewer/internal/logger"
)

const (
	KeyQuit = 'q'
	KeySave = 's'
)

var (
	ErrNotInitialized = errors.New("viewer not initialized")
	ErrStopped        = errors.New("viewer already stopped")
)

// State is the lifecycle state of a Viewer.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Surface is an on-screen window able to render one loaded image and read keys.
type Surface interface {
	// Load decodes the encoded image and keeps it for Show.
	Load(data []byte) error
	Show() error
	// WaitKey blocks until a key is pressed and returns its raw code.
	WaitKey() int
	Close() error
}

// SurfaceFactory opens a resizable surface with the given title and size.
type SurfaceFactory func(title string, width, height int) (Surface, error)

// Saver persists the displayed image.
type Saver interface {
	Save(data []byte, source string) error
}

// Publisher receives every image the viewer puts on screen.
type Publisher interface {
	Publish(window string, image []byte)
}

// Viewer shows a single image and reacts to key presses until 'q' is pressed.
type Viewer struct {
	newSurface SurfaceFactory
	saver      Saver
	publisher  Publisher
	console    io.Writer
	logger     *logger.Logger

	surface   Surface
	title     string
	imagePath string
	image     []byte
	state     State
}

// NewViewer creates a viewer. publisher may be nil.
func NewViewer(newSurface SurfaceFactory, saver Saver, publisher Publisher, console io.Writer, logger *logger.Logger) *Viewer {
	return &Viewer{
		newSurface: newSurface,
		saver:      saver,
		publisher:  publisher,
		console:    console,
		logger:     logger,
		state:      StateIdle,
	}
}

// Initialize opens the window and loads the image at imagePath into memory.
func (v *Viewer) Initialize(windowTitle string, width, height int, imagePath string) error {
	if v.state != StateIdle {
		return fmt.Errorf("cannot initialize viewer in state %s", v.state)
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}

	surface, err := v.newSurface(windowTitle, width, height)
	if err != nil {
		return fmt.Errorf("failed to open window %q: %w", windowTitle, err)
	}

	if err := surface.Load(data); err != nil {
		surface.Close()
		return fmt.Errorf("failed to load image %s: %w", imagePath, err)
	}

	v.surface = surface
	v.title = windowTitle
	v.imagePath = imagePath
	v.image = data
	v.state = StateRunning

	v.logger.Info("Loaded %s (%d bytes) into window %q (%dx%d)", imagePath, len(data), windowTitle, width, height)
	return nil
}

// Run shows the image and dispatches keys until 'q' is pressed.
func (v *Viewer) Run() error {
	switch v.state {
	case StateIdle:
		return ErrNotInitialized
	case StateStopped:
		return ErrStopped
	}

	for {
		if err := v.surface.Show(); err != nil {
			return fmt.Errorf("failed to show image: %w", err)
		}
		if v.publisher != nil {
			v.publisher.Publish(v.title, v.image)
		}

		key := v.surface.WaitKey()

		switch KeyChar(key) {
		case KeyQuit:
			v.state = StateStopped
			v.logger.Info("Quit requested, leaving viewer loop")
			return nil
		case KeySave:
			if err := v.saver.Save(v.image, v.imagePath); err != nil {
				v.logger.Error("Failed to save image: %v", err)
			}
		default:
			fmt.Fprintln(v.console, key)
		}
	}
}

// Shutdown closes the window. Safe to call more than once.
func (v *Viewer) Shutdown() error {
	if v.surface == nil {
		return nil
	}

	err := v.surface.Close()
	v.surface = nil
	v.logger.Info("Window %q closed", v.title)
	return err
}

// State reports the current lifecycle state.
func (v *Viewer) State() State {
	return v.state
}

// KeyChar decodes a raw key code to its character using the low byte.
func KeyChar(code int) byte {
	return byte(code & 0xFF)
}
