package platform

import (
	"context"

	"github.com/mj1618/uidrive/internal/model"
)

// Detector turns a captured screenshot into a map of addressable UI elements.
// How pixels become elements is entirely the backend's business; the core
// only consumes the resulting element map.
type Detector interface {
	Detect(imageData []byte, win WindowContext) (map[string]model.UIElement, error)
}

// Inputter simulates mouse and keyboard input.
type Inputter interface {
	Click(x, y int, button MouseButton, count int) error
	MoveMouse(x, y int) error
	Scroll(x, y int, dx, dy int) error
	Drag(fromX, fromY, toX, toY int) error
	TypeText(text string, delayMs int) error
	KeyCombo(keys []string) error
}

// WindowManager manages window focus and geometry.
type WindowManager interface {
	FocusWindow(opts FocusOptions) error
	MoveWindow(windowID, x, y int) error
	ResizeWindow(windowID, width, height int) error
	MinimizeWindow(windowID int) error
	GetFrontmostApp() (name string, pid int, err error)
}

// Screenshotter captures screenshots.
type Screenshotter interface {
	// CaptureWindow captures a specific window or the full screen and
	// returns the image bytes in the requested format.
	CaptureWindow(opts ScreenshotOptions) ([]byte, error)
}

// Clipboard reads and writes the system clipboard. Get returns every
// representation available so a save/restore round trip is lossless.
type Clipboard interface {
	Get() (model.ClipboardPayload, error)
	Set(payload model.ClipboardPayload) error
	Clear() error
}

// MenuNavigator selects items from an application's menu bar.
type MenuNavigator interface {
	// SelectMenuItem walks the menu path, e.g. ["File", "Save As…"].
	SelectMenuItem(app string, path []string) error
}

// ShellRunner executes a shell command on behalf of a script step.
type ShellRunner interface {
	Run(ctx context.Context, command string, timeoutSec int) (stdout string, err error)
}

// WindowSource enumerates windows. The process typically has two of these
// (a low-level ID-based source and an accessibility title/owner source)
// that number the same windows independently; internal/winmap bridges them.
type WindowSource interface {
	ListWindows(pid int) ([]model.Window, error)
}
