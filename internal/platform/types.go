package platform

import (
	"fmt"
	"strings"

	"github.com/mj1618/uidrive/internal/model"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// ParseMouseButton converts a string flag or param value to MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// WindowContext is the window/application context a screenshot was captured
// in, passed through to detection and recorded on the snapshot.
type WindowContext struct {
	App          string
	Title        string
	Bounds       *model.Frame
	WindowID     int
	AXIdentifier string
}

// FocusOptions specifies what to focus.
type FocusOptions struct {
	App      string
	Window   string
	WindowID int
	PID      int
}

// ScreenshotOptions configures what to capture.
type ScreenshotOptions struct {
	App      string // Capture frontmost window of this app
	Window   string // Capture window matching this title substring
	WindowID int    // Capture window by system ID
	PID      int    // Capture frontmost window of this PID
	Format   string // "png" or "jpg"
}
