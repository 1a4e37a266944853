package model

// Role is the semantic type of a detected UI element.
type Role string

const (
	RoleButton    Role = "button"
	RoleTextField Role = "text_field"
	RoleLink      Role = "link"
	RoleImage     Role = "image"
	RoleGroup     Role = "group"
	RoleSlider    Role = "slider"
	RoleCheckbox  Role = "checkbox"
	RoleMenu      Role = "menu"
	RoleOther     Role = "other"
)

// Actionable reports whether elements of this role accept direct interaction.
func (r Role) Actionable() bool {
	switch r {
	case RoleButton, RoleTextField, RoleLink, RoleSlider, RoleCheckbox, RoleMenu:
		return true
	}
	return false
}

// Prefix returns the single-letter prefix used when assigning local element
// IDs like "B1" or "T2". Unknown roles share the generic "E" prefix.
func (r Role) Prefix() string {
	switch r {
	case RoleButton:
		return "B"
	case RoleTextField:
		return "T"
	case RoleLink:
		return "L"
	case RoleImage:
		return "I"
	case RoleGroup:
		return "G"
	case RoleSlider:
		return "S"
	case RoleCheckbox:
		return "C"
	case RoleMenu:
		return "M"
	}
	return "E"
}

// Frame is a rectangle in screen coordinates.
type Frame struct {
	X      float64 `json:"x"      yaml:"x"`
	Y      float64 `json:"y"      yaml:"y"`
	Width  float64 `json:"width"  yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Center returns the midpoint of the frame, rounded to whole pixels.
func (f Frame) Center() (int, int) {
	return int(f.X + f.Width/2), int(f.Y + f.Height/2)
}

// UIElement is one detected on-screen element. Elements are immutable once
// stored in a snapshot; a new detection replaces the whole element map.
type UIElement struct {
	ID               string `json:"id"                         yaml:"id"`
	Role             Role   `json:"role"                       yaml:"role"`
	Identifier       string `json:"identifier,omitempty"       yaml:"identifier,omitempty"`
	Title            string `json:"title,omitempty"            yaml:"title,omitempty"`
	Label            string `json:"label,omitempty"            yaml:"label,omitempty"`
	Value            string `json:"value,omitempty"            yaml:"value,omitempty"`
	Frame            Frame  `json:"frame"                      yaml:"frame"`
	IsActionable     bool   `json:"isActionable"               yaml:"isActionable"`
	KeyboardShortcut string `json:"keyboardShortcut,omitempty" yaml:"keyboardShortcut,omitempty"`
}

// DisplayText returns the best human-readable text for the element:
// title, then label, then value.
func (el UIElement) DisplayText() string {
	if el.Title != "" {
		return el.Title
	}
	if el.Label != "" {
		return el.Label
	}
	return el.Value
}
